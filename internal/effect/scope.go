package effect

import (
	"sync"
	"time"
)

// Scope owns timers and listeners for one mount. Close releases all of them.
// Timer callbacks are handed to the Dispatcher; a callback that reaches the
// UI goroutine after its handle was stopped, or after Close, is dropped.
type Scope struct {
	clock    Clock
	dispatch Dispatcher

	mu      sync.Mutex
	handles map[*Handle]struct{}
	closed  bool
}

// Handle is one timer or listener registered in a Scope.
type Handle struct {
	scope   *Scope
	period  time.Duration
	repeat  bool
	fn      func()
	timer   Timer
	cancel  func()
	stopped bool
	spent   bool
}

// NewScope returns an open scope. A nil clock means System and a nil
// dispatcher means Inline.
func NewScope(clock Clock, dispatch Dispatcher) *Scope {
	if clock == nil {
		clock = System
	}
	if dispatch == nil {
		dispatch = Inline
	}
	return &Scope{
		clock:    clock,
		dispatch: dispatch,
		handles:  make(map[*Handle]struct{}),
	}
}

// After runs fn once after d.
func (s *Scope) After(d time.Duration, fn func()) *Handle {
	return s.schedule(d, false, fn)
}

// Every runs fn every d until the handle is stopped. A non-positive d is
// treated as one millisecond.
func (s *Scope) Every(d time.Duration, fn func()) *Handle {
	return s.schedule(d, true, fn)
}

// Listen subscribes fn to kind on bus for the lifetime of the scope.
func (s *Scope) Listen(bus *Bus, kind Kind, fn func(Event)) *Handle {
	h := &Handle{scope: s}
	unsubscribe := bus.Subscribe(kind, func(ev Event) {
		if s.live(h) {
			fn(ev)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		h.stopped = true
		unsubscribe()
		return h
	}
	h.cancel = unsubscribe
	s.handles[h] = struct{}{}
	return h
}

// Active reports how many handles are still registered.
func (s *Scope) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Closed reports whether Close was called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops every handle. Later registrations are inert.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for h := range s.handles {
		s.stopLocked(h)
	}
}

// Stop cancels the handle. It is safe on a nil handle and idempotent.
func (h *Handle) Stop() {
	if h == nil || h.scope == nil {
		return
	}
	s := h.scope
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(h)
}

// Active reports whether the handle can still fire.
func (h *Handle) Active() bool {
	if h == nil || h.scope == nil {
		return false
	}
	s := h.scope
	s.mu.Lock()
	defer s.mu.Unlock()
	return !h.stopped && !h.spent && !s.closed
}

func (s *Scope) schedule(d time.Duration, repeat bool, fn func()) *Handle {
	if repeat && d <= 0 {
		d = time.Millisecond
	}
	h := &Handle{scope: s, period: d, repeat: repeat, fn: fn}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		h.stopped = true
		return h
	}
	s.handles[h] = struct{}{}
	s.armLocked(h)
	return h
}

func (s *Scope) armLocked(h *Handle) {
	h.timer = s.clock.AfterFunc(h.period, func() { s.fire(h) })
}

func (s *Scope) fire(h *Handle) {
	s.mu.Lock()
	if h.stopped || s.closed {
		s.mu.Unlock()
		return
	}
	if h.repeat {
		s.armLocked(h)
	} else {
		h.timer = nil
		h.spent = true
		delete(s.handles, h)
	}
	s.mu.Unlock()

	s.dispatch(func() {
		if s.live(h) {
			h.fn()
		}
	})
}

func (s *Scope) live(h *Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !h.stopped && !s.closed
}

func (s *Scope) stopLocked(h *Handle) {
	if h.stopped {
		return
	}
	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	delete(s.handles, h)
}
