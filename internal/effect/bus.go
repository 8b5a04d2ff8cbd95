package effect

import "sync"

// Kind identifies a host event.
type Kind int

const (
	// Scroll fires when the document offset changes.
	Scroll Kind = iota
	// Resize fires when the viewport changes size.
	Resize
	// PointerMove fires when the pointer moves.
	PointerMove
)

func (k Kind) String() string {
	switch k {
	case Scroll:
		return "scroll"
	case Resize:
		return "resize"
	case PointerMove:
		return "pointermove"
	default:
		return "unknown"
	}
}

// Event is a host event. Offset and Viewport describe scroll state in
// document lines, Width and Height the viewport size, X and Y the pointer.
type Event struct {
	Kind     Kind
	Offset   int
	Viewport int
	Width    int
	Height   int
	X        int
	Y        int
}

type subscription struct {
	id int
	fn func(Event)
}

// Bus delivers host events to listeners in subscription order. Emit is
// expected to be called from the UI goroutine.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[Kind][]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers fn for kind. The returned function removes it; calling
// it more than once is harmless.
func (b *Bus) Subscribe(kind Kind, fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[kind] = append(b.subs[kind], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

// Emit calls every listener registered for ev.Kind.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[ev.Kind]...)
	b.mu.Unlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

// Listeners reports how many listeners are registered for kind.
func (b *Bus) Listeners(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}

// Total reports how many listeners are registered.
func (b *Bus) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}

func (b *Bus) remove(kind Kind, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[kind]
	for i, s := range subs {
		if s.id == id {
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[kind]) == 0 {
		delete(b.subs, kind)
	}
}
