package page

import (
	"time"

	"github.com/kyaoi/folio/internal/effect"
)

// Options configures a Controller. Zero durations fall back to the
// package defaults.
type Options struct {
	Tabs          Tabs
	Clock         effect.Clock
	Dispatch      effect.Dispatcher
	Bus           *effect.Bus
	PreloadPeriod time.Duration
	RevealDelay   time.Duration
	TypingSpeed   time.Duration
	Headline      string
	SkipPreloader bool
}

// State is a snapshot of the page.
type State struct {
	Preloader Preloader
	Typing    Typing
	Active    Tab
	Glow      Glow
}

// Controller mounts the page effects into one effect.Scope: the preloader
// ticker and reveal timer, the typing ticker, and the scroll, resize and
// pointer listeners. All state changes run through the Dispatcher.
type Controller struct {
	opts  Options
	bus   *effect.Bus
	state State

	layout   Layout
	offset   int
	viewport int

	scope   *effect.Scope
	preload *effect.Handle
	reveal  *effect.Handle
	typing  *effect.Handle
}

// NewController returns an unmounted controller.
func NewController(opts Options) *Controller {
	if opts.PreloadPeriod <= 0 {
		opts.PreloadPeriod = DefaultPreloadPeriod
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	if opts.TypingSpeed <= 0 {
		opts.TypingSpeed = HeadlineTypingSpeed
	}
	if opts.Bus == nil {
		opts.Bus = effect.NewBus()
	}
	c := &Controller{
		opts:   opts,
		bus:    opts.Bus,
		layout: Layout{},
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.state = State{
		Preloader: NewPreloader(),
		Typing:    NewTyping(c.opts.Headline),
		Active:    c.opts.Tabs.First(),
	}
	if c.opts.SkipPreloader {
		c.state.Preloader = LoadedPreloader()
	}
}

// Bus returns the event bus the controller listens on.
func (c *Controller) Bus() *effect.Bus {
	return c.bus
}

// Mounted reports whether effects are registered.
func (c *Controller) Mounted() bool {
	return c.scope != nil && !c.scope.Closed()
}

// Mount registers listeners and starts the preloader. Mounting a mounted
// controller does nothing. A remount after Unmount starts from a fresh page.
func (c *Controller) Mount() {
	if c.Mounted() {
		return
	}
	if c.scope != nil {
		c.reset()
	}
	c.scope = effect.NewScope(c.opts.Clock, c.opts.Dispatch)
	c.scope.Listen(c.bus, effect.Scroll, c.onScroll)
	c.scope.Listen(c.bus, effect.Resize, c.onResize)
	c.scope.Listen(c.bus, effect.PointerMove, c.onPointerMove)

	if c.state.Preloader.Loading() {
		c.preload = c.scope.Every(c.opts.PreloadPeriod, c.tickPreloader)
		return
	}
	c.startTyping()
}

// Unmount releases every timer and listener.
func (c *Controller) Unmount() {
	if c.scope == nil {
		return
	}
	c.scope.Close()
	c.preload, c.reveal, c.typing = nil, nil, nil
}

// Active reports how many timers and listeners are registered.
func (c *Controller) Active() int {
	if c.scope == nil {
		return 0
	}
	return c.scope.Active()
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return c.state
}

// SetHeadline changes the typed text. The reveal restarts from empty when
// the text differs.
func (c *Controller) SetHeadline(headline string) {
	if headline == c.opts.Headline {
		return
	}
	c.opts.Headline = headline
	if !c.Mounted() || c.state.Preloader.Loading() {
		c.state.Typing = NewTyping(headline)
		return
	}
	c.startTyping()
}

// SetLayout replaces the section extents and re-tracks the active tab.
func (c *Controller) SetLayout(layout Layout) {
	c.layout = make(Layout, len(layout))
	for tab, ext := range layout {
		c.layout[tab] = ext
	}
	c.track()
}

// Navigate returns the first line of tab's section for scroll-into-view.
func (c *Controller) Navigate(tab Tab) (int, bool) {
	return c.layout.TopOf(tab)
}

// Scroll reports a new document offset to the scroll listeners.
func (c *Controller) Scroll(offset, viewport int) {
	c.bus.Emit(effect.Event{Kind: effect.Scroll, Offset: offset, Viewport: viewport})
}

// Resize reports a new viewport size to the resize listeners.
func (c *Controller) Resize(width, height int) {
	c.bus.Emit(effect.Event{Kind: effect.Resize, Width: width, Height: height})
}

// PointerMove reports the pointer position to the glow listener.
func (c *Controller) PointerMove(x, y int) {
	c.bus.Emit(effect.Event{Kind: effect.PointerMove, X: x, Y: y})
}

func (c *Controller) tickPreloader() {
	c.state.Preloader = c.state.Preloader.Tick()
	if !c.state.Preloader.Complete() {
		return
	}
	c.preload.Stop()
	c.preload = nil
	if c.reveal == nil {
		c.reveal = c.scope.After(c.opts.RevealDelay, c.revealPage)
	}
}

func (c *Controller) revealPage() {
	c.reveal = nil
	if !c.state.Preloader.Loading() {
		return
	}
	c.state.Preloader = c.state.Preloader.Reveal()
	c.startTyping()
	c.track()
}

func (c *Controller) startTyping() {
	c.typing.Stop()
	c.typing = nil
	c.state.Typing = NewTyping(c.opts.Headline)
	if c.state.Typing.Done() {
		return
	}
	c.typing = c.scope.Every(c.opts.TypingSpeed, c.tickTyping)
}

func (c *Controller) tickTyping() {
	c.state.Typing = c.state.Typing.Tick()
	if c.state.Typing.Done() {
		c.typing.Stop()
		c.typing = nil
	}
}

func (c *Controller) onScroll(ev effect.Event) {
	c.offset = ev.Offset
	c.viewport = ev.Viewport
	c.track()
}

func (c *Controller) onResize(ev effect.Event) {
	c.bus.Emit(effect.Event{Kind: effect.Scroll, Offset: c.offset, Viewport: ev.Height})
}

func (c *Controller) onPointerMove(ev effect.Event) {
	c.state.Glow = c.state.Glow.Move(ev.X, ev.Y)
}

func (c *Controller) track() {
	c.state.Active = Track(c.opts.Tabs, c.layout, c.state.Active, c.offset, c.viewport)
}
