package page

import (
	"testing"
	"time"

	"github.com/kyaoi/folio/internal/effect"
)

const headline = "Hi! I'm Your Name"

func newTestController(t *testing.T, opts Options) (*Controller, *effect.ManualClock) {
	t.Helper()
	clock := effect.NewManualClock()
	opts.Clock = clock
	if opts.Tabs == nil {
		opts.Tabs = sampleTabs
	}
	c := NewController(opts)
	t.Cleanup(c.Unmount)
	return c, clock
}

func TestControllerPreloaderTimeline(t *testing.T) {
	c, clock := newTestController(t, Options{Headline: headline})
	c.Mount()

	for tick := 1; tick <= Segments; tick++ {
		clock.Advance(DefaultPreloadPeriod)
		p := c.State().Preloader
		if p.Filled() != tick {
			t.Fatalf("after tick %d expected %d segments, got %d", tick, tick, p.Filled())
		}
		if !p.Loading() {
			t.Fatalf("page revealed early at tick %d", tick)
		}
	}

	// Only the reveal timer and the three listeners remain.
	if clock.Pending() != 1 {
		t.Errorf("expected only the reveal timer pending, got %d", clock.Pending())
	}

	clock.Advance(DefaultRevealDelay - time.Millisecond)
	if !c.State().Preloader.Loading() {
		t.Fatal("revealed before the delay elapsed")
	}
	clock.Advance(time.Millisecond)
	if c.State().Preloader.Loading() {
		t.Fatal("expected the page to be revealed after the delay")
	}

	// Loading flips exactly once: further time does not re-arm the preloader.
	clock.Advance(10 * time.Second)
	if c.State().Preloader.Loading() {
		t.Error("loading came back")
	}
	if c.State().Preloader.Filled() != Segments {
		t.Errorf("filled = %d", c.State().Preloader.Filled())
	}
}

func TestControllerTypingStartsAfterReveal(t *testing.T) {
	c, clock := newTestController(t, Options{Headline: headline})
	c.Mount()

	clock.Advance(Segments*DefaultPreloadPeriod + DefaultRevealDelay)
	if got := c.State().Typing.Len(); got != 0 {
		t.Fatalf("typing should start empty at reveal, got %d", got)
	}
	for k := 1; k <= 5; k++ {
		clock.Advance(HeadlineTypingSpeed)
		if got := c.State().Typing.Len(); got != k {
			t.Fatalf("after %d typing ticks expected %d runes, got %d", k, k, got)
		}
	}

	clock.Advance(time.Duration(len(headline)) * HeadlineTypingSpeed)
	if got := c.State().Typing.Text(); got != headline {
		t.Errorf("expected full headline, got %q", got)
	}
	if clock.Pending() != 0 {
		t.Errorf("typing ticker should stop when done, %d timers pending", clock.Pending())
	}
}

func TestControllerSetHeadlineRestartsTyping(t *testing.T) {
	c, clock := newTestController(t, Options{Headline: headline, SkipPreloader: true})
	c.Mount()

	clock.Advance(3 * HeadlineTypingSpeed)
	if c.State().Typing.Len() != 3 {
		t.Fatalf("expected 3 runes, got %d", c.State().Typing.Len())
	}

	c.SetHeadline("Hello there")
	if got := c.State().Typing.Len(); got != 0 {
		t.Fatalf("retarget should reset to 0, got %d", got)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected exactly one typing ticker after retarget, got %d", clock.Pending())
	}
	clock.Advance(2 * HeadlineTypingSpeed)
	if got := c.State().Typing.Text(); got != "He" {
		t.Errorf("expected \"He\", got %q", got)
	}

	c.SetHeadline("Hello there")
	if got := c.State().Typing.Text(); got != "He" {
		t.Errorf("same headline should not restart, got %q", got)
	}
}

func TestControllerCustomSpeeds(t *testing.T) {
	c, clock := newTestController(t, Options{
		Headline:      "ab",
		PreloadPeriod: 10 * time.Millisecond,
		RevealDelay:   5 * time.Millisecond,
		TypingSpeed:   time.Millisecond,
	})
	c.Mount()
	clock.Advance(45 * time.Millisecond)
	if c.State().Preloader.Loading() {
		t.Fatal("expected reveal after 4*10ms + 5ms")
	}
	clock.Advance(2 * time.Millisecond)
	if got := c.State().Typing.Text(); got != "ab" {
		t.Errorf("typing = %q", got)
	}
}

func TestControllerScrollTracksActiveTab(t *testing.T) {
	c, _ := newTestController(t, Options{SkipPreloader: true})
	c.Mount()
	c.SetLayout(contiguousLayout(sampleTabs, 20, 20, 20, 20, 20, 20))

	if got := c.State().Active; got != "Home" {
		t.Fatalf("initial active tab = %q", got)
	}

	c.Scroll(35, 20)
	if got := c.State().Active; got != "Experience" {
		t.Errorf("mid 45 should be Experience, got %q", got)
	}

	top, ok := c.Navigate("Skills")
	if !ok || top != 80 {
		t.Fatalf("Navigate(Skills) = %d, %v", top, ok)
	}
	c.Scroll(top, 20)
	if got := c.State().Active; got != "Skills" {
		t.Errorf("after navigating expected Skills, got %q", got)
	}

	if _, ok := c.Navigate("Missing"); ok {
		t.Error("Navigate should report unknown tabs")
	}
}

func TestControllerResizeRetriggersScroll(t *testing.T) {
	c, _ := newTestController(t, Options{SkipPreloader: true})
	c.Mount()
	c.SetLayout(contiguousLayout(sampleTabs, 20, 20, 20, 20, 20, 20))

	c.Scroll(10, 2)
	if got := c.State().Active; got != "Home" {
		t.Fatalf("mid 11 should be Home, got %q", got)
	}
	c.Resize(80, 24)
	if got := c.State().Active; got != "About" {
		t.Errorf("after growing the viewport mid 22 should be About, got %q", got)
	}
}

func TestControllerPointerMovesGlow(t *testing.T) {
	c, _ := newTestController(t, Options{SkipPreloader: true})
	c.Mount()
	c.PointerMove(7, 3)
	g := c.State().Glow
	if !g.Visible || g.X != 7 || g.Y != 3 {
		t.Errorf("glow = %+v", g)
	}
}

func TestControllerIgnoresEventsWhenUnmounted(t *testing.T) {
	c, _ := newTestController(t, Options{SkipPreloader: true})
	c.SetLayout(contiguousLayout(sampleTabs, 20, 20, 20, 20, 20, 20))
	c.Scroll(100, 20)
	c.PointerMove(1, 1)
	if got := c.State().Active; got != "Home" {
		t.Errorf("unmounted controller tracked scroll: %q", got)
	}
	if c.State().Glow.Visible {
		t.Error("unmounted controller moved the glow")
	}
}

func TestControllerMountUnmountLeavesNothingBehind(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		advance time.Duration
	}{
		{"during preloader", Options{Headline: headline}, 0},
		{"mid preloader", Options{Headline: headline}, 2 * DefaultPreloadPeriod},
		{"waiting for reveal", Options{Headline: headline}, 4 * DefaultPreloadPeriod},
		{"while typing", Options{Headline: headline, SkipPreloader: true}, 2 * HeadlineTypingSpeed},
		{"idle", Options{SkipPreloader: true}, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := effect.NewBus()
			tt.opts.Bus = bus
			c, clock := newTestController(t, tt.opts)

			c.Mount()
			c.Mount()
			if bus.Total() != 3 {
				t.Fatalf("expected 3 listeners after double Mount, got %d", bus.Total())
			}
			clock.Advance(tt.advance)
			c.Unmount()
			c.Unmount()

			if clock.Pending() != 0 {
				t.Errorf("dangling timers: %d", clock.Pending())
			}
			if bus.Total() != 0 {
				t.Errorf("dangling listeners: %d", bus.Total())
			}
			if c.Active() != 0 {
				t.Errorf("scope still holds %d handles", c.Active())
			}
		})
	}
}

func TestControllerRemountStartsFresh(t *testing.T) {
	c, clock := newTestController(t, Options{Headline: headline})
	c.Mount()
	clock.Advance(2 * DefaultPreloadPeriod)
	c.Unmount()

	c.Mount()
	if got := c.State().Preloader.Filled(); got != 0 {
		t.Errorf("remount should restart the preloader, filled = %d", got)
	}
	clock.Advance(DefaultPreloadPeriod)
	if got := c.State().Preloader.Filled(); got != 1 {
		t.Errorf("expected one segment after remount tick, got %d", got)
	}
}

func TestControllerQueuedTickAfterUnmountIsDropped(t *testing.T) {
	clock := effect.NewManualClock()
	var queue []func()
	c := NewController(Options{
		Tabs:     sampleTabs,
		Clock:    clock,
		Dispatch: func(fn func()) { queue = append(queue, fn) },
		Headline: headline,
	})
	c.Mount()
	clock.Advance(DefaultPreloadPeriod)
	if len(queue) != 1 {
		t.Fatalf("expected one queued tick, got %d", len(queue))
	}
	c.Unmount()
	for _, fn := range queue {
		fn()
	}
	if got := c.State().Preloader.Filled(); got != 0 {
		t.Errorf("tick applied after unmount: filled = %d", got)
	}
}
