package page

import "time"

const (
	// Segments is the number of border sides the preloader fills.
	Segments = 4
	// DefaultPreloadPeriod is the time between preloader ticks.
	DefaultPreloadPeriod = 500 * time.Millisecond
	// DefaultRevealDelay is the pause between the last tick and the reveal.
	DefaultRevealDelay = 800 * time.Millisecond
)

// Segment is one side of the preloader border, in fill order.
type Segment int

const (
	SegmentTop Segment = iota
	SegmentRight
	SegmentBottom
	SegmentLeft
)

func (s Segment) String() string {
	switch s {
	case SegmentTop:
		return "top"
	case SegmentRight:
		return "right"
	case SegmentBottom:
		return "bottom"
	case SegmentLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Preloader is the staged loading animation. Each tick lights one more
// border segment; once all are lit the page waits for Reveal.
type Preloader struct {
	filled int
	loaded bool
}

// NewPreloader returns a preloader with nothing lit.
func NewPreloader() Preloader {
	return Preloader{}
}

// LoadedPreloader returns a preloader that has already revealed the page.
func LoadedPreloader() Preloader {
	return Preloader{filled: Segments, loaded: true}
}

// Tick lights the next segment. It is a no-op once all segments are lit.
func (p Preloader) Tick() Preloader {
	if p.filled < Segments {
		p.filled++
	}
	return p
}

// Reveal clears the loading flag.
func (p Preloader) Reveal() Preloader {
	p.filled = Segments
	p.loaded = true
	return p
}

// Filled reports how many segments are lit.
func (p Preloader) Filled() int {
	return p.filled
}

// Phase is the index of the most recently lit segment, in [0, Segments).
func (p Preloader) Phase() int {
	if p.filled == 0 {
		return 0
	}
	return p.filled - 1
}

// Lit reports whether s is filled.
func (p Preloader) Lit(s Segment) bool {
	return int(s) >= 0 && int(s) < p.filled
}

// Complete reports whether every segment is lit and the ticker should stop.
func (p Preloader) Complete() bool {
	return p.filled >= Segments
}

// Loading reports whether the preloader still hides the page.
func (p Preloader) Loading() bool {
	return !p.loaded
}
