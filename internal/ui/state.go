package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/effect"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Site *content.Site

	// Loader and WatchDir enable live reload. Keys restricts a reloaded
	// site to the same sections as Site.
	Loader   content.Loader
	WatchDir string
	Keys     []string

	PreloadPeriod time.Duration
	RevealDelay   time.Duration
	TypingSpeed   time.Duration
	SkipPreloader bool

	// Clock and Dispatch default to wall-clock timers delivered through
	// the program's message loop.
	Clock    effect.Clock
	Dispatch effect.Dispatcher

	// Renderer styles output for the terminal the program draws on. Nil
	// means the process's own stdout.
	Renderer *lipgloss.Renderer

	Logger pslog.Logger
}
