// Package page holds the state of the portfolio page: the preloader, the
// typing headline, the active tab and the pointer glow. Every piece is a
// value with pure transitions; Controller wires them to timers and events.
package page

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTabs is returned when a tab list is empty.
	ErrNoTabs = errors.New("page: no tabs")
	// ErrEmptyTab is returned for a blank tab label.
	ErrEmptyTab = errors.New("page: empty tab label")
	// ErrDuplicateTab is returned when a label appears twice.
	ErrDuplicateTab = errors.New("page: duplicate tab label")
)

// Tab is a navigation entry and the label of its section.
type Tab string

// Tabs is the fixed, ordered tab list of a page.
type Tabs []Tab

// Validate reports whether the list is usable.
func (ts Tabs) Validate() error {
	if len(ts) == 0 {
		return ErrNoTabs
	}
	seen := make(map[Tab]struct{}, len(ts))
	for i, tab := range ts {
		if strings.TrimSpace(string(tab)) == "" {
			return fmt.Errorf("tab %d: %w", i, ErrEmptyTab)
		}
		if _, ok := seen[tab]; ok {
			return fmt.Errorf("%q: %w", tab, ErrDuplicateTab)
		}
		seen[tab] = struct{}{}
	}
	return nil
}

// First returns the initial active tab, or "" for an empty list.
func (ts Tabs) First() Tab {
	if len(ts) == 0 {
		return ""
	}
	return ts[0]
}

// Index returns the position of tab, or -1.
func (ts Tabs) Index(tab Tab) int {
	for i, t := range ts {
		if t == tab {
			return i
		}
	}
	return -1
}

// Next returns the tab after tab, wrapping to the first.
func (ts Tabs) Next(tab Tab) Tab {
	return ts.step(tab, 1)
}

// Prev returns the tab before tab, wrapping to the last.
func (ts Tabs) Prev(tab Tab) Tab {
	return ts.step(tab, -1)
}

func (ts Tabs) step(tab Tab, delta int) Tab {
	if len(ts) == 0 {
		return ""
	}
	i := ts.Index(tab)
	if i < 0 {
		return ts[0]
	}
	n := len(ts)
	return ts[((i+delta)%n+n)%n]
}
