package page

// Extent is the vertical span of a section in document lines, half-open:
// it covers Top through Top+Height-1.
type Extent struct {
	Top    int
	Height int
}

// Bottom is the first line after the section.
func (e Extent) Bottom() int {
	return e.Top + e.Height
}

// Contains reports whether line y falls inside the section.
func (e Extent) Contains(y int) bool {
	return y >= e.Top && y < e.Bottom()
}

// Layout maps tabs to the extents of their rendered sections. A tab may be
// missing while its section has not been laid out yet.
type Layout map[Tab]Extent

// TopOf returns the first line of the section for tab.
func (l Layout) TopOf(tab Tab) (int, bool) {
	ext, ok := l[tab]
	if !ok {
		return 0, false
	}
	return ext.Top, true
}

// Midpoint is the document line at the vertical centre of the viewport.
func Midpoint(offset, viewport int) int {
	return offset + viewport/2
}

// Track returns the first tab, in declaration order, whose section contains
// the viewport midpoint. With no match it returns active unchanged.
func Track(tabs Tabs, layout Layout, active Tab, offset, viewport int) Tab {
	mid := Midpoint(offset, viewport)
	for _, tab := range tabs {
		ext, ok := layout[tab]
		if !ok {
			continue
		}
		if ext.Contains(mid) {
			return tab
		}
	}
	return active
}
