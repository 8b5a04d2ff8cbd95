package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

const (
	preloaderWidth  = 19
	preloaderHeight = 7
	typingCursor    = "▌"
	topHint         = "↑ Top"
)

type sectionBlock struct {
	tab      page.Tab
	key      string
	heading  string
	headline bool
	body     string
}

type document struct {
	text   string
	layout page.Layout
	lines  int
}

type tabHit struct {
	tab        page.Tab
	start, end int
}

// composeDocument stacks the sections top to bottom. Every section is at
// least minHeight lines so that the top of the page always tracks the
// first tab.
func composeDocument(blocks []sectionBlock, typed page.Typing, width, minHeight int, st styles) document {
	doc := document{layout: make(page.Layout, len(blocks))}
	var all []string
	for _, b := range blocks {
		lines := []string{st.heading.Render(truncate(b.heading, width)), ""}
		if b.headline {
			text := typed.Text()
			if !typed.Done() {
				text += typingCursor
			}
			lines = append(lines, st.typed.Render(truncate(text, width)), "")
		}
		if body := strings.Trim(b.body, "\n"); body != "" {
			lines = append(lines, strings.Split(body, "\n")...)
		}
		for len(lines) < minHeight {
			lines = append(lines, "")
		}
		doc.layout[b.tab] = page.Extent{Top: len(all), Height: len(lines)}
		all = append(all, lines...)
	}
	doc.text = strings.Join(all, "\n")
	doc.lines = len(all)
	return doc
}

// renderHeader draws the sticky header: monogram and domain on the left,
// tabs on the right and an underline row beneath the active tab.
func renderHeader(v content.Variant, tabs page.Tabs, active page.Tab, width int, st styles) (string, []tabHit) {
	left := st.monogram.Render(v.Monogram)
	if v.Domain != "" {
		left += " " + st.domain.Render(v.Domain)
	}

	rendered := make([]string, len(tabs))
	total := 0
	for i, tab := range tabs {
		style := st.tab
		if tab == active {
			style = st.activeTab
		}
		rendered[i] = style.Render(string(tab))
		total += lipgloss.Width(rendered[i])
	}

	if lipgloss.Width(left)+1+total > width {
		left = st.monogram.Render(v.Monogram)
	}
	start := max(width-total, lipgloss.Width(left)+1)
	gap := start - lipgloss.Width(left)

	row := left + strings.Repeat(" ", max(gap, 0)) + strings.Join(rendered, "")
	row = ansi.Truncate(row, width, "")

	underline := []rune(strings.Repeat(" ", max(width, 0)))
	hits := make([]tabHit, 0, len(tabs))
	x := start
	for i, tab := range tabs {
		w := lipgloss.Width(rendered[i])
		hits = append(hits, tabHit{tab: tab, start: x, end: x + w})
		if tab == active {
			// skip the one-cell padding on each side of the label
			for c := x + 1; c < x+w-1 && c < width; c++ {
				underline[c] = '━'
			}
		}
		x += w
	}

	under := string(underline)
	if len(st.theme.Gradient) > 1 {
		under = st.gradient(under, width)
	} else {
		under = st.underline.Render(under)
	}
	return st.header.Render(row) + "\n" + under, hits
}

// renderGlowRow is the horizontal profile of the glow at the pointer row.
func renderGlowRow(g page.Glow, width int, radius float64, st styles) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteString(st.glowCell(g.Intensity(x, g.Y, radius)))
	}
	return b.String()
}

// renderGutter is the vertical profile of the glow at the pointer column,
// one cell per screen row from top.
func renderGutter(g page.Glow, top, height int, radius float64, st styles) string {
	cells := make([]string, height)
	for i := range cells {
		cells[i] = st.glowCell(g.Intensity(g.X, top+i, radius))
	}
	return strings.Join(cells, "\n")
}

// renderPreloader draws a square ring whose sides light up clockwise from
// the top, with the monogram in the middle.
func renderPreloader(p page.Preloader, monogram string, st styles) string {
	side := func(s page.Segment, text string) string {
		if p.Lit(s) {
			return st.segmentOn.Render(text)
		}
		return st.segmentOff.Render(text)
	}
	bar := strings.Repeat("─", preloaderWidth)

	lines := make([]string, 0, preloaderHeight+2)
	lines = append(lines, side(page.SegmentTop, "╭"+bar)+side(page.SegmentRight, "╮"))
	for row := 0; row < preloaderHeight; row++ {
		inner := strings.Repeat(" ", preloaderWidth)
		if row == preloaderHeight/2 {
			inner = lipgloss.PlaceHorizontal(preloaderWidth, lipgloss.Center, st.monogram.Render(monogram))
		}
		lines = append(lines, side(page.SegmentLeft, "│")+inner+side(page.SegmentRight, "│"))
	}
	lines = append(lines, side(page.SegmentLeft, "╰")+side(page.SegmentBottom, bar+"╯"))
	return strings.Join(lines, "\n")
}

func renderFooter(offset, total, height, width int, status string, st styles) string {
	left := ""
	if offset > 0 {
		left = st.hint.Render(topHint) + " (t)"
	}
	if status != "" {
		if left != "" {
			left += "  "
		}
		left += status
	}
	percent := 100
	if total > height {
		percent = min(100, (offset+height)*100/total)
	}
	right := fmt.Sprintf("%d%%  ? help", percent)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - st.footer.GetHorizontalFrameSize()
	line := left + strings.Repeat(" ", max(gap, 1)) + right
	return st.footer.Render(ansi.Truncate(line, max(width-st.footer.GetHorizontalFrameSize(), 0), ""))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
