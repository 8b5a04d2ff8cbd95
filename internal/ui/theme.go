package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

const glowShades = " ·░▒"

type styles struct {
	theme    content.Theme
	renderer *lipgloss.Renderer

	header     lipgloss.Style
	monogram   lipgloss.Style
	domain     lipgloss.Style
	tab        lipgloss.Style
	activeTab  lipgloss.Style
	underline  lipgloss.Style
	heading    lipgloss.Style
	typed      lipgloss.Style
	footer     lipgloss.Style
	hint       lipgloss.Style
	errLine    lipgloss.Style
	helpBox    lipgloss.Style
	searchBar  lipgloss.Style
	segmentOn  lipgloss.Style
	segmentOff lipgloss.Style
}

func newStyles(th content.Theme, r *lipgloss.Renderer) styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := color(th.Foreground)
	muted := color(th.Muted)
	accent := color(th.Accent)
	border := color(th.Border)
	bg := color(th.Background)

	return styles{
		theme:     th,
		renderer:  r,
		header:    r.NewStyle().Foreground(fg).Background(bg),
		monogram:  r.NewStyle().Foreground(accent).Bold(true),
		domain:    r.NewStyle().Foreground(muted),
		tab:       r.NewStyle().Foreground(muted).Padding(0, 1),
		activeTab: r.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
		underline: r.NewStyle().Foreground(accent),
		heading:   r.NewStyle().Foreground(accent).Bold(true),
		typed:     r.NewStyle().Foreground(fg).Bold(true),
		footer:    r.NewStyle().Foreground(muted).Padding(0, 1),
		hint:      r.NewStyle().Foreground(accent),
		errLine:   r.NewStyle().Foreground(lipgloss.Color("#ff6b6b")),
		helpBox: r.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Background(bg),
		searchBar:  r.NewStyle().Padding(0, 1).Foreground(muted),
		segmentOn:  r.NewStyle().Foreground(accent).Bold(true),
		segmentOff: r.NewStyle().Foreground(border).Faint(true),
	}
}

func color(hex string) lipgloss.TerminalColor {
	if hex == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// gradient paints text with the theme gradient from left to right.
func (s styles) gradient(text string, width int) string {
	stops := parseStops(s.theme.Gradient)
	if len(stops) < 2 || width <= 1 {
		return text
	}
	var b strings.Builder
	col := 0
	for _, r := range text {
		c := blendStops(stops, float64(col)/float64(width-1))
		b.WriteString(s.renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render(string(r)))
		col++
	}
	for ; col < width; col++ {
		c := blendStops(stops, float64(col)/float64(width-1))
		b.WriteString(s.renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}
	return b.String()
}

// glowCell shades one backdrop cell. Intensity runs from 0 to
// page.GlowAlpha.
func (s styles) glowCell(intensity float64) string {
	if intensity <= 0 {
		return " "
	}
	level := intensity / page.GlowAlpha
	shades := []rune(glowShades)
	idx := 1 + int(level*float64(len(shades)-1))
	if idx >= len(shades) {
		idx = len(shades) - 1
	}
	cell := string(shades[idx])

	from, errFrom := colorful.Hex(s.theme.Background)
	to, errTo := colorful.Hex(s.theme.Glow)
	if errFrom != nil || errTo != nil {
		return cell
	}
	tint := from.BlendRgb(to, level)
	return s.renderer.NewStyle().Foreground(lipgloss.Color(tint.Hex())).Render(cell)
}

func parseStops(hexes []string) []colorful.Color {
	stops := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		stops = append(stops, c)
	}
	return stops
}

func blendStops(stops []colorful.Color, t float64) colorful.Color {
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	span := t * float64(len(stops)-1)
	i := int(span)
	return stops[i].BlendRgb(stops[i+1], span-float64(i))
}
