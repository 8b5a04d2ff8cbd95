package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"pkt.systems/pslog"

	"github.com/kyaoi/folio/internal/content"
	"github.com/kyaoi/folio/internal/page"
)

const (
	// tabs row, underline row, glow row
	headerHeight    = 3
	footerHeight    = 1
	gutterWidth     = 1
	minContentWidth = 20
	dispatchBuffer  = 16
)

// Model implements the Bubble Tea program for the portfolio page.
type Model struct {
	vp          viewport.Model
	renderer    *glamour.TermRenderer
	styles      styles
	site        *content.Site
	headlineKey string
	ctrl        *page.Controller

	blocks     []sectionBlock
	doc        document
	lastOffset int
	lastHeight int

	showHelp   bool
	pendingKey string
	ready      bool
	width      int
	height     int
	err        error

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int

	loader   content.Loader
	keys     []string
	watchDir string
	watcher  *content.Watcher

	dispatchCh chan func()
	done       chan struct{}
	closeOnce  sync.Once
	log        pslog.Logger
}

type dispatchMsg struct {
	fn func()
}

type contentChangedMsg struct {
	path string
}

type contentWatchErrMsg struct {
	err error
}

// NewModel constructs the page model with the provided initial state.
func NewModel(state State) *Model {
	st := newStyles(state.Site.Variant.Theme, state.Renderer)
	vp := viewport.New(0, 0)
	vp.Style = st.renderer.NewStyle().Padding(0, 1)

	m := &Model{
		vp:          vp,
		styles:      st,
		site:        state.Site,
		loader:      state.Loader,
		keys:        state.Keys,
		watchDir:    state.WatchDir,
		searchIndex: -1,
		lastOffset:  -1,
		done:        make(chan struct{}),
		log:         state.Logger,
	}
	if m.log == nil {
		m.log = pslog.Ctx(context.Background())
	}

	dispatch := state.Dispatch
	if dispatch == nil {
		m.dispatchCh = make(chan func(), dispatchBuffer)
		dispatch = m.enqueue
	}

	headline, _ := state.Site.Headline()
	m.headlineKey = headline.Key
	speed := state.TypingSpeed
	if headline.Speed > 0 {
		speed = headline.Speed
	}
	m.ctrl = page.NewController(page.Options{
		Tabs:          state.Site.Tabs(),
		Clock:         state.Clock,
		Dispatch:      dispatch,
		PreloadPeriod: state.PreloadPeriod,
		RevealDelay:   state.RevealDelay,
		TypingSpeed:   speed,
		Headline:      headline.Typed,
		SkipPreloader: state.SkipPreloader,
	})

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search"
	searchInput.CursorEnd()
	searchInput.Blur()
	m.searchInput = searchInput

	return m
}

// Init implements tea.Model. It mounts the page effects.
func (m *Model) Init() tea.Cmd {
	m.ctrl.Mount()
	cmds := []tea.Cmd{m.waitForDispatch()}
	if m.watchDir != "" {
		cmds = append(cmds, m.startWatching())
	}
	return tea.Batch(cmds...)
}

// Close unmounts the page and stops watching for content changes. It is
// safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.ctrl.Unmount()
		close(m.done)
		if m.watcher != nil {
			_ = m.watcher.Close()
		}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	state := m.ctrl.State()
	if state.Preloader.Loading() {
		box := renderPreloader(state.Preloader, m.site.Variant.Monogram, m.styles)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	if m.showHelp {
		helpContent := strings.Join([]string{
			"Help (? / esc to close)",
			"j / k            : scroll",
			"ctrl+d / ctrl+u  : half page down / up",
			"gg / G           : top / bottom",
			"tab / shift+tab  : next / previous section",
			"1-9              : jump to section",
			"t                : back to top",
			"/                : search",
			"n / N            : next / previous match",
			"q / ctrl+c       : quit",
		}, "\n")
		helpOverlay := m.styles.helpBox.Render(helpContent)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	header, _ := renderHeader(m.site.Variant, m.site.Tabs(), state.Active, m.width, m.styles)
	radius := m.glowRadius()
	glowRow := renderGlowRow(state.Glow, m.width, radius, m.styles)
	gutter := renderGutter(state.Glow, headerHeight, m.vp.Height, radius, m.styles)
	body := lipgloss.JoinHorizontal(lipgloss.Top, gutter, m.vp.View())

	var footer string
	switch {
	case m.err != nil:
		footer = m.styles.errLine.Render(ansi.Truncate(m.err.Error(), max(m.width, 0), "…"))
	case m.searchActive:
		footer = m.styles.searchBar.Render(m.searchInput.View())
	default:
		footer = renderFooter(m.vp.YOffset, m.doc.lines, m.vp.Height, m.width, m.searchStatusLine(), m.styles)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, glowRow, body, footer)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncScroll()

	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		m.refresh()
		return m, m.waitForDispatch()
	case contentChangedMsg:
		m.reload(msg.path)
		return m, m.waitForChange()
	case contentWatchErrMsg:
		m.err = msg.err
		m.log.Warn("content watch failed", "dir", m.watchDir, "err", msg.err)
		return m, m.waitForChange()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.ctrl.State().Preloader.Loading() {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		if m.searchActive {
			switch msg.Type {
			case tea.KeyEnter:
				query := strings.TrimSpace(m.searchInput.Value())
				m.exitSearchMode()
				if query == "" {
					m.clearSearch()
					return m, nil
				}
				m.performSearch(query, true)
				return m, nil
			case tea.KeyEsc, tea.KeyCtrlC:
				m.exitSearchMode()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		key := msg.String()
		if key != "g" {
			m.pendingKey = ""
		}

		if m.showHelp {
			m.pendingKey = ""
			switch key {
			case "q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			m.pendingKey = ""
			return m, nil
		case "/":
			return m, m.enterSearchMode()
		case "n":
			if len(m.searchMatches) > 0 {
				m.nextSearchMatch()
				return m, nil
			}
		case "N":
			if len(m.searchMatches) > 0 {
				m.previousSearchMatch()
				return m, nil
			}
		case "tab":
			m.navigate(m.site.Tabs().Next(m.ctrl.State().Active))
			return m, nil
		case "shift+tab":
			m.navigate(m.site.Tabs().Prev(m.ctrl.State().Active))
			return m, nil
		case "t":
			m.vp.GotoTop()
			return m, nil
		}

		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			tabs := m.site.Tabs()
			if i := int(key[0] - '1'); i < len(tabs) {
				m.navigate(tabs[i])
			}
			return m, nil
		}

		if m.handleContentKey(key) {
			return m, nil
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j":
		m.vp.ScrollDown(1)
	case "k":
		m.vp.ScrollUp(1)
	case "ctrl+d":
		m.vp.HalfPageDown()
	case "ctrl+u":
		m.vp.HalfPageUp()
	case "g":
		if m.pendingKey == "g" {
			m.vp.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.pendingKey = ""
		m.vp.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl.State().Preloader.Loading() {
		return nil
	}
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMove(msg.X, msg.Y)
		return nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0:
		if tab, ok := m.tabAt(msg.X); ok {
			m.navigate(tab)
		}
		return nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return cmd
}

// navigate scrolls the section of tab into view.
func (m *Model) navigate(tab page.Tab) {
	if top, ok := m.ctrl.Navigate(tab); ok {
		m.vp.SetYOffset(top)
	}
}

func (m *Model) tabAt(x int) (page.Tab, bool) {
	_, hits := renderHeader(m.site.Variant, m.site.Tabs(), m.ctrl.State().Active, m.width, m.styles)
	for _, hit := range hits {
		if x >= hit.start && x < hit.end {
			return hit.tab, true
		}
	}
	return "", false
}

// syncScroll reports viewport movement to the scroll listeners.
func (m *Model) syncScroll() {
	if !m.ready || !m.ctrl.Mounted() {
		return
	}
	if m.vp.YOffset == m.lastOffset && m.vp.Height == m.lastHeight {
		return
	}
	m.lastOffset, m.lastHeight = m.vp.YOffset, m.vp.Height
	m.ctrl.Scroll(m.vp.YOffset, m.vp.Height)
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= headerHeight+footerHeight {
		return
	}

	m.width = width
	m.height = height
	m.ready = true

	m.vp.Width = max(width-gutterWidth, minContentWidth)
	m.vp.Height = max(height-headerHeight-footerHeight, 1)

	m.rebuild()
	m.ctrl.Resize(width, m.vp.Height)
	m.lastOffset, m.lastHeight = m.vp.YOffset, m.vp.Height
}

func (m *Model) wrapWidth() int {
	return max(m.vp.Width-m.vp.Style.GetHorizontalFrameSize(), 0)
}

// rebuild renders every section at the current width and lays them out.
func (m *Model) rebuild() {
	if !m.ready {
		return
	}
	renderer, err := newRenderer(m.styles.theme.Markdown, m.wrapWidth(), m.styles.renderer.ColorProfile())
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer

	blocks := make([]sectionBlock, 0, len(m.site.Sections))
	for _, sec := range m.site.Sections {
		var body string
		if sec.Body != "" {
			rendered, err := m.renderer.Render(sec.Body)
			if err != nil {
				m.err = fmt.Errorf("render %s: %w", sec.Key, err)
				return
			}
			body = rendered
		}
		blocks = append(blocks, sectionBlock{
			tab:      page.Tab(sec.Label),
			key:      sec.Key,
			heading:  sec.Heading,
			headline: sec.Key == m.headlineKey,
			body:     body,
		})
	}
	m.err = nil
	m.blocks = blocks
	m.refresh()
	m.ctrl.SetLayout(m.doc.layout)
	m.onContentChanged()
}

// refresh recomposes the document from the rendered sections and the
// current typing state.
func (m *Model) refresh() {
	if !m.ready || m.blocks == nil {
		return
	}
	m.doc = composeDocument(m.blocks, m.ctrl.State().Typing, m.wrapWidth(), m.vp.Height, m.styles)
	m.vp.SetContent(m.doc.text)
}

func (m *Model) glowRadius() float64 {
	return float64(max(m.width, m.height*2)) / 3
}

func (m *Model) setSite(site *content.Site) {
	m.site = site
	headline, _ := site.Headline()
	m.headlineKey = headline.Key
	m.ctrl.SetHeadline(headline.Typed)
}

func newRenderer(style string, width int, profile termenv.Profile) (*glamour.TermRenderer, error) {
	if style == "" {
		style = glamourstyles.DarkStyle
	}
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
