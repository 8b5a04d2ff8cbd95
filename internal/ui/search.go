package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	m.pendingKey = ""
	if m.searchQuery != "" {
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.CursorEnd()
	} else {
		m.searchInput.SetValue("")
	}
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) clearSearch() {
	m.searchQuery = ""
	m.searchMatches = nil
	m.searchIndex = -1
	m.err = nil
}

func (m *Model) searchStatusLine() string {
	if m.searchQuery == "" {
		return ""
	}
	total := len(m.searchMatches)
	if total == 0 || m.searchIndex < 0 {
		return fmt.Sprintf("/%s (0/0)", m.searchQuery)
	}
	return fmt.Sprintf("/%s (%d/%d)", m.searchQuery, m.searchIndex+1, total)
}

func (m *Model) performSearch(query string, resetIndex bool) {
	query = strings.TrimSpace(query)
	m.searchQuery = query
	m.searchMatches = findSearchMatches(m.doc.text, query)
	if len(m.searchMatches) == 0 {
		m.searchIndex = -1
		m.err = fmt.Errorf("no match for %q", query)
		return
	}
	if resetIndex || m.searchIndex < 0 || m.searchIndex >= len(m.searchMatches) {
		m.searchIndex = 0
	}
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) nextSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	if m.searchIndex < 0 {
		m.searchIndex = 0
	} else {
		m.searchIndex = (m.searchIndex + 1) % len(m.searchMatches)
	}
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) previousSearchMatch() {
	if len(m.searchMatches) == 0 {
		return
	}
	if m.searchIndex <= 0 {
		m.searchIndex = len(m.searchMatches) - 1
	} else {
		m.searchIndex--
	}
	m.err = nil
	m.gotoSearchMatch()
}

func (m *Model) gotoSearchMatch() {
	if len(m.searchMatches) == 0 || m.searchIndex < 0 || m.doc.lines == 0 {
		return
	}
	targetLine := m.searchMatches[m.searchIndex]
	maxOffset := max(m.doc.lines-m.vp.Height, 0)
	m.vp.SetYOffset(clamp(targetLine, 0, maxOffset))
}

// onContentChanged keeps the current match after a re-render, moving to
// the nearest line that still matches.
func (m *Model) onContentChanged() {
	if m.searchQuery == "" {
		return
	}

	prevLine := -1
	if len(m.searchMatches) > 0 && m.searchIndex >= 0 && m.searchIndex < len(m.searchMatches) {
		prevLine = m.searchMatches[m.searchIndex]
	}

	m.searchMatches = findSearchMatches(m.doc.text, m.searchQuery)
	if len(m.searchMatches) == 0 {
		m.searchIndex = -1
		m.err = fmt.Errorf("no match for %q", m.searchQuery)
		return
	}

	if prevLine >= 0 {
		m.searchIndex = closestMatchIndex(m.searchMatches, prevLine)
	} else if m.searchIndex < 0 || m.searchIndex >= len(m.searchMatches) {
		m.searchIndex = 0
	}
	m.err = nil
	m.gotoSearchMatch()
}

// findSearchMatches returns the line of every case-insensitive occurrence
// of query in the rendered document. Each line is lower-cased on its own so
// that offsets never cross between the original and lower-cased text.
func findSearchMatches(rendered, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || rendered == "" {
		return nil
	}

	var matches []int
	for i, line := range strings.Split(ansi.Strip(rendered), "\n") {
		lower := strings.ToLower(line)
		for offset := 0; ; {
			pos := strings.Index(lower[offset:], query)
			if pos == -1 {
				break
			}
			matches = append(matches, i)
			offset += pos + len(query)
		}
	}
	return matches
}

func closestMatchIndex(matches []int, line int) int {
	if len(matches) == 0 {
		return 0
	}
	bestIndex := 0
	bestDiff := absInt(matches[0] - line)
	for i := 1; i < len(matches); i++ {
		if diff := absInt(matches[i] - line); diff < bestDiff {
			bestDiff = diff
			bestIndex = i
		}
	}
	return bestIndex
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
