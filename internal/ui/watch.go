package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/folio/internal/content"
)

// enqueue hands a timer callback to the program loop. It gives up once the
// model is closed.
func (m *Model) enqueue(fn func()) {
	select {
	case m.dispatchCh <- fn:
	case <-m.done:
	}
}

func (m *Model) waitForDispatch() tea.Cmd {
	if m.dispatchCh == nil {
		return nil
	}
	ch, done := m.dispatchCh, m.done
	return func() tea.Msg {
		select {
		case fn := <-ch:
			return dispatchMsg{fn: fn}
		case <-done:
			return nil
		}
	}
}

func (m *Model) startWatching() tea.Cmd {
	if m.watcher != nil {
		return m.waitForChange()
	}
	w, err := content.Watch(m.watchDir)
	if err != nil {
		m.err = err
		m.log.Warn("content watch unavailable", "dir", m.watchDir, "err", err)
		return nil
	}
	m.watcher = w
	m.log.Debug("watching content", "dir", m.watchDir)
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case path, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return contentChangedMsg{path: path}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return contentWatchErrMsg{err: err}
		}
	}
}

// reload reads the sections again and re-renders them in place.
func (m *Model) reload(path string) {
	if m.loader == nil {
		return
	}
	sections, err := m.loader.Load()
	if err != nil {
		m.err = err
		m.log.Warn("content reload failed", "path", path, "err", err)
		return
	}
	site, err := content.Assemble(m.site.Variant, sections)
	if err == nil && len(m.keys) > 0 {
		site, err = site.Filter(m.keys)
	}
	if err != nil {
		m.err = err
		m.log.Warn("content reload failed", "path", path, "err", err)
		return
	}

	offset := m.vp.YOffset
	m.setSite(site)
	m.rebuild()
	if m.err == nil {
		m.vp.SetYOffset(offset)
	}
	m.log.Info("content reloaded", "path", path, "sections", len(site.Sections))
}
