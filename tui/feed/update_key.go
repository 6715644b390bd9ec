package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints
		return m, nil

	case key.Matches(msg, m.keys.Like):
		if p, ok := m.Selected(); ok {
			return m, emit(LikePostMsg{ID: p.ID})
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.Selected(); ok && p.IsOwn {
			m.confirmDelete = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	}

	if m.showDetail {
		if key.Matches(msg, m.keys.Back) {
			m.closeDetail()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		_, cursor := m.visible(m.store.Snapshot())
		if cursor > 0 {
			m.setCursor(cursor - 1)
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		return m.moveDown()

	case key.Matches(msg, m.keys.SwitchView):
		return m.switchView()

	case key.Matches(msg, m.keys.Open):
		p, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.store.SetDetail(&p)
		m.showDetail = true
		m.detailID = p.ID
		m.detailErr = nil
		return m, m.fetchDetail(p.ID)
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.confirmDelete = false
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}
	p, ok := m.Selected()
	if !ok {
		return m, nil
	}
	return m, emit(DeletePostMsg{ID: p.ID})
}

func (m Model) moveDown() (Model, tea.Cmd) {
	posts, cursor := m.visible(m.store.Snapshot())
	if cursor < len(posts)-1 {
		m.setCursor(cursor + 1)
		m.ensureCursorVisible()
		return m, nil
	}
	// At the bottom of the feed: fetch the next page.
	if m.view == ViewFeed && m.hasMore && !m.loadingMore && !m.loading {
		m.loadingMore = true
		return m, m.fetchPage(m.page+1, m.reqSeq)
	}
	return m, nil
}

func (m Model) switchView() (Model, tea.Cmd) {
	if m.view == ViewFeed {
		m.view = ViewTop
	} else {
		m.view = ViewFeed
	}
	m.startIndex = 0
	m.ensureCursorVisible()

	cmds := []tea.Cmd{emit(ViewChangedMsg{View: m.view})}
	if m.view == ViewTop && len(m.store.Snapshot().Top) == 0 && !m.loadingTop {
		m.loadingTop = true
		cmds = append(cmds, m.fetchTop())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) refresh() (Model, tea.Cmd) {
	switch {
	case m.showDetail:
		return m, m.fetchDetail(m.detailID)
	case m.view == ViewTop:
		m.loadingTop = true
		return m, m.fetchTop()
	default:
		m.reqSeq++
		m.loading = true
		m.loadingMore = false
		return m, m.fetchPage(1, m.reqSeq)
	}
}

// ensureCursorVisible scrolls the list window so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	_, cursor := m.visible(m.store.Snapshot())
	visible := m.visibleCount()
	if cursor < m.startIndex {
		m.startIndex = cursor
	}
	if cursor >= m.startIndex+visible {
		m.startIndex = cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

// visibleCount is how many cards fit below the header.
func (m Model) visibleCount() int {
	const reserved = 9 // header, tabs, status and hint lines
	return max((m.height-reserved)/cardHeight, 1)
}
