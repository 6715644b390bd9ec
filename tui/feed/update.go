package feed

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HyunSeo88/palette-sub001/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResetCursorMsg:
		m.feedCursor = 0
		m.startIndex = 0
		return m, nil

	case ResyncMsg:
		m.resyncPaging()
		m.clampCursors()
		m.ensureCursorVisible()
		return m, nil

	case PostsLoadedMsg, PostsErrorMsg, TopLoadedMsg, TopErrorMsg:
		return m.handleLoadingMsg(msg)

	case DetailLoadedMsg:
		if m.showDetail && msg.Post.ID == m.detailID {
			p := msg.Post
			m.store.SetDetail(&p)
			m.detailErr = nil
		}
		return m, nil

	case DetailErrorMsg:
		if !m.showDetail || msg.ID != m.detailID {
			return m, nil
		}
		if errors.Is(msg.Err, domain.ErrNotFound) {
			m.store.Remove(msg.ID)
			m.closeDetail()
			m.clampCursors()
			return m, nil
		}
		m.detailErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		m.clampCursors()
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if msg.Page <= 1 {
			m.store.SetList(msg.Posts)
			m.feedCursor = 0
			if m.view == ViewFeed {
				m.startIndex = 0
			}
		} else {
			m.store.AppendList(msg.Posts)
		}
		m.page = max(msg.Page, 1)
		m.hasMore = len(msg.Posts) >= m.pageSize
		m.loading = false
		m.loadingMore = false
		m.err = nil
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.loadingMore = false
		m.err = msg.Err
		return m, nil

	case TopLoadedMsg:
		m.store.SetTop(msg.Posts)
		m.topCursor = clamp(m.topCursor, len(msg.Posts))
		m.loadingTop = false
		m.topErr = nil
		return m, nil

	case TopErrorMsg:
		m.loadingTop = false
		m.topErr = msg.Err
		return m, nil
	}
	return m, nil
}

// resyncPaging lowers the page counter to the pages the list still holds.
// Pages dropped by a rollback are fetched again on the next load-more.
func (m *Model) resyncPaging() {
	n := len(m.store.Snapshot().List)
	held := (n + m.pageSize - 1) / m.pageSize
	if held < m.page {
		m.page = held
		m.hasMore = true
	}
}

func (m *Model) closeDetail() {
	m.showDetail = false
	m.detailID = ""
	m.detailErr = nil
	m.confirmDelete = false
	m.store.SetDetail(nil)
}
