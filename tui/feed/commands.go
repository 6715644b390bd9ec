package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchPage(page, reqSeq int) tea.Cmd {
	feed := m.feed
	limit := m.pageSize
	return func() tea.Msg {
		posts, err := feed.FetchFeed(context.Background(), page, limit)
		if err != nil {
			return PostsErrorMsg{Err: err, Page: page, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: posts, Page: page, ReqSeq: reqSeq}
	}
}

func (m Model) fetchTop() tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		posts, err := feed.FetchTop(context.Background(), topLimit)
		if err != nil {
			return TopErrorMsg{Err: err}
		}
		return TopLoadedMsg{Posts: posts}
	}
}

func (m Model) fetchDetail(id string) tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		p, err := feed.FetchPost(context.Background(), id)
		if err != nil {
			return DetailErrorMsg{ID: id, Err: err}
		}
		return DetailLoadedMsg{Post: p}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
