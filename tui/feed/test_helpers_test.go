package feed

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
)

type stubFeed struct {
	pages     map[int][]domain.Post
	top       []domain.Post
	detail    map[string]domain.Post
	detailErr error
	pageCalls []int
}

func (s *stubFeed) FetchFeed(_ context.Context, page, _ int) ([]domain.Post, error) {
	s.pageCalls = append(s.pageCalls, page)
	return s.pages[page], nil
}

func (s *stubFeed) FetchTop(context.Context, int) ([]domain.Post, error) {
	return s.top, nil
}

func (s *stubFeed) FetchPost(_ context.Context, id string) (domain.Post, error) {
	if s.detailErr != nil {
		return domain.Post{}, s.detailErr
	}
	p, ok := s.detail[id]
	if !ok {
		return domain.Post{}, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func makePosts(prefix string, n int) []domain.Post {
	out := make([]domain.Post, n)
	for i := range out {
		out[i] = domain.Post{
			ID:         fmt.Sprintf("%s%d", prefix, i+1),
			Author:     "mina",
			Kind:       domain.KindOOTD,
			Content:    fmt.Sprintf("look %d", i+1),
			LikesCount: i,
		}
	}
	return out
}

func newTestModel(feed *stubFeed, pageSize int) (Model, *store.PostStore) {
	st := store.New()
	m := New(feed, st, Config{UserID: "u1", PageSize: pageSize})
	return m, st
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// loaded applies the first feed page and the top posts to m.
func loaded(m Model, list, top []domain.Post) Model {
	m, _ = m.Update(PostsLoadedMsg{Posts: list, Page: 1})
	m, _ = m.Update(TopLoadedMsg{Posts: top})
	return m
}
