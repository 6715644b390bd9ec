package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HyunSeo88/palette-sub001/app/likes"
	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/infra/config"
	"github.com/HyunSeo88/palette-sub001/infra/realtime"
	"github.com/HyunSeo88/palette-sub001/tui/compose"
	"github.com/HyunSeo88/palette-sub001/tui/feed"
)

type emptyFeed struct{}

func (emptyFeed) FetchFeed(context.Context, int, int) ([]domain.Post, error) { return nil, nil }
func (emptyFeed) FetchTop(context.Context, int) ([]domain.Post, error)       { return nil, nil }
func (emptyFeed) FetchPost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, domain.ErrNotFound
}

type fakePosts struct {
	state     domain.LikeState
	likeErr   error
	deleteErr error
	created   domain.Post
	createErr error
	contents  []string
}

func (f *fakePosts) ToggleLike(context.Context, string) (domain.LikeState, error) {
	return f.state, f.likeErr
}

func (f *fakePosts) CreateText(_ context.Context, content string) (domain.Post, error) {
	f.contents = append(f.contents, content)
	return f.created, f.createErr
}

func (f *fakePosts) Delete(context.Context, string) error { return f.deleteErr }

func newTestApp(t *testing.T, userID string, posts *fakePosts) (App, *store.PostStore) {
	t.Helper()
	st := store.New()
	st.SetList([]domain.Post{
		{ID: "p1", Author: "mina", Content: "linen shirt", LikesCount: 3},
		{ID: "p2", Author: "joon", Content: "denim", LikesCount: 1, IsOwn: true},
	})
	a := NewApp(Deps{
		Feed:     emptyFeed{},
		Post:     posts,
		Store:    st,
		Likes:    likes.New(st, posts, nil),
		UserID:   userID,
		PageSize: 20,
	})
	return a, st
}

func step(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func firstPost(st *store.PostStore) domain.Post {
	return st.Snapshot().List[0]
}

func TestLike_OptimisticThenServerState(t *testing.T) {
	posts := &fakePosts{state: domain.LikeState{LikesCount: 10, LikedByCurrentUser: true}}
	a, st := newTestApp(t, "u1", posts)

	a, cmd := step(t, a, feed.LikePostMsg{ID: "p1"})
	require.NotNil(t, cmd)
	assert.Equal(t, 4, firstPost(st).LikesCount)
	assert.True(t, firstPost(st).LikedBy("u1"))

	a, _ = step(t, a, cmd())
	assert.Equal(t, 10, firstPost(st).LikesCount)
	assert.True(t, firstPost(st).LikedBy("u1"))
	assert.Empty(t, st.Err())
	assert.NotContains(t, a.View(), "retry")
}

func TestLike_FailureRollsBackAndShowsMessage(t *testing.T) {
	posts := &fakePosts{likeErr: errors.New("connection refused")}
	a, st := newTestApp(t, "u1", posts)

	a, cmd := step(t, a, feed.LikePostMsg{ID: "p1"})
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	assert.Equal(t, 3, firstPost(st).LikesCount)
	assert.False(t, firstPost(st).LikedBy("u1"))
	assert.Equal(t, domain.DefaultToggleMessage, st.Err())
	assert.Contains(t, a.View(), domain.DefaultToggleMessage)
	assert.Contains(t, a.View(), "l: retry")

	// A later successful toggle clears the recorded error.
	posts.likeErr = nil
	posts.state = domain.LikeState{LikesCount: 4, LikedByCurrentUser: true}
	a, cmd = step(t, a, feed.LikePostMsg{ID: "p1"})
	a, _ = step(t, a, cmd())
	assert.Empty(t, st.Err())
	assert.NotContains(t, a.View(), "l: retry")
}

func TestLike_WithoutUserLeavesStoreUntouched(t *testing.T) {
	a, st := newTestApp(t, "", &fakePosts{})
	before := st.Snapshot()

	a, cmd := step(t, a, feed.LikePostMsg{ID: "p1"})
	assert.Nil(t, cmd)
	assert.Equal(t, before, st.Snapshot())
	assert.Contains(t, a.View(), "Sign in")
}

func TestDelete_FailureRestoresPost(t *testing.T) {
	a, st := newTestApp(t, "u1", &fakePosts{deleteErr: errors.New("forbidden")})

	a, cmd := step(t, a, feed.DeletePostMsg{ID: "p2"})
	require.NotNil(t, cmd)
	assert.Len(t, st.Snapshot().List, 1)

	a, _ = step(t, a, cmd())
	assert.Len(t, st.Snapshot().List, 2)
	assert.Contains(t, a.View(), "Error deleting: forbidden")
}

func TestDelete_Success(t *testing.T) {
	a, st := newTestApp(t, "u1", &fakePosts{})

	a, cmd := step(t, a, feed.DeletePostMsg{ID: "p2"})
	a, _ = step(t, a, cmd())
	require.Len(t, st.Snapshot().List, 1)
	assert.Equal(t, "p1", firstPost(st).ID)
	assert.Contains(t, a.View(), "Post deleted.")
}

func TestCompose_PublishPrependsPost(t *testing.T) {
	posts := &fakePosts{created: domain.Post{ID: "p9", Author: "me", Content: "new fit", IsOwn: true}}
	a, st := newTestApp(t, "u1", posts)

	a, cmd := step(t, a, compose.DoneMsg{Content: "new fit"})
	require.NotNil(t, cmd)
	assert.Contains(t, a.View(), "Posting...")

	a, _ = step(t, a, cmd())
	assert.Equal(t, []string{"new fit"}, posts.contents)
	assert.Equal(t, "p9", firstPost(st).ID)
	assert.Contains(t, a.View(), "Posted!")
}

func TestCompose_Cancelled(t *testing.T) {
	posts := &fakePosts{}
	a, _ := newTestApp(t, "u1", posts)

	a, cmd := step(t, a, compose.DoneMsg{})
	assert.Nil(t, cmd)
	assert.Empty(t, posts.contents)
	assert.Contains(t, a.View(), "Cancelled.")
}

func TestCompose_ErrorIsReported(t *testing.T) {
	a, st := newTestApp(t, "u1", &fakePosts{createErr: domain.ErrPostTooLong})

	a, cmd := step(t, a, compose.DoneMsg{Content: "too long"})
	a, _ = step(t, a, cmd())
	assert.Len(t, st.Snapshot().List, 2)
	assert.Contains(t, a.View(), "Error:")
}

func TestLikePush_UpdatesCountAndKeepsListening(t *testing.T) {
	ch := make(chan realtime.LikeUpdate, 1)
	st := store.New()
	st.SetList([]domain.Post{{ID: "p1", LikesCount: 3}})
	posts := &fakePosts{}
	a := NewApp(Deps{Feed: emptyFeed{}, Post: posts, Store: st, Likes: likes.New(st, posts, nil), Updates: ch})

	a, cmd := step(t, a, likePushMsg{update: realtime.LikeUpdate{PostID: "p1", LikesCount: 7}})
	assert.Equal(t, 7, firstPost(st).LikesCount)
	require.NotNil(t, cmd)

	ch <- realtime.LikeUpdate{PostID: "p1", LikesCount: 8}
	assert.Equal(t, likePushMsg{update: realtime.LikeUpdate{PostID: "p1", LikesCount: 8}}, cmd())

	close(ch)
	_, cmd = step(t, a, likePushMsg{update: realtime.LikeUpdate{PostID: "p1", LikesCount: 8}})
	assert.Nil(t, cmd())
}

func TestViewChange_PersistsUIState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.json")
	st := store.New()
	posts := &fakePosts{}
	a := NewApp(Deps{Feed: emptyFeed{}, Post: posts, Store: st, Likes: likes.New(st, posts, nil), UIStatePath: path})

	_, cmd := step(t, a, feed.ViewChangedMsg{View: feed.ViewTop})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	got, err := config.LoadUIState(path)
	require.NoError(t, err)
	assert.Equal(t, "top", got.LastView)
}

func TestKeys_Quit(t *testing.T) {
	a, _ := newTestApp(t, "u1", &fakePosts{})

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestKeys_InlineComposeOpens(t *testing.T) {
	a, _ := newTestApp(t, "u1", &fakePosts{})

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("P")})
	assert.Equal(t, composeView, a.active)
	assert.Contains(t, a.View(), "New post")
}

func TestDelete_FailureKeepsLikeCommittedMeanwhile(t *testing.T) {
	posts := &fakePosts{
		state:     domain.LikeState{LikesCount: 10, LikedByCurrentUser: true},
		deleteErr: errors.New("forbidden"),
	}
	a, st := newTestApp(t, "u1", posts)

	a, deleteCmd := step(t, a, feed.DeletePostMsg{ID: "p2"})
	require.NotNil(t, deleteCmd)
	a, likeCmd := step(t, a, feed.LikePostMsg{ID: "p1"})
	require.NotNil(t, likeCmd)
	a, _ = step(t, a, likeCmd())
	require.Equal(t, 10, firstPost(st).LikesCount)

	a, _ = step(t, a, deleteCmd())

	snap := st.Snapshot()
	require.Len(t, snap.List, 2)
	assert.Equal(t, "p1", snap.List[0].ID)
	assert.Equal(t, 10, snap.List[0].LikesCount)
	assert.True(t, snap.List[0].LikedBy("u1"))
	assert.Equal(t, "p2", snap.List[1].ID)
	assert.Contains(t, a.View(), "Error deleting: forbidden")
}

type pagingFeed struct {
	emptyFeed
	calls []int
}

func (p *pagingFeed) FetchFeed(_ context.Context, page, _ int) ([]domain.Post, error) {
	p.calls = append(p.calls, page)
	return nil, nil
}

func TestLike_RollbackRefetchesPageLoadedMeanwhile(t *testing.T) {
	pf := &pagingFeed{}
	st := store.New()
	posts := &fakePosts{likeErr: errors.New("offline")}
	a := NewApp(Deps{Feed: pf, Post: posts, Store: st, Likes: likes.New(st, posts, nil), UserID: "u1", PageSize: 2})

	a, _ = step(t, a, feed.PostsLoadedMsg{Posts: []domain.Post{{ID: "p1"}, {ID: "p2"}}, Page: 1})
	a, likeCmd := step(t, a, feed.LikePostMsg{ID: "p1"})
	require.NotNil(t, likeCmd)
	a, _ = step(t, a, feed.PostsLoadedMsg{Posts: []domain.Post{{ID: "q1"}, {ID: "q2"}}, Page: 2})
	require.Len(t, st.Snapshot().List, 4)

	a, _ = step(t, a, likeCmd())
	require.Len(t, st.Snapshot().List, 2, "rollback restores the list from before page 2")

	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []int{2}, pf.calls)
}
