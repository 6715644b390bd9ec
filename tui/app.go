package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/HyunSeo88/palette-sub001/app"
	"github.com/HyunSeo88/palette-sub001/app/likes"
	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/infra/config"
	"github.com/HyunSeo88/palette-sub001/infra/editor"
	"github.com/HyunSeo88/palette-sub001/infra/realtime"
	"github.com/HyunSeo88/palette-sub001/tui/common"
	"github.com/HyunSeo88/palette-sub001/tui/compose"
	"github.com/HyunSeo88/palette-sub001/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed        app.FeedService
	Post        app.PostService
	Store       *store.PostStore
	Likes       *likes.Reconciler
	Editor      *editor.EnvEditor
	Updates     <-chan realtime.LikeUpdate // nil disables live counts
	UserID      string
	PageSize    int
	InitialView feed.View
	UIStatePath string // empty disables persistence
	Logger      *zap.Logger
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

// likeSettledMsg carries the remote result of a like toggle back to the
// event loop.
type likeSettledMsg struct {
	pending *likes.Pending
	result  likes.Result
}

type deleteResultMsg struct {
	id      string
	removed store.Removed
	err     error
}

type postCreatedMsg struct {
	post domain.Post
	err  error
}

type likePushMsg struct {
	update realtime.LikeUpdate
}

// App is the root Bubble Tea model. It routes between sub-views and owns
// every remote mutation of the shared store.
type App struct {
	deps    Deps
	active  activeView
	feed    feed.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Posted!")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return App{
		deps:   deps,
		active: feedView,
		feed: feed.New(deps.Feed, deps.Store, feed.Config{
			UserID:      deps.UserID,
			PageSize:    deps.PageSize,
			InitialView: deps.InitialView,
		}),
		keys: common.DefaultKeyMap(),
	}
}

// Init starts the feed and listens for pushed like counts.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.feed.Init(),
		waitForLikeUpdate(a.deps.Updates),
	)
}

func waitForLikeUpdate(ch <-chan realtime.LikeUpdate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return likePushMsg{update: u}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == feedView && !a.feed.IsConfirming() {
			switch {
			case key.Matches(msg, a.keys.Quit) && !a.feed.IsInDetailView():
				return a, tea.Quit
			case key.Matches(msg, a.keys.NewEditor):
				a.active = composeView
				a.status = ""
				a.compose = compose.NewEditor(a.deps.Editor)
				return a, a.compose.Init()
			case key.Matches(msg, a.keys.NewInline):
				a.active = composeView
				a.status = ""
				a.compose = compose.NewInline()
				return a, a.compose.Init()
			}
		}

	case feed.LikePostMsg:
		return a.beginLike(msg.ID)

	case likeSettledMsg:
		if err := a.deps.Likes.Settle(msg.pending, msg.result); err != nil {
			a.deps.Logger.Info("like rolled back", zap.String("post_id", msg.pending.PostID), zap.Error(err))
			a.feed, _ = a.feed.Update(feed.ResyncMsg{})
		}
		return a, nil

	case likePushMsg:
		a.deps.Store.Update(func(s store.Snapshot) store.Snapshot {
			return store.ApplyLikeCount(s, msg.update.PostID, msg.update.LikesCount)
		})
		return a, waitForLikeUpdate(a.deps.Updates)

	case feed.DeletePostMsg:
		removed := a.deps.Store.Take(msg.ID)
		a.status = "Deleting..."
		post := a.deps.Post
		return a, func() tea.Msg {
			err := post.Delete(context.Background(), msg.ID)
			return deleteResultMsg{id: msg.ID, removed: removed, err: err}
		}

	case deleteResultMsg:
		if msg.err != nil {
			a.deps.Store.Restore(msg.removed)
			a.status = "Error deleting: " + msg.err.Error()
			a.deps.Logger.Warn("delete failed", zap.String("post_id", msg.id), zap.Error(msg.err))
		} else {
			a.status = "Post deleted."
		}
		return a, nil

	case feed.ViewChangedMsg:
		return a, a.saveUIState(msg.View)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case compose.DoneMsg:
		a.active = feedView
		switch {
		case msg.Err != nil:
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		case msg.Content == "":
			a.status = "Cancelled."
			return a, nil
		}
		a.status = "Posting..."
		post := a.deps.Post
		return a, func() tea.Msg {
			p, err := post.CreateText(context.Background(), msg.Content)
			return postCreatedMsg{post: p, err: err}
		}

	case postCreatedMsg:
		if msg.err != nil {
			a.status = "Error: " + msg.err.Error()
			return a, nil
		}
		a.deps.Store.Prepend(msg.post)
		a.feed, _ = a.feed.Update(feed.ResetCursorMsg{})
		a.status = "Posted!"
		return a, nil
	}

	// Delegate to the active sub-model.
	switch a.active {
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

// beginLike applies the optimistic toggle now and runs the remote call in
// a command. The result settles against whatever the store holds when it
// arrives.
func (a App) beginLike(postID string) (tea.Model, tea.Cmd) {
	pending, err := a.deps.Likes.Begin(postID, a.deps.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrMissingActor) {
			a.status = "Sign in with `palette login` to like posts."
		} else {
			a.status = "Error: " + err.Error()
		}
		return a, nil
	}
	return a, func() tea.Msg {
		return likeSettledMsg{pending: pending, result: pending.Call(context.Background())}
	}
}

func (a App) saveUIState(v feed.View) tea.Cmd {
	path := a.deps.UIStatePath
	if path == "" {
		return nil
	}
	logger := a.deps.Logger
	return func() tea.Msg {
		if err := config.SaveUIState(path, config.UIState{LastView: string(v)}); err != nil {
			logger.Warn("saving ui state failed", zap.Error(err))
		}
		return nil
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	}

	if recorded := a.deps.Store.Err(); recorded != "" && a.active == feedView {
		s += "\n" + common.ErrorStyle.Render(recorded) +
			common.HintStyle.Render("  l: retry")
	}
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
