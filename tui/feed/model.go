package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HyunSeo88/palette-sub001/app"
	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/tui/common"
)

const (
	defaultLimit = 20
	topLimit     = 10
)

// View names the tab shown in the list area.
type View string

const (
	ViewFeed View = "feed"
	ViewTop  View = "top"
)

// --- Messages ---

// PostsLoadedMsg carries one page of the feed list.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	Page   int
	ReqSeq int
}

// PostsErrorMsg is sent when a feed page fetch fails.
type PostsErrorMsg struct {
	Err    error
	Page   int
	ReqSeq int
}

// TopLoadedMsg carries the top posts.
type TopLoadedMsg struct {
	Posts []domain.Post
}

// TopErrorMsg is sent when the top posts fetch fails.
type TopErrorMsg struct {
	Err error
}

// DetailLoadedMsg carries a fresh copy of the post open in detail.
type DetailLoadedMsg struct {
	Post domain.Post
}

// DetailErrorMsg is sent when the detail fetch fails.
type DetailErrorMsg struct {
	ID  string
	Err error
}

// LikePostMsg asks the root model to toggle the user's like on a post.
type LikePostMsg struct {
	ID string
}

// DeletePostMsg asks the root model to delete a post.
type DeletePostMsg struct {
	ID string
}

// ViewChangedMsg reports a Feed/Top switch so the choice can be persisted.
type ViewChangedMsg struct {
	View View
}

// ResyncMsg tells the feed its caches were rolled back underneath it, so
// paging must be recomputed from what the store still holds.
type ResyncMsg struct{}

// ResetCursorMsg moves the feed cursor back to the newest post.
type ResetCursorMsg struct{}

// --- Model ---

// Config holds per-session feed settings.
type Config struct {
	UserID      string // Marks which posts the user liked
	PageSize    int
	InitialView View
}

// Model renders the Feed, Top and Detail views from a shared PostStore.
// The store is the source of truth for posts; the model keeps only
// navigation and loading state.
type Model struct {
	feed     app.FeedService
	store    *store.PostStore
	keys     common.KeyMap
	spinner  spinner.Model
	userID   string
	pageSize int

	view       View
	feedCursor int
	topCursor  int
	startIndex int

	showDetail bool
	detailID   string

	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
	loadingTop  bool
	reqSeq      int
	err         error
	topErr      error
	detailErr   error

	confirmDelete bool
	showHints     bool
	width         int
	height        int
}

// New creates a feed model with injected dependencies.
func New(feed app.FeedService, st *store.PostStore, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8639A"))

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultLimit
	}
	if cfg.InitialView != ViewTop {
		cfg.InitialView = ViewFeed
	}

	return Model{
		feed:       feed,
		store:      st,
		keys:       common.DefaultKeyMap(),
		spinner:    s,
		userID:     cfg.UserID,
		pageSize:   cfg.PageSize,
		view:       cfg.InitialView,
		loading:    true,
		loadingTop: true,
		width:      80,
		height:     40,
	}
}

// Init starts the first feed page, the top posts and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(1, m.reqSeq),
		m.fetchTop(),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// ActiveView reports the visible tab.
func (m Model) ActiveView() View { return m.view }

// IsInDetailView reports whether the detail view is open.
func (m Model) IsInDetailView() bool { return m.showDetail }

// IsConfirming reports whether a delete confirmation is pending.
func (m Model) IsConfirming() bool { return m.confirmDelete }

// Selected returns the post under the cursor in the active view.
func (m Model) Selected() (domain.Post, bool) {
	snap := m.store.Snapshot()
	if m.showDetail {
		if snap.Detail != nil && snap.Detail.ID == m.detailID {
			return *snap.Detail, true
		}
		return domain.Post{}, false
	}
	posts, cursor := m.visible(snap)
	if cursor < 0 || cursor >= len(posts) {
		return domain.Post{}, false
	}
	return posts[cursor], true
}

// visible returns the list backing the active tab and its cursor.
func (m Model) visible(snap store.Snapshot) ([]domain.Post, int) {
	if m.view == ViewTop {
		return snap.Top, m.topCursor
	}
	return snap.List, m.feedCursor
}

func (m *Model) setCursor(i int) {
	if m.view == ViewTop {
		m.topCursor = i
		return
	}
	m.feedCursor = i
}

// clampCursors keeps both cursors inside their lists after the store changed.
func (m *Model) clampCursors() {
	snap := m.store.Snapshot()
	m.feedCursor = clamp(m.feedCursor, len(snap.List))
	m.topCursor = clamp(m.topCursor, len(snap.Top))
	if m.showDetail && (snap.Detail == nil || snap.Detail.ID != m.detailID) {
		m.showDetail = false
		m.detailID = ""
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
