package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/tui/common"
)

// cardHeight is the rendered height of one post card including its border.
const cardHeight = 6

// View renders the active view from the current store snapshot.
func (m Model) View() string {
	if m.showDetail {
		return m.renderDetailView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	snap := m.store.Snapshot()
	posts, cursor := m.visible(snap)
	loading, err := m.loading, m.err
	if m.view == ViewTop {
		loading, err = m.loadingTop, m.topErr
	}

	switch {
	case loading && len(posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case err != nil && len(posts) == 0:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(posts) == 0:
		b.WriteString("  No posts yet. Press p to share one.\n")
	default:
		b.WriteString(m.renderList(posts, cursor))
	}

	b.WriteString(m.renderFooter(err, len(posts) > 0))
	return b.String()
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("Palette")
	tagline := common.TaglineStyle.Render("outfits of the day")

	feedTab := common.TabInactiveStyle.Render("Feed")
	topTab := common.TabInactiveStyle.Render("Top")
	if m.view == ViewTop {
		topTab = common.TabActiveStyle.Render("Top")
	} else {
		feedTab = common.TabActiveStyle.Render("Feed")
	}
	return title + tagline + "\n " + feedTab + topTab + "\n"
}

func (m Model) renderList(posts []domain.Post, cursor int) string {
	start := clamp(m.startIndex, len(posts))
	end := min(start+m.visibleCount(), len(posts))

	var b strings.Builder
	for i := start; i < end; i++ {
		card := m.renderCard(posts[i], i, m.contentWidth())
		if i == cursor {
			card = common.SelectedStyle.Render(card)
			if m.confirmDelete {
				card += "\n" + common.ConfirmStyle.Render("  Delete this post? (y/n)")
			}
		} else {
			card = common.UnselectedStyle.Render(card)
		}
		b.WriteString(card)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCard(p domain.Post, rank int, width int) string {
	head := m.renderByline(p)
	if m.view == ViewTop {
		head = common.KindStyle.Render(fmt.Sprintf("#%d", rank+1)) + " " + head
	}

	content := p.Content
	if content == "" && p.ImageURL != "" {
		content = "[photo]"
	}
	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
	var body strings.Builder
	for _, line := range strings.Split(common.TruncateLines(content, width, 2), "\n") {
		body.WriteString(indicator + common.ContentStyle.Render(line) + "\n")
	}

	return head + "\n" + strings.TrimSuffix(body.String(), "\n") + "\n" + m.renderMeta(p)
}

func (m Model) renderByline(p domain.Post) string {
	author := common.AuthorStyle.Render("@" + displayName(p))
	if p.IsOwn {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	kind := common.KindStyle.Render(string(p.Kind))
	ts := ""
	if !p.CreatedAt.IsZero() {
		ts = "  " + common.TimestampStyle.Render(p.CreatedAt.Local().Format("Jan 02 15:04"))
	}
	return author + kind + ts
}

func (m Model) renderMeta(p domain.Post) string {
	heart := common.MetadataStyle.Render("♡")
	if p.LikedBy(m.userID) {
		heart = common.LikeActiveStyle.Render("♥")
	}
	return heart + common.MetadataStyle.Render(fmt.Sprintf(" %d  💬 %d", p.LikesCount, p.CommentsCount))
}

func (m Model) renderFooter(err error, hasPosts bool) string {
	var lines []string
	if m.view == ViewFeed && hasPosts {
		switch {
		case m.loadingMore:
			lines = append(lines, fmt.Sprintf("  %s Loading more...", m.spinner.View()))
		case err != nil:
			lines = append(lines, common.ErrorStyle.Render(fmt.Sprintf("  Could not load more: %v", err)))
		case m.hasMore:
			lines = append(lines, common.MetadataStyle.Render("  ↓ load more"))
		}
	}
	lines = append(lines, m.renderHints())
	return strings.Join(lines, "\n")
}

func (m Model) renderHints() string {
	k := m.keys
	switch {
	case m.showDetail && m.showHints:
		return common.HintStyle.Render(common.HintLine(k.Like, k.Refresh, k.Delete, k.Back, k.ToggleHints))
	case m.showDetail:
		return common.HintStyle.Render(common.HintLine(k.Like, k.Back, k.ToggleHints))
	case !m.showHints:
		return common.HintStyle.Render(common.HintLine(k.Like, k.Open, k.SwitchView, k.ToggleHints))
	}
	return common.HintStyle.Render(common.HintLine(
		k.Up, k.Down, k.Open, k.SwitchView, k.Like, k.Refresh,
		k.Delete, k.NewEditor, k.NewInline, k.ToggleHints, k.Quit,
	))
}

func (m Model) contentWidth() int {
	return max(m.width-8, 20)
}

func displayName(p domain.Post) string {
	switch {
	case p.Author != "":
		return p.Author
	case p.Username != "":
		return p.Username
	}
	return "unknown"
}
