package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HyunSeo88/palette-sub001/tui/common"
)

func (m Model) renderDetailView() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Palette"))
	b.WriteString(common.TaglineStyle.Render("post"))
	b.WriteString("\n\n")

	snap := m.store.Snapshot()
	if snap.Detail == nil || snap.Detail.ID != m.detailID {
		b.WriteString("  This post is no longer available. Press esc to go back.\n")
		return b.String()
	}
	p := *snap.Detail

	width := m.contentWidth()
	var card strings.Builder
	card.WriteString(m.renderByline(p))
	card.WriteString("\n\n")
	if p.ImageURL != "" {
		card.WriteString(common.MetadataStyle.Render("🖼  " + p.ImageURL))
		card.WriteString("\n\n")
	}
	card.WriteString(common.ContentStyle.Width(width).Render(p.Content))
	card.WriteString("\n\n")
	card.WriteString(m.renderMeta(p))
	b.WriteString(common.SelectedStyle.Render(card.String()))
	b.WriteString("\n")

	if m.confirmDelete {
		b.WriteString(common.ConfirmStyle.Render("  Delete this post? (y/n)"))
		b.WriteString("\n")
	}
	if m.detailErr != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D")).
			Render(fmt.Sprintf("  Showing cached copy: %v", m.detailErr)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHints())
	return b.String()
}
