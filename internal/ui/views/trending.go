package views

import (
	"fmt"
	"strings"

	"reelfind/internal/domain"
)

// TrendingRenderer handles rendering of the trending list
type TrendingRenderer struct {
	styles *Styles
}

// NewTrendingRenderer creates a new trending renderer
func NewTrendingRenderer(styles *Styles) *TrendingRenderer {
	return &TrendingRenderer{
		styles: styles,
	}
}

// RenderTrending renders the heading plus one ranked line per entry.
// An empty list renders nothing.
func (t *TrendingRenderer) RenderTrending(entries []domain.TrendingEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, t.styles.Section.Render("Trending Movies"))
	for i, entry := range entries {
		title := entry.Title
		if title == "" {
			title = entry.SearchTerm
		}
		line := fmt.Sprintf("%s %s", t.styles.Rank.Render(fmt.Sprintf("%d.", i+1)), title)
		if entry.PosterURL != "" {
			line += "  " + t.styles.Dim.Render(entry.PosterURL)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
