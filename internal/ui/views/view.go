package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reelfind/internal/domain"
)

// Lines taken by everything except the movie rows and the trending block:
// padding (2), title, hero, gap, input box (3), gap, "All Movies", two scroll
// indicators, gap before help, help line.
const chromeLines = 14

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	SearchInput    string
	Movies         []domain.Movie
	Loading        bool
	ErrorMessage   string
	Trending       []domain.TrendingEntry
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	ShowHelp       bool
	HelpShort      string
	HelpFull       string
	ShowDetails    bool
	DetailsContent string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	movieRender *MovieRenderer
	trendRender *TrendingRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		movieRender: NewMovieRenderer(styles),
		trendRender: NewTrendingRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Movies exposes the card renderer for details content
func (r *Renderer) Movies() *MovieRenderer {
	return r.movieRender
}

// ListHeight returns how many movie rows fit on a screen of the given height
func ListHeight(height, trendingCount int) int {
	rows := height - chromeLines
	if trendingCount > 0 {
		rows -= trendingCount + 2 // heading plus trailing gap
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		content := r.styles.Title.Render("reelfind help") + "\n\n" + state.HelpFull
		return r.popupRender.RenderPopup(content, state.Height, state.Width, r.styles.HelpBox)
	}
	if state.ShowDetails && state.DetailsContent != "" {
		return r.popupRender.RenderPopup(state.DetailsContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	logo := r.styles.Title.Render("reelfind")
	titleLine := logo
	if state.Loading {
		indicator := r.styles.Status.Render("↻ Searching")
		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80 // Default terminal width
		}
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + indicator
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.styles.Hero.Render("Find ") + r.styles.Accent.Render("Movies") +
		r.styles.Hero.Render(" You'll Enjoy Without the Hassle"))
	content.WriteString("\n\n")

	content.WriteString(r.styles.Input.Render(state.SearchInput))
	content.WriteString("\n\n")

	if trending := r.trendRender.RenderTrending(state.Trending); trending != "" {
		content.WriteString(trending)
		content.WriteString("\n\n")
	}

	content.WriteString(r.styles.Section.Render("All Movies"))
	content.WriteString("\n")
	content.WriteString(r.renderMovieSection(state))

	// Push help to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpShort))

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderMovieSection picks loading, error or the card list in that order
func (r *Renderer) renderMovieSection(state ViewState) string {
	switch {
	case state.Loading:
		return r.styles.Loading.Render("Loading...")
	case state.ErrorMessage != "":
		return r.styles.Error.Render(state.ErrorMessage)
	default:
		return r.renderMovieList(state)
	}
}

// renderMovieList renders the visible window of movie cards with scroll indicators
func (r *Renderer) renderMovieList(state ViewState) string {
	total := len(state.Movies)
	if total == 0 {
		return ""
	}

	height := state.ViewportHeight
	if height < 1 {
		height = 1
	}
	start := state.ViewportOffset
	if start < 0 || start >= total {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
	}

	rowWidth := state.Width - 4
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.movieRender.RenderMovieCard(state.Movies[i], i == state.SelectedIndex, rowWidth))
	}
	if below := total - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}
