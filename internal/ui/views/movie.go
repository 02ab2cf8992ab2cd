package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reelfind/internal/domain"
)

const notAvailable = "N/A"

// MovieRenderer handles rendering of movie cards and details
type MovieRenderer struct {
	styles *Styles
}

// NewMovieRenderer creates a new movie renderer
func NewMovieRenderer(styles *Styles) *MovieRenderer {
	return &MovieRenderer{
		styles: styles,
	}
}

// FormatRating renders vote_average with one decimal, or N/A when unrated
func FormatRating(m domain.Movie) string {
	if m.VoteAverage == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// FormatYear returns the release year or N/A
func FormatYear(m domain.Movie) string {
	if y := m.Year(); y != "" {
		return y
	}
	return notAvailable
}

func formatLanguage(m domain.Movie) string {
	if m.OriginalLanguage == "" {
		return notAvailable
	}
	return m.OriginalLanguage
}

// RenderMovieCard renders a single movie line
func (r *MovieRenderer) RenderMovieCard(movie domain.Movie, isSelected bool, width int) string {
	title := movie.Title
	if title == "" {
		title = movie.OriginalTitle
	}

	ratingStyle := r.styles.Rating
	dimStyle := r.styles.Dim
	plainStyle := lipgloss.NewStyle()
	cursor := "  "
	if isSelected {
		cursor = "> "
		ratingStyle = ratingStyle.Inherit(r.styles.SelectionBg)
		dimStyle = dimStyle.Inherit(r.styles.SelectionBg)
		plainStyle = plainStyle.Inherit(r.styles.SelectionBg)
	}

	sep := dimStyle.Render(" • ")
	line := plainStyle.Render(cursor+title+"  ") +
		ratingStyle.Render("★ "+FormatRating(movie)) + sep +
		dimStyle.Render(formatLanguage(movie)) + sep +
		dimStyle.Render(FormatYear(movie))

	if isSelected && width > 0 {
		if lineLen := lipgloss.Width(line); lineLen < width {
			line += r.styles.SelectionBg.Render(strings.Repeat(" ", width-lineLen))
		}
	}
	return line
}

// RenderDetails renders the full description of a movie as plain text
func (r *MovieRenderer) RenderDetails(movie domain.Movie, imageBaseURL string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%s)\n\n", movie.Title, FormatYear(movie)))
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		b.WriteString(fmt.Sprintf("Original title: %s\n", movie.OriginalTitle))
	}

	release := movie.ReleaseDate
	if release == "" {
		release = notAvailable
	}
	b.WriteString(fmt.Sprintf("Released:       %s\n", release))
	b.WriteString(fmt.Sprintf("Rating:         %s (%d votes)\n", FormatRating(movie), movie.VoteCount))
	b.WriteString(fmt.Sprintf("Language:       %s\n", formatLanguage(movie)))
	b.WriteString(fmt.Sprintf("Popularity:     %.1f\n", movie.Popularity))

	poster := movie.PosterURL(imageBaseURL)
	if poster == "" {
		poster = notAvailable
	}
	b.WriteString(fmt.Sprintf("Poster:         %s\n", poster))

	if movie.Overview != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(72).Render(movie.Overview))
		b.WriteString("\n")
	}
	return b.String()
}
