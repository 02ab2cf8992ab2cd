package domain

import "strings"

// Movie is a single result returned by the movie metadata API
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
}

// Year returns the release year, or "" when the release date is unknown
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// PosterURL joins the poster path onto an image base URL.
// Movies without a poster yield "".
func (m Movie) PosterURL(imageBaseURL string) string {
	if m.PosterPath == "" {
		return ""
	}
	return strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(m.PosterPath, "/")
}

// MoviePage is the decoded body of a search or discover response
type MoviePage struct {
	Results []Movie `json:"results"`

	// Response and Error are only present when the API reports a logical failure
	Response *bool  `json:"response,omitempty"`
	Error    string `json:"Error,omitempty"`
}

// Failed reports whether the payload carries response == false
func (p MoviePage) Failed() bool {
	return p.Response != nil && !*p.Response
}

// TrendingEntry is a previously searched term with its popularity counter
type TrendingEntry struct {
	ID         string
	SearchTerm string
	Count      int
	MovieID    int
	Title      string
	PosterURL  string
}
