package listing

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/derWhity/fyyur/internal/models"
)

// NameMatcher matches names against a search term using Unicode case folding. An empty term matches every name.
// A NameMatcher must not be shared between goroutines.
type NameMatcher struct {
	folder cases.Caser
	term   string
}

// NewNameMatcher creates a matcher for the given search term
func NewNameMatcher(term string) *NameMatcher {
	m := &NameMatcher{folder: cases.Fold()}
	m.term = m.folder.String(strings.TrimSpace(term))
	return m
}

// Match checks if the name contains the search term, ignoring case
func (m *NameMatcher) Match(name string) bool {
	if m.term == "" {
		return true
	}
	return strings.Contains(m.folder.String(name), m.term)
}

// SearchVenues returns all venues whose name contains the term
func SearchVenues(venues []models.Venue, shows []models.Show, term string, now time.Time) models.VenueSearchResult {
	upcoming, _ := UpcomingShowCounts(shows, now)
	m := NewNameMatcher(term)
	data := []models.VenueSummary{}
	for _, v := range venues {
		if m.Match(v.Name) {
			data = append(data, models.VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
		}
	}
	return models.VenueSearchResult{Count: len(data), Data: data}
}

// SearchArtists returns all artists whose name contains the term
func SearchArtists(artists []models.Artist, shows []models.Show, term string, now time.Time) models.ArtistSearchResult {
	_, upcoming := UpcomingShowCounts(shows, now)
	m := NewNameMatcher(term)
	data := []models.ArtistSummary{}
	for _, a := range artists {
		if m.Match(a.Name) {
			data = append(data, models.ArtistSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
		}
	}
	return models.ArtistSearchResult{Count: len(data), Data: data}
}

// SummarizeArtists builds the artist list shown on the artists overview page
func SummarizeArtists(artists []models.Artist, shows []models.Show, now time.Time) []models.ArtistSummary {
	return SearchArtists(artists, shows, "", now).Data
}
