// Package listing contains the read-side logic of the directory: grouping venues by location, splitting shows into
// past and upcoming ones and searching listings by name.
// Everything in here works on plain slices, never modifies its input and is safe for concurrent use.
package listing

import (
	"sort"
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// UpcomingShowCounts counts, per venue and per artist, the shows starting strictly after now
func UpcomingShowCounts(shows []models.Show, now time.Time) (byVenue map[uint]int, byArtist map[uint]int) {
	byVenue = make(map[uint]int)
	byArtist = make(map[uint]int)
	for _, s := range shows {
		if s.StartTime.After(now) {
			byVenue[s.VenueID]++
			byArtist[s.ArtistID]++
		}
	}
	return byVenue, byArtist
}

// GroupVenues groups the venues by their (city, state) pair. Groups are ordered by state, then city. Inside a group,
// venues are ordered by name, then ID. Each venue appears in exactly one group and only pairs having at least one
// venue produce a group.
func GroupVenues(venues []models.Venue, shows []models.Show, now time.Time) []models.VenueGroup {
	upcoming, _ := UpcomingShowCounts(shows, now)
	sorted := make([]models.Venue, len(venues))
	copy(sorted, venues)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.State != b.State {
			return a.State < b.State
		}
		if a.City != b.City {
			return a.City < b.City
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	groups := []models.VenueGroup{}
	for _, v := range sorted {
		n := len(groups)
		if n == 0 || groups[n-1].City != v.City || groups[n-1].State != v.State {
			groups = append(groups, models.VenueGroup{City: v.City, State: v.State, Venues: []models.VenueSummary{}})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}
	return groups
}
