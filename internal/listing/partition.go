package listing

import (
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// ShowPartition holds the shows of a venue or artist split at a point in time
type ShowPartition struct {
	Past     []models.ShowSlot
	Upcoming []models.ShowSlot
}

// Partition splits the slots into shows that started before now and shows starting at or after now. A show starting
// exactly at now is upcoming. The order of the input is kept on both sides.
func Partition(slots []models.ShowSlot, now time.Time) ShowPartition {
	p := ShowPartition{
		Past:     []models.ShowSlot{},
		Upcoming: []models.ShowSlot{},
	}
	for _, s := range slots {
		if s.StartTime.Before(now) {
			p.Past = append(p.Past, s)
		} else {
			p.Upcoming = append(p.Upcoming, s)
		}
	}
	return p
}

// VenueDetail builds the venue page from its display record
func VenueDetail(rec models.VenueRecord, now time.Time) models.VenueDetail {
	p := Partition(rec.Shows, now)
	d := models.VenueDetail{
		VenueRecord:   rec,
		PastShows:     venueShows(p.Past),
		UpcomingShows: venueShows(p.Upcoming),
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

// ArtistDetail builds the artist page from its display record
func ArtistDetail(rec models.ArtistRecord, now time.Time) models.ArtistDetail {
	p := Partition(rec.Shows, now)
	d := models.ArtistDetail{
		ArtistRecord:  rec,
		PastShows:     artistShows(p.Past),
		UpcomingShows: artistShows(p.Upcoming),
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

func venueShows(slots []models.ShowSlot) []models.VenueShow {
	ret := make([]models.VenueShow, 0, len(slots))
	for _, s := range slots {
		ret = append(ret, models.VenueShow{
			ArtistID:        s.CounterpartID,
			ArtistName:      s.CounterpartName,
			ArtistImageLink: s.CounterpartImageLink,
			StartTime:       s.StartTime,
		})
	}
	return ret
}

func artistShows(slots []models.ShowSlot) []models.ArtistShow {
	ret := make([]models.ArtistShow, 0, len(slots))
	for _, s := range slots {
		ret = append(ret, models.ArtistShow{
			VenueID:        s.CounterpartID,
			VenueName:      s.CounterpartName,
			VenueImageLink: s.CounterpartImageLink,
			StartTime:      s.StartTime,
		})
	}
	return ret
}
