package models

import (
	"strings"
	"time"

	"github.com/derWhity/fyyur/internal/validator"
)

// The layouts accepted for the start time of a show. Times without zone information are taken as UTC.
var showTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Show is a performance of an artist at a venue. Shows are never changed after they have been created.
type Show struct {
	ID        uint      `db:"id" json:"id"`
	ArtistID  uint      `db:"artistId" json:"artist_id"`
	VenueID   uint      `db:"venueId" json:"venue_id"`
	StartTime time.Time `db:"startTime" json:"start_time"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
}

// ShowInput is the data a client sends when scheduling a show
type ShowInput struct {
	ArtistID uint `json:"artist_id"`
	VenueID  uint `json:"venue_id"`
	// Start time of the show - defaults to the time of the request if left empty
	StartTime string `json:"start_time"`
}

// Validate checks the input and builds the show. An empty start time is replaced by now.
func (in ShowInput) Validate(now time.Time) (*Show, validator.Errors) {
	v := validator.New()
	v.RequiredID("artist_id", in.ArtistID)
	v.RequiredID("venue_id", in.VenueID)
	start := now
	if raw := strings.TrimSpace(in.StartTime); raw != "" {
		var ok bool
		if start, ok = ParseShowTime(raw); !ok {
			v.Add("start_time", validator.InvalidFormat)
		}
	}
	if !v.Valid() {
		return nil, v.Errors()
	}
	return &Show{
		ArtistID:  in.ArtistID,
		VenueID:   in.VenueID,
		StartTime: start.UTC(),
	}, nil
}

// ParseShowTime parses a show's start time in one of the accepted layouts
func ParseShowTime(s string) (time.Time, bool) {
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShowDetail is a show together with the data of its artist and venue needed for display
type ShowDetail struct {
	ID              uint      `db:"id" json:"id"`
	VenueID         uint      `db:"venueId" json:"venue_id"`
	VenueName       string    `db:"venueName" json:"venue_name"`
	VenueImageLink  string    `db:"venueImageLink" json:"venue_image_link"`
	ArtistID        uint      `db:"artistId" json:"artist_id"`
	ArtistName      string    `db:"artistName" json:"artist_name"`
	ArtistImageLink string    `db:"artistImageLink" json:"artist_image_link"`
	StartTime       time.Time `db:"startTime" json:"start_time"`
}

// ArtistSlot projects the show onto its artist - this is how a venue sees its shows
func (s ShowDetail) ArtistSlot() ShowSlot {
	return ShowSlot{
		CounterpartID:        s.ArtistID,
		CounterpartName:      s.ArtistName,
		CounterpartImageLink: s.ArtistImageLink,
		StartTime:            s.StartTime,
	}
}

// VenueSlot projects the show onto its venue - this is how an artist sees its shows
func (s ShowDetail) VenueSlot() ShowSlot {
	return ShowSlot{
		CounterpartID:        s.VenueID,
		CounterpartName:      s.VenueName,
		CounterpartImageLink: s.VenueImageLink,
		StartTime:            s.StartTime,
	}
}
