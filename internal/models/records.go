package models

import "time"

// ShowSlot is a show as seen from one side of the artist-venue association. The counterpart is the venue when looking
// at an artist's shows and the artist when looking at a venue's shows.
type ShowSlot struct {
	CounterpartID        uint
	CounterpartName      string
	CounterpartImageLink string
	StartTime            time.Time
}

// VenueRecord is the flattened display form of a venue
type VenueRecord struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	ImageLink          string   `json:"image_link"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
	Genres             []string `json:"genres"`
	// All shows at the venue with the artist as counterpart
	Shows []ShowSlot `json:"-"`
}

// ArtistRecord is the flattened display form of an artist
type ArtistRecord struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	ImageLink          string   `json:"image_link"`
	Genres             []string `json:"genres"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	// All shows of the artist with the venue as counterpart
	Shows []ShowSlot `json:"-"`
}

// VenueShow is a show listed on a venue's page
type VenueShow struct {
	ArtistID        uint      `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show listed on an artist's page
type ArtistShow struct {
	VenueID        uint      `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// VenueDetail is the full venue page with its shows split into past and upcoming ones
type VenueDetail struct {
	VenueRecord
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// ArtistDetail is the full artist page with its shows split into past and upcoming ones
type ArtistDetail struct {
	ArtistRecord
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// VenueSummary is the short form of a venue used in listings and search results
type VenueSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistSummary is the short form of an artist used in listings and search results
type ArtistSummary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueGroup holds all venues sharing the same city and state
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueSearchResult is the result of searching venues by name
type VenueSearchResult struct {
	Count int            `json:"count"`
	Data  []VenueSummary `json:"data"`
}

// ArtistSearchResult is the result of searching artists by name
type ArtistSearchResult struct {
	Count int             `json:"count"`
	Data  []ArtistSummary `json:"data"`
}
