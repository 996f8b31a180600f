package models

import (
	"strings"
	"time"

	"github.com/derWhity/fyyur/internal/validator"
)

// Artist is a performer that can be booked by venues
type Artist struct {
	ID    uint   `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	City  string `db:"city" json:"city"`
	State string `db:"state" json:"state"`
	Phone string `db:"phone" json:"phone"`
	// The artist's own web site
	Website string `db:"website" json:"website"`
	// Link to the artist's Facebook page
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	// Is the artist looking for venues to play at?
	SeekingVenue       bool   `db:"seekingVenue" json:"seeking_venue"`
	SeekingDescription string `db:"seekingDescription" json:"seeking_description"`
	// Link to a picture of the artist
	ImageLink string    `db:"imageLink" json:"image_link"`
	Genres    GenreList `db:"genres" json:"genres"`
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}

// ArtistInput is the data a client sends when creating or editing an artist
type ArtistInput struct {
	Name               string   `json:"name" yaml:"name"`
	City               string   `json:"city" yaml:"city"`
	State              string   `json:"state" yaml:"state"`
	Phone              string   `json:"phone" yaml:"phone"`
	Website            string   `json:"website" yaml:"website"`
	FacebookLink       string   `json:"facebook_link" yaml:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue" yaml:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" yaml:"seeking_description"`
	ImageLink          string   `json:"image_link" yaml:"image_link"`
	Genres             []string `json:"genres" yaml:"genres"`
}

// Validate checks the input and builds the artist from it
func (in ArtistInput) Validate() (*Artist, validator.Errors) {
	v := validator.New()
	v.Required("name", in.Name)
	v.Required("city", in.City)
	if v.Required("state", in.State) {
		v.In("state", strings.TrimSpace(in.State), stateSet)
	}
	v.Required("phone", in.Phone)
	v.Required("website", in.Website)
	v.Required("seeking_description", in.SeekingDescription)
	v.Required("image_link", in.ImageLink)
	if v.RequiredList("genres", in.Genres) {
		v.Subset("genres", in.Genres, genreSet)
	}
	v.URL("facebook_link", strings.TrimSpace(in.FacebookLink))
	if !v.Valid() {
		return nil, v.Errors()
	}
	return &Artist{
		Name:               strings.TrimSpace(in.Name),
		City:               strings.TrimSpace(in.City),
		State:              strings.TrimSpace(in.State),
		Phone:              strings.TrimSpace(in.Phone),
		Website:            strings.TrimSpace(in.Website),
		FacebookLink:       strings.TrimSpace(in.FacebookLink),
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: strings.TrimSpace(in.SeekingDescription),
		ImageLink:          strings.TrimSpace(in.ImageLink),
		Genres:             NewGenreList(in.Genres),
	}, nil
}

// Input converts a stored artist back into the input shape
func (a *Artist) Input() ArtistInput {
	return ArtistInput{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		Genres:             append([]string{}, a.Genres...),
	}
}

// ToDisplayRecord flattens the artist and the given shows into the record shown on the artist's page. The venue is
// the counterpart of each show.
func (a *Artist) ToDisplayRecord(shows []ShowDetail) ArtistRecord {
	slots := make([]ShowSlot, 0, len(shows))
	for _, s := range shows {
		slots = append(slots, s.VenueSlot())
	}
	return ArtistRecord{
		ID:                 a.ID,
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		ImageLink:          a.ImageLink,
		Genres:             append([]string{}, a.Genres...),
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		Shows:              slots,
	}
}
