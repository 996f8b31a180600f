package models

import (
	"strings"
	"time"

	"github.com/derWhity/fyyur/internal/validator"
)

// Venue is a place where artists can be booked for shows
type Venue struct {
	// Internal ID
	ID uint `db:"id" json:"id"`
	// Name of the venue
	Name string `db:"name" json:"name"`
	// The city the venue is located in
	City string `db:"city" json:"city"`
	// Two-letter code of the state the venue is located in
	State string `db:"state" json:"state"`
	// Street address
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	// Link to a picture of the venue
	ImageLink string `db:"imageLink" json:"image_link"`
	Website   string `db:"website" json:"website"`
	// Link to the venue's Facebook page
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	// Is the venue looking for artists to book?
	SeekingTalent bool `db:"seekingTalent" json:"seeking_talent"`
	// What kind of talent the venue is looking for
	SeekingDescription string `db:"seekingDescription" json:"seeking_description"`
	// The genres played at the venue
	Genres GenreList `db:"genres" json:"genres"`
	// Creation date of this entry
	CreatedAt time.Time `db:"createdAt" json:"createdAt"`
	// Date of the last update of this entry
	UpdatedAt time.Time `db:"updatedAt" json:"updatedAt"`
}

// VenueInput is the data a client sends when creating or editing a venue. Edits replace all fields.
type VenueInput struct {
	Name               string   `json:"name" yaml:"name"`
	City               string   `json:"city" yaml:"city"`
	State              string   `json:"state" yaml:"state"`
	Address            string   `json:"address" yaml:"address"`
	Phone              string   `json:"phone" yaml:"phone"`
	ImageLink          string   `json:"image_link" yaml:"image_link"`
	Website            string   `json:"website" yaml:"website"`
	FacebookLink       string   `json:"facebook_link" yaml:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent" yaml:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" yaml:"seeking_description"`
	Genres             []string `json:"genres" yaml:"genres"`
}

// Validate checks the input and builds the venue from it. If any field is invalid, no venue is returned and the
// returned list contains every problem found.
func (in VenueInput) Validate() (*Venue, validator.Errors) {
	v := validator.New()
	v.Required("name", in.Name)
	v.Required("city", in.City)
	if v.Required("state", in.State) {
		v.In("state", strings.TrimSpace(in.State), stateSet)
	}
	v.Required("address", in.Address)
	v.Required("phone", in.Phone)
	v.Required("seeking_description", in.SeekingDescription)
	if v.RequiredList("genres", in.Genres) {
		v.Subset("genres", in.Genres, genreSet)
	}
	v.URL("facebook_link", strings.TrimSpace(in.FacebookLink))
	if !v.Valid() {
		return nil, v.Errors()
	}
	return &Venue{
		Name:               strings.TrimSpace(in.Name),
		City:               strings.TrimSpace(in.City),
		State:              strings.TrimSpace(in.State),
		Address:            strings.TrimSpace(in.Address),
		Phone:              strings.TrimSpace(in.Phone),
		ImageLink:          strings.TrimSpace(in.ImageLink),
		Website:            strings.TrimSpace(in.Website),
		FacebookLink:       strings.TrimSpace(in.FacebookLink),
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: strings.TrimSpace(in.SeekingDescription),
		Genres:             NewGenreList(in.Genres),
	}, nil
}

// Input converts a stored venue back into the input shape - used to pre-fill edit forms
func (v *Venue) Input() VenueInput {
	return VenueInput{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		Genres:             append([]string{}, v.Genres...),
	}
}

// ToDisplayRecord flattens the venue and the given shows into the record shown on the venue's page. The shows are
// projected so that the booked artist is the counterpart. They are not split into past and upcoming here.
func (v *Venue) ToDisplayRecord(shows []ShowDetail) VenueRecord {
	slots := make([]ShowSlot, 0, len(shows))
	for _, s := range shows {
		slots = append(slots, s.ArtistSlot())
	}
	return VenueRecord{
		ID:                 v.ID,
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		Genres:             append([]string{}, v.Genres...),
		Shows:              slots,
	}
}
