package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/validator"
)

func validVenueInput() VenueInput {
	return VenueInput{
		Name:               "The Hall",
		City:               "Austin",
		State:              "TX",
		Address:            "1 Main Street",
		Phone:              "512-555-0100",
		ImageLink:          "https://images.example.com/hall.png",
		Website:            "https://thehall.example.com",
		FacebookLink:       "https://www.facebook.com/thehall",
		SeekingTalent:      false,
		SeekingDescription: "Not looking right now",
		Genres:             []string{"Jazz"},
	}
}

func validArtistInput() ArtistInput {
	return ArtistInput{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.example.com/petals.png",
		Genres:             []string{"Rock n Roll"},
	}
}

func TestVenueInput_Validate(t *testing.T) {
	venue, errs := validVenueInput().Validate()
	require.Nil(t, errs)
	require.NotNil(t, venue)
	assert.Equal(t, "The Hall", venue.Name)
	assert.Equal(t, "TX", venue.State)
	assert.Equal(t, GenreList{"Jazz"}, venue.Genres)
	assert.False(t, venue.SeekingTalent)
}

func TestVenueInput_ValidateIsIdempotent(t *testing.T) {
	in := validVenueInput()
	in.Name = "  The Hall  "
	venue, errs := in.Validate()
	require.Nil(t, errs)
	again, errs := venue.Input().Validate()
	require.Nil(t, errs)
	assert.Equal(t, venue, again)
}

func TestVenueInput_InvalidState(t *testing.T) {
	in := validVenueInput()
	in.State = "ZZ"
	venue, errs := in.Validate()
	assert.Nil(t, venue)
	require.Len(t, errs, 1)
	assert.Equal(t, validator.FieldError{Field: "state", Kind: validator.InvalidEnumValue, Values: []string{"ZZ"}}, errs[0])
}

func TestVenueInput_ErrorsAccumulate(t *testing.T) {
	in := validVenueInput()
	in.Name = ""
	in.State = "ZZ"
	in.Genres = []string{"Jazz", "Polka"}
	in.FacebookLink = "facebook"
	_, errs := in.Validate()
	require.Len(t, errs, 4)
	assert.True(t, errs.Has("name", validator.MissingField))
	assert.True(t, errs.Has("state", validator.InvalidEnumValue))
	assert.True(t, errs.Has("genres", validator.InvalidEnumValue))
	assert.True(t, errs.Has("facebook_link", validator.InvalidFormat))
}

func TestVenueInput_RequiredFields(t *testing.T) {
	_, errs := VenueInput{}.Validate()
	for _, field := range []string{"name", "city", "state", "address", "phone", "seeking_description", "genres"} {
		assert.True(t, errs.Has(field, validator.MissingField), field)
	}
	// Optional fields are not reported
	assert.False(t, errs.Has("image_link", validator.MissingField))
	assert.False(t, errs.Has("website", validator.MissingField))
	assert.False(t, errs.Has("facebook_link", validator.MissingField))
}

func TestVenueInput_LinksOtherThanFacebookAreNotChecked(t *testing.T) {
	in := validVenueInput()
	in.ImageLink = "no url"
	in.Website = "no url either"
	_, errs := in.Validate()
	assert.Nil(t, errs)
}

func TestArtistInput_Validate(t *testing.T) {
	artist, errs := validArtistInput().Validate()
	require.Nil(t, errs)
	assert.Equal(t, "Guns N Petals", artist.Name)
	assert.True(t, artist.SeekingVenue)

	_, errs = ArtistInput{}.Validate()
	for _, field := range []string{"name", "city", "state", "phone", "website", "seeking_description", "image_link", "genres"} {
		assert.True(t, errs.Has(field, validator.MissingField), field)
	}
}

func TestArtistInput_InvalidValues(t *testing.T) {
	in := validArtistInput()
	in.State = "XX"
	in.Genres = []string{"Yodel"}
	in.FacebookLink = "www.facebook.com/GunsNPetals"
	_, errs := in.Validate()
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"Yodel"}, errs[1].Values)
	assert.True(t, errs.Has("facebook_link", validator.InvalidFormat))
}

func TestShowInput_Validate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	show, errs := ShowInput{ArtistID: 1, VenueID: 1, StartTime: "2020-01-01T10:00:00"}.Validate(now)
	require.Nil(t, errs)
	assert.Equal(t, time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC), show.StartTime)

	show, errs = ShowInput{ArtistID: 1, VenueID: 2}.Validate(now)
	require.Nil(t, errs)
	assert.True(t, now.Equal(show.StartTime))

	_, errs = ShowInput{StartTime: "yesterday"}.Validate(now)
	require.Len(t, errs, 3)
	assert.True(t, errs.Has("artist_id", validator.MissingField))
	assert.True(t, errs.Has("venue_id", validator.MissingField))
	assert.True(t, errs.Has("start_time", validator.InvalidFormat))
}

func TestParseShowTime(t *testing.T) {
	ts, ok := ParseShowTime("2035-04-01T20:00:00.000Z")
	require.True(t, ok)
	assert.Equal(t, 2035, ts.Year())
	_, ok = ParseShowTime("2035-04-01 20:00")
	assert.True(t, ok)
	_, ok = ParseShowTime("04/01/2035")
	assert.False(t, ok)
}

func TestInput_DuplicateGenresAreStoredOnce(t *testing.T) {
	in := validVenueInput()
	in.Genres = []string{"Jazz", "Blues", "Jazz", "Blues", "Folk"}
	v, errs := in.Validate()
	require.Nil(t, errs)
	assert.Equal(t, GenreList{"Jazz", "Blues", "Folk"}, v.Genres)

	ain := validArtistInput()
	ain.Genres = []string{"Rock n Roll", "Rock n Roll"}
	a, errs := ain.Validate()
	require.Nil(t, errs)
	assert.Equal(t, GenreList{"Rock n Roll"}, a.Genres)
}

func TestGenreList_ValueAndScan(t *testing.T) {
	val, err := GenreList{"Jazz", "R&B"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Jazz","R&B"]`, val)

	var g GenreList
	require.NoError(t, g.Scan([]byte(`["Jazz","Soul"]`)))
	assert.Equal(t, GenreList{"Jazz", "Soul"}, g)
	require.NoError(t, g.Scan("[]"))
	assert.Equal(t, GenreList{}, g)
	require.NoError(t, g.Scan(nil))
	assert.Equal(t, GenreList{}, g)
	assert.Error(t, g.Scan(42))
	assert.Error(t, g.Scan("not json"))

	val, err = GenreList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
}

func TestVenue_ToDisplayRecord(t *testing.T) {
	start := time.Date(2030, 5, 21, 21, 30, 0, 0, time.UTC)
	v := Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: GenreList{"Jazz"}}
	rec := v.ToDisplayRecord([]ShowDetail{{
		ID: 1, VenueID: 1, VenueName: "The Musical Hop",
		ArtistID: 4, ArtistName: "Guns N Petals", ArtistImageLink: "img", StartTime: start,
	}})
	assert.Equal(t, uint(1), rec.ID)
	assert.Equal(t, []string{"Jazz"}, rec.Genres)
	require.Len(t, rec.Shows, 1)
	assert.Equal(t, ShowSlot{CounterpartID: 4, CounterpartName: "Guns N Petals", CounterpartImageLink: "img", StartTime: start}, rec.Shows[0])
}

func TestArtist_ToDisplayRecord(t *testing.T) {
	start := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	a := Artist{ID: 4, Name: "Guns N Petals"}
	rec := a.ToDisplayRecord([]ShowDetail{{
		VenueID: 1, VenueName: "The Musical Hop", VenueImageLink: "hop.png", ArtistID: 4, StartTime: start,
	}})
	require.Len(t, rec.Shows, 1)
	assert.Equal(t, ShowSlot{CounterpartID: 1, CounterpartName: "The Musical Hop", CounterpartImageLink: "hop.png", StartTime: start}, rec.Shows[0])
	assert.Equal(t, []string{}, rec.Genres)
}

func TestEnums(t *testing.T) {
	assert.True(t, ValidGenre("Jazz"))
	assert.False(t, ValidGenre("jazz"))
	assert.True(t, ValidState("TX"))
	assert.False(t, ValidState("ZZ"))
	e := GetEnums()
	assert.Len(t, e.States, 51)
	assert.Equal(t, "AK", e.States[0])
	e.Genres[0] = "changed"
	assert.True(t, ValidGenre("Alternative"))
	assert.NotEqual(t, "changed", GetEnums().Genres[0])
}
