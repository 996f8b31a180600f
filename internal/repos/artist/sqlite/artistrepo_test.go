package sqlite

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/migrate"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

func newTestRepo(t *testing.T) (*ArtistRepo, *sqlx.DB) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logrus.NewEntry(logger)
	db, err := migrate.OpenDatabase(filepath.Join(t.TempDir(), "fyyur.db"), entry)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, entry), db
}

func petals() *models.Artist {
	return &models.Artist{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		ImageLink:          "https://images.example.com/petals.png",
		Genres:             models.GenreList{"Rock n Roll"},
	}
}

func TestArtistRepo_CreateGetUpdate(t *testing.T) {
	r, _ := newTestRepo(t)
	a := petals()
	require.NoError(t, r.Create(a))
	require.NotZero(t, a.ID)

	got, err := r.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Website, got.Website)
	assert.Equal(t, a.FacebookLink, got.FacebookLink)
	assert.Equal(t, a.SeekingDescription, got.SeekingDescription)
	assert.Equal(t, a.ImageLink, got.ImageLink)
	assert.Equal(t, a.Genres, got.Genres)
	assert.True(t, got.SeekingVenue)
	assert.WithinDuration(t, a.CreatedAt, got.CreatedAt, time.Millisecond)

	a.SeekingVenue = false
	a.Genres = models.GenreList{"Jazz", "Funk"}
	require.NoError(t, r.Update(a))
	got, err = r.GetByID(a.ID)
	require.NoError(t, err)
	assert.False(t, got.SeekingVenue)
	assert.Equal(t, models.GenreList{"Jazz", "Funk"}, got.Genres)
}

func TestArtistRepo_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.GetByID(1)
	assert.Equal(t, repos.ErrEntityNotExisting, err)
	a := petals()
	a.ID = 1
	assert.Equal(t, repos.ErrEntityNotExisting, errors.Cause(r.Update(a)))
	assert.Equal(t, repos.ErrEntityNotExisting, errors.Cause(r.Delete(1)))
}

func TestArtistRepo_List(t *testing.T) {
	r, _ := newTestRepo(t)
	for _, name := range []string{"The Wild Sax Band", "Matt Quevedo", "Guns N Petals"} {
		a := petals()
		a.Name = name
		require.NoError(t, r.Create(a))
	}
	list, err := r.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Guns N Petals", list[0].Name)
	assert.Equal(t, "Matt Quevedo", list[1].Name)
	assert.Equal(t, "The Wild Sax Band", list[2].Name)
}

func TestArtistRepo_DeleteRestrictedByShows(t *testing.T) {
	r, db := newTestRepo(t)
	a := petals()
	require.NoError(t, r.Create(a))
	res, err := db.Exec(`INSERT INTO Venues(name, city, state, address, phone) VALUES('The Hall', 'Austin', 'TX', 'x', '1')`)
	require.NoError(t, err)
	venueID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO Shows(artistId, venueId, startTime) VALUES(?, ?, ?)`, a.ID, venueID, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, repos.ErrEntityInUse, errors.Cause(r.Delete(a.ID)))
	_, err = r.GetByID(a.ID)
	assert.NoError(t, err)

	_, err = db.Exec(`DELETE FROM Shows`)
	require.NoError(t, err)
	assert.NoError(t, r.Delete(a.ID))
}
