// Package sqlite provides an artist repository that stores its data inside a SQLite database
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

const (
	artistFields = `name, city, state, phone, website, facebookLink, seekingVenue, seekingDescription, imageLink,
		genres, createdAt, updatedAt`
)

// ArtistRepo is an artist repository that stores its data inside a SQLite database
type ArtistRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ArtistRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) *ArtistRepo {
	return &ArtistRepo{db, logger}
}

// -- Methods ----------------------------------------------------------------------------------------------------------

// Create creates a new artist
func (r *ArtistRepo) Create(a *models.Artist) error {
	r.logger.WithField(log.FldName, a.Name).Debug("Adding new artist")
	now := time.Now().UTC()
	var id int64
	err := repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf("INSERT INTO Artists(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", artistFields)
		res, err := tx.Exec(query, a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.SeekingVenue,
			a.SeekingDescription, a.ImageLink, a.Genres, now, now)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert artist")
		}
		if id, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "Create: Failed to retrieve last insert ID")
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.ID = uint(id)
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// Update replaces all fields of the given artist
func (r *ArtistRepo) Update(a *models.Artist) error {
	r.logger.WithField(log.FldID, a.ID).Debug("Updating artist")
	now := time.Now().UTC()
	err := repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE Artists SET name = ?, city = ?, state = ?, phone = ?, website = ?, facebookLink = ?,
			seekingVenue = ?, seekingDescription = ?, imageLink = ?, genres = ?, updatedAt = ? WHERE id = ?`
		res, err := tx.Exec(query, a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.SeekingVenue,
			a.SeekingDescription, a.ImageLink, a.Genres, now, a.ID)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update artist")
		}
		if num, _ := res.RowsAffected(); num == 0 {
			return repos.ErrEntityNotExisting
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

// Delete removes an artist that is not booked for any show
func (r *ArtistRepo) Delete(id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting artist")
	return repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		var numShows uint
		if err := tx.Get(&numShows, "SELECT COUNT(*) FROM Shows WHERE artistId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to count shows of artist")
		}
		if numShows > 0 {
			return repos.ErrEntityInUse
		}
		res, err := tx.Exec("DELETE FROM Artists WHERE id = ?", id)
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to delete artist")
		}
		if num, _ := res.RowsAffected(); num == 0 {
			return repos.ErrEntityNotExisting
		}
		return nil
	})
}

// GetByID returns the artist with the given ID
func (r *ArtistRepo) GetByID(id uint) (*models.Artist, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading artist")
	query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
	var a models.Artist
	err := r.db.Get(&a, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Nothing found
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrapf(err, "GetByID: Failed to load artist #%d", id)
	}
	return &a, nil
}

// List returns all artists ordered by name
func (r *ArtistRepo) List() ([]models.Artist, error) {
	r.logger.Debug("Listing artists")
	query := fmt.Sprintf("SELECT id, %s FROM Artists ORDER BY name, id", artistFields)
	ret := []models.Artist{}
	if err := r.db.Select(&ret, query); err != nil {
		r.logger.WithError(err).Error("Failed to query artists")
		return nil, errors.Wrap(err, "List: Failed to query artists")
	}
	return ret, nil
}
