// Package sqlite provides a venue repository that stores its data inside a SQLite database
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
	venueFields = `name, city, state, address, phone, imageLink, website, facebookLink, seekingTalent,
		seekingDescription, genres, createdAt, updatedAt`
)

// VenueRepo is a venue repository that stores its data inside a SQLite database
type VenueRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new venue repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *VenueRepo {
	return &VenueRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new venue
func (r *VenueRepo) Create(v *models.Venue) error {
	r.logger.WithField(log.FldName, v.Name).Debug("Adding new venue")
	now := time.Now().UTC()
	var id int64
	err := repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := fmt.Sprintf("INSERT INTO Venues(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", venueFields)
		res, err := tx.Exec(query, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.Website,
			v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.Genres, now, now)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert venue")
		}
		if id, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "Create: Failed to retrieve last insert ID")
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.ID = uint(id)
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// Update replaces all fields of the given venue
func (r *VenueRepo) Update(v *models.Venue) error {
	r.logger.WithField(log.FldID, v.ID).Debug("Updating venue")
	now := time.Now().UTC()
	err := repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE Venues SET name = ?, city = ?, state = ?, address = ?, phone = ?, imageLink = ?, website = ?,
			facebookLink = ?, seekingTalent = ?, seekingDescription = ?, genres = ?, updatedAt = ? WHERE id = ?`
		res, err := tx.Exec(query, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.Website,
			v.FacebookLink, v.SeekingTalent, v.SeekingDescription, v.Genres, now, v.ID)
		if err != nil {
			return errors.Wrap(err, "Update: Failed to update venue")
		}
		num, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "Update: Failed to get number of affected rows")
		}
		if num == 0 {
			return repos.ErrEntityNotExisting
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.UpdatedAt = now
	return nil
}

// Delete removes the given venue. Venues with shows cannot be deleted.
func (r *VenueRepo) Delete(id uint) error {
	r.logger.WithField(log.FldID, id).Debug("Deleting venue")
	return repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		var numShows uint
		if err := tx.Get(&numShows, "SELECT COUNT(*) FROM Shows WHERE venueId = ?", id); err != nil {
			return errors.Wrap(err, "Delete: Failed to count shows of venue")
		}
		if numShows > 0 {
			return repos.ErrEntityInUse
		}
		res, err := tx.Exec("DELETE FROM Venues WHERE id = ?", id)
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to delete venue")
		}
		num, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "Delete: Failed to get number of affected rows")
		}
		if num == 0 {
			return repos.ErrEntityNotExisting
		}
		return nil
	})
}

// GetByID returns the venue with the given ID
func (r *VenueRepo) GetByID(id uint) (*models.Venue, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading venue")
	query := fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields)
	var v models.Venue
	err := r.db.Get(&v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Nothing found
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrapf(err, "GetByID: Failed to load venue #%d", id)
	}
	return &v, nil
}

// List returns all venues ordered by state, city and name
func (r *VenueRepo) List() ([]models.Venue, error) {
	r.logger.Debug("Listing venues")
	query := fmt.Sprintf("SELECT id, %s FROM Venues ORDER BY state, city, name, id", venueFields)
	ret := []models.Venue{}
	if err := r.db.Select(&ret, query); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query venues")
	}
	return ret, nil
}
