// Package sqlite contains a repository for shows that stores its data inside a SQLite database
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
	showFields   = `artistId, venueId, startTime, createdAt`
	detailSelect = `SELECT
						s.id AS id,
						s.startTime AS startTime,
						v.id AS venueId,
						v.name AS venueName,
						v.imageLink AS venueImageLink,
						a.id AS artistId,
						a.name AS artistName,
						a.imageLink AS artistImageLink
					FROM
						Shows s
					INNER JOIN
						Venues v
					ON
						v.id = s.venueId
					INNER JOIN
						Artists a
					ON
						a.id = s.artistId`
)

// ShowRepo is a show repository that stores its data inside a SQLite database
type ShowRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ShowRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) *ShowRepo {
	return &ShowRepo{db, logger}
}

// Create creates a new show. Both the artist and the venue have to exist - otherwise a
// *repos.MissingReferenceError is returned and nothing is stored.
func (r *ShowRepo) Create(s *models.Show) error {
	r.logger.WithFields(logrus.Fields{
		log.FldArtist: s.ArtistID,
		log.FldVenue:  s.VenueID,
	}).Debug("Adding new show")
	now := time.Now().UTC()
	var id int64
	err := repos.WithTx(r.db, func(tx *sqlx.Tx) error {
		if err := checkReference(tx, "Artists", "artist_id", s.ArtistID); err != nil {
			return err
		}
		if err := checkReference(tx, "Venues", "venue_id", s.VenueID); err != nil {
			return err
		}
		query := fmt.Sprintf("INSERT INTO Shows(%s) VALUES(?, ?, ?, ?)", showFields)
		res, err := tx.Exec(query, s.ArtistID, s.VenueID, s.StartTime.UTC(), now)
		if err != nil {
			return errors.Wrap(err, "Create: Failed to insert show")
		}
		if id, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "Create: Failed to retrieve last insert ID")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.ID = uint(id)
	s.CreatedAt = now
	return nil
}

// checkReference makes sure that the row with the given ID exists inside the table
func checkReference(tx *sqlx.Tx, table, field string, id uint) error {
	var num uint
	if err := tx.Get(&num, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table), id); err != nil {
		return errors.Wrapf(err, "checkReference: Failed to look up %s", field)
	}
	if num == 0 {
		return &repos.MissingReferenceError{Field: field, ID: id}
	}
	return nil
}

// GetByID returns the show with the given ID
func (r *ShowRepo) GetByID(id uint) (*models.Show, error) {
	r.logger.WithField(log.FldID, id).Debug("Loading show")
	query := fmt.Sprintf("SELECT id, %s FROM Shows WHERE id = ?", showFields)
	var s models.Show
	if err := r.db.Get(&s, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrapf(err, "GetByID: Failed to load show #%d", id)
	}
	return &s, nil
}

// List returns all shows ordered by start time
func (r *ShowRepo) List() ([]models.Show, error) {
	query := fmt.Sprintf("SELECT id, %s FROM Shows ORDER BY startTime, id", showFields)
	ret := []models.Show{}
	if err := r.db.Select(&ret, query); err != nil {
		return nil, errors.Wrap(err, "List: Failed to query shows")
	}
	return ret, nil
}

// ListDetails returns all shows together with the data of their artists and venues
func (r *ShowRepo) ListDetails() ([]models.ShowDetail, error) {
	return r.selectDetails("ListDetails", fmt.Sprintf("%s ORDER BY s.startTime, s.id", detailSelect))
}

// ListByVenue returns the shows taking place at the given venue
func (r *ShowRepo) ListByVenue(venueID uint) ([]models.ShowDetail, error) {
	r.logger.WithField(log.FldVenue, venueID).Debug("Loading shows of venue")
	query := fmt.Sprintf("%s WHERE s.venueId = ? ORDER BY s.startTime, s.id", detailSelect)
	return r.selectDetails("ListByVenue", query, venueID)
}

// ListByArtist returns the shows the given artist is booked for
func (r *ShowRepo) ListByArtist(artistID uint) ([]models.ShowDetail, error) {
	r.logger.WithField(log.FldArtist, artistID).Debug("Loading shows of artist")
	query := fmt.Sprintf("%s WHERE s.artistId = ? ORDER BY s.startTime, s.id", detailSelect)
	return r.selectDetails("ListByArtist", query, artistID)
}

func (r *ShowRepo) selectDetails(op, query string, args ...interface{}) ([]models.ShowDetail, error) {
	ret := []models.ShowDetail{}
	if err := r.db.Select(&ret, query, args...); err != nil {
		r.logger.WithError(err).Error("Failed to query shows")
		return nil, errors.Wrapf(err, "%s: Failed to query shows", op)
	}
	return ret, nil
}
