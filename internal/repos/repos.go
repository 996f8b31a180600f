// Package repos contains the repository interfaces needed in Fyyur
// It exists to prevent circular dependencies between fyyur and the repo implementations
package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/models"
)

var (
	// ErrEntityNotExisting is fired by a repository when an entity that is loaded, updated or deleted does not exist
	ErrEntityNotExisting = fmt.Errorf("entity does not exist")
	// ErrEntityInUse is fired when an entity cannot be deleted because shows still reference it
	ErrEntityInUse = fmt.Errorf("entity is still referenced by shows")
	// ErrReferenceMissing is fired when a show references an artist or venue that does not exist
	ErrReferenceMissing = fmt.Errorf("referenced entity does not exist")
)

// MissingReferenceError tells which reference of a show could not be resolved
type MissingReferenceError struct {
	// Field is the name of the foreign key field ("artist_id" or "venue_id")
	Field string
	ID    uint
}

// Error implements the error interface
func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s: %s #%d", ErrReferenceMissing, e.Field, e.ID)
}

// Cause returns ErrReferenceMissing so that errors.Cause can be used to check for it
func (e *MissingReferenceError) Cause() error {
	return ErrReferenceMissing
}

// VenueRepo defines a repository that handles storing and querying venues
type VenueRepo interface {
	// Create creates a new venue and sets its ID
	Create(v *models.Venue) error
	// Update replaces all fields of an existing venue
	Update(v *models.Venue) error
	// Delete removes a venue - fails with ErrEntityInUse as long as shows reference it
	Delete(id uint) error
	// GetByID returns the venue with the given ID
	GetByID(id uint) (*models.Venue, error)
	// List returns all venues ordered by state, city and name
	List() ([]models.Venue, error)
}

// ArtistRepo defines a repository that handles storing and querying artists
type ArtistRepo interface {
	// Create creates a new artist and sets its ID
	Create(a *models.Artist) error
	// Update replaces all fields of an existing artist
	Update(a *models.Artist) error
	// Delete removes an artist - fails with ErrEntityInUse as long as shows reference it
	Delete(id uint) error
	// GetByID returns the artist with the given ID
	GetByID(id uint) (*models.Artist, error)
	// List returns all artists ordered by name
	List() ([]models.Artist, error)
}

// ShowRepo defines a repository that handles storing and querying shows
type ShowRepo interface {
	// Create creates a new show after checking that its artist and venue exist
	Create(s *models.Show) error
	// GetByID returns the show with the given ID
	GetByID(id uint) (*models.Show, error)
	// List returns all shows ordered by start time
	List() ([]models.Show, error)
	// ListDetails returns all shows with their artist and venue data ordered by start time
	ListDetails() ([]models.ShowDetail, error)
	// ListByVenue returns the shows taking place at the given venue ordered by start time
	ListByVenue(venueID uint) ([]models.ShowDetail, error)
	// ListByArtist returns the shows of the given artist ordered by start time
	ListByArtist(artistID uint) ([]models.ShowDetail, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}

// WithTx runs fn inside a new transaction. The transaction is committed if fn returns nil and rolled back if fn
// returns an error or panics. In every case, it is finished before WithTx returns.
func WithTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "WithTx: Failed to start transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err = fn(tx); err != nil {
		return DoRollback(tx, err)
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "WithTx: Failed to commit transaction")
	}
	return nil
}
