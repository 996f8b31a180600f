package internal

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/listing"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// VenueService provides service functions for working with venues
type VenueService interface {
	// List returns all venues grouped by city and state
	List(ctx context.Context) ([]models.VenueGroup, error)
	// Search returns the venues whose names contain the given term
	Search(ctx context.Context, term string) (models.VenueSearchResult, error)
	// Get returns the venue page with its shows split into past and upcoming ones
	Get(ctx context.Context, id uint) (*models.VenueDetail, error)
	// GetForEdit returns the venue as it is stored to pre-fill the edit form
	GetForEdit(ctx context.Context, id uint) (*models.Venue, error)
	// Create validates the input and stores it as a new venue
	Create(ctx context.Context, in models.VenueInput) (*models.Venue, error)
	// Update validates the input and replaces all fields of the given venue with it
	Update(ctx context.Context, id uint, in models.VenueInput) (*models.Venue, error)
	// Delete removes a venue without any shows
	Delete(ctx context.Context, id uint) error
}

// -- VenueService implementation --------------------------------------------------------------------------------------

type venueService struct {
	repo   repos.VenueRepo
	shows  repos.ShowRepo
	logger *logrus.Entry
	now    func() time.Time
}

// NewVenueService creates a new venue service instance
func NewVenueService(venues repos.VenueRepo, shows repos.ShowRepo, logger *logrus.Entry) VenueService {
	return &venueService{
		repo:   venues,
		shows:  shows,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all venues grouped by city and state
func (s *venueService) List(ctx context.Context) ([]models.VenueGroup, error) {
	venues, shows, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	return listing.GroupVenues(venues, shows, s.now()), nil
}

// Search returns the venues whose names contain the given term
func (s *venueService) Search(ctx context.Context, term string) (models.VenueSearchResult, error) {
	s.logger.WithField(log.FldSearch, term).Debug("Searching venues")
	venues, shows, err := s.loadAll()
	if err != nil {
		return models.VenueSearchResult{}, err
	}
	return listing.SearchVenues(venues, shows, term, s.now()), nil
}

func (s *venueService) loadAll() ([]models.Venue, []models.Show, error) {
	venues, err := s.repo.List()
	if err != nil {
		return nil, nil, makeStoreError(s.logger, "Venues", "", "loaded", err)
	}
	shows, err := s.shows.List()
	if err != nil {
		return nil, nil, makeStoreError(s.logger, "Venues", "", "loaded", err)
	}
	return venues, shows, nil
}

// Get returns the venue page with its shows split into past and upcoming ones
func (s *venueService) Get(ctx context.Context, id uint) (*models.VenueDetail, error) {
	v, err := s.load(id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByVenue(id)
	if err != nil {
		return nil, makeStoreError(s.logger, "Venue", v.Name, "loaded", err)
	}
	detail := listing.VenueDetail(v.ToDisplayRecord(shows), s.now())
	return &detail, nil
}

// GetForEdit returns the venue as it is stored to pre-fill the edit form
func (s *venueService) GetForEdit(ctx context.Context, id uint) (*models.Venue, error) {
	return s.load(id)
}

// Create validates the input and stores it as a new venue
func (s *venueService) Create(ctx context.Context, in models.VenueInput) (*models.Venue, error) {
	v, verrs := in.Validate()
	if verrs != nil {
		return nil, makeValidationError(verrs)
	}
	if err := s.repo.Create(v); err != nil {
		return nil, makeStoreError(s.logger, "Venue", v.Name, "listed", err)
	}
	s.logger.WithFields(logrus.Fields{log.FldID: v.ID, log.FldName: v.Name}).Info("Venue listed")
	return v, nil
}

// Update validates the input and replaces all fields of the given venue with it
func (s *venueService) Update(ctx context.Context, id uint, in models.VenueInput) (*models.Venue, error) {
	v, verrs := in.Validate()
	if verrs != nil {
		return nil, makeValidationError(verrs)
	}
	v.ID = id
	if err := s.repo.Update(v); err != nil {
		if errors.Cause(err) == repos.ErrEntityNotExisting {
			return nil, venueNotFound(id)
		}
		return nil, makeStoreError(s.logger, "Venue", v.Name, "updated", err)
	}
	return s.load(id)
}

// Delete removes a venue without any shows
func (s *venueService) Delete(ctx context.Context, id uint) error {
	v, err := s.load(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		switch errors.Cause(err) {
		case repos.ErrEntityNotExisting:
			return venueNotFound(id)
		case repos.ErrEntityInUse:
			return makeInUseError("Venue", v.Name)
		}
		return makeStoreError(s.logger, "Venue", v.Name, "deleted", err)
	}
	s.logger.WithFields(logrus.Fields{log.FldID: id, log.FldName: v.Name}).Info("Venue deleted")
	return nil
}

// load returns the stored venue or the matching HTTP error
func (s *venueService) load(id uint) (*models.Venue, error) {
	v, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, venueNotFound(id)
		}
		msg := fmt.Sprintf("Error while retrieving venue #%d", id)
		s.logger.WithError(err).Error(msg)
		return nil, MakeError(http.StatusInternalServerError, ErrCodeRepoError, msg)
	}
	return v, nil
}

func venueNotFound(id uint) *HTTPError {
	return MakeError(http.StatusNotFound, ErrCodeVenueNotFound, fmt.Sprintf("Venue #%d does not exist", id))
}
