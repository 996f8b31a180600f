package internal

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	"github.com/derWhity/fyyur/internal/validator"
)

// ShowService provides service functions for booking shows
type ShowService interface {
	// List returns all shows together with the names of their venues and artists
	List(ctx context.Context) ([]models.ShowDetail, error)
	// Get returns a single show
	Get(ctx context.Context, id uint) (*models.Show, error)
	// Create books an artist for a show at a venue
	Create(ctx context.Context, in models.ShowInput) (*models.Show, error)
}

// -- ShowService implementation ---------------------------------------------------------------------------------------

type showService struct {
	repo   repos.ShowRepo
	logger *logrus.Entry
	now    func() time.Time
}

// NewShowService creates a new show service instance
func NewShowService(shows repos.ShowRepo, logger *logrus.Entry) ShowService {
	return &showService{
		repo:   shows,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all shows together with the names of their venues and artists
func (s *showService) List(ctx context.Context) ([]models.ShowDetail, error) {
	shows, err := s.repo.ListDetails()
	if err != nil {
		return nil, makeStoreError(s.logger, "Shows", "", "loaded", err)
	}
	return shows, nil
}

// Get returns a single show
func (s *showService) Get(ctx context.Context, id uint) (*models.Show, error) {
	show, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, MakeError(http.StatusNotFound, ErrCodeShowNotFound, fmt.Sprintf("Show #%d does not exist", id))
		}
		msg := fmt.Sprintf("Error while retrieving show #%d", id)
		s.logger.WithError(err).Error(msg)
		return nil, MakeError(http.StatusInternalServerError, ErrCodeRepoError, msg)
	}
	return show, nil
}

// Create books an artist for a show at a venue. Unknown artists or venues are reported as invalid references.
func (s *showService) Create(ctx context.Context, in models.ShowInput) (*models.Show, error) {
	show, verrs := in.Validate(s.now())
	if verrs != nil {
		return nil, makeValidationError(verrs)
	}
	logger := s.logger.WithFields(logrus.Fields{log.FldArtist: show.ArtistID, log.FldVenue: show.VenueID})
	if err := s.repo.Create(show); err != nil {
		if refErr, ok := err.(*repos.MissingReferenceError); ok {
			return nil, makeValidationError(validator.Errors{{
				Field:  refErr.Field,
				Kind:   validator.InvalidReference,
				Values: []string{strconv.FormatUint(uint64(refErr.ID), 10)},
			}})
		}
		return nil, makeStoreError(logger, "Show", "", "listed", err)
	}
	logger.WithField(log.FldID, show.ID).Info("Show listed")
	return show, nil
}
