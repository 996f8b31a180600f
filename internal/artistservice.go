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

// ArtistService provides service functions for working with artists
type ArtistService interface {
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Search(ctx context.Context, term string) (models.ArtistSearchResult, error)
	Get(ctx context.Context, id uint) (*models.ArtistDetail, error)
	GetForEdit(ctx context.Context, id uint) (*models.Artist, error)
	Create(ctx context.Context, in models.ArtistInput) (*models.Artist, error)
	Update(ctx context.Context, id uint, in models.ArtistInput) (*models.Artist, error)
	Delete(ctx context.Context, id uint) error
}

// -- ArtistService implementation -------------------------------------------------------------------------------------

type artistService struct {
	repo   repos.ArtistRepo
	shows  repos.ShowRepo
	logger *logrus.Entry
	now    func() time.Time
}

// NewArtistService creates a new artist service instance
func NewArtistService(artists repos.ArtistRepo, shows repos.ShowRepo, logger *logrus.Entry) ArtistService {
	return &artistService{
		repo:   artists,
		shows:  shows,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all artists ordered by name
func (s *artistService) List(ctx context.Context) ([]models.ArtistSummary, error) {
	artists, shows, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	return listing.SummarizeArtists(artists, shows, s.now()), nil
}

// Search returns the artists whose names contain the given term
func (s *artistService) Search(ctx context.Context, term string) (models.ArtistSearchResult, error) {
	s.logger.WithField(log.FldSearch, term).Debug("Searching artists")
	artists, shows, err := s.loadAll()
	if err != nil {
		return models.ArtistSearchResult{}, err
	}
	return listing.SearchArtists(artists, shows, term, s.now()), nil
}

func (s *artistService) loadAll() ([]models.Artist, []models.Show, error) {
	artists, err := s.repo.List()
	if err != nil {
		return nil, nil, makeStoreError(s.logger, "Artists", "", "loaded", err)
	}
	shows, err := s.shows.List()
	if err != nil {
		return nil, nil, makeStoreError(s.logger, "Artists", "", "loaded", err)
	}
	return artists, shows, nil
}

// Get returns the artist page with the artist's shows split into past and upcoming ones
func (s *artistService) Get(ctx context.Context, id uint) (*models.ArtistDetail, error) {
	a, err := s.load(id)
	if err != nil {
		return nil, err
	}
	shows, err := s.shows.ListByArtist(id)
	if err != nil {
		return nil, makeStoreError(s.logger, "Artist", a.Name, "loaded", err)
	}
	detail := listing.ArtistDetail(a.ToDisplayRecord(shows), s.now())
	return &detail, nil
}

// GetForEdit returns the artist as it is stored
func (s *artistService) GetForEdit(ctx context.Context, id uint) (*models.Artist, error) {
	return s.load(id)
}

// Create validates the input and stores it as a new artist
func (s *artistService) Create(ctx context.Context, in models.ArtistInput) (*models.Artist, error) {
	a, verrs := in.Validate()
	if verrs != nil {
		return nil, makeValidationError(verrs)
	}
	if err := s.repo.Create(a); err != nil {
		return nil, makeStoreError(s.logger, "Artist", a.Name, "listed", err)
	}
	s.logger.WithFields(logrus.Fields{log.FldID: a.ID, log.FldName: a.Name}).Info("Artist listed")
	return a, nil
}

// Update validates the input and replaces all fields of the given artist with it
func (s *artistService) Update(ctx context.Context, id uint, in models.ArtistInput) (*models.Artist, error) {
	a, verrs := in.Validate()
	if verrs != nil {
		return nil, makeValidationError(verrs)
	}
	a.ID = id
	if err := s.repo.Update(a); err != nil {
		if errors.Cause(err) == repos.ErrEntityNotExisting {
			return nil, artistNotFound(id)
		}
		return nil, makeStoreError(s.logger, "Artist", a.Name, "updated", err)
	}
	return s.load(id)
}

// Delete removes an artist who is not booked for any show
func (s *artistService) Delete(ctx context.Context, id uint) error {
	a, err := s.load(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		switch errors.Cause(err) {
		case repos.ErrEntityNotExisting:
			return artistNotFound(id)
		case repos.ErrEntityInUse:
			return makeInUseError("Artist", a.Name)
		}
		return makeStoreError(s.logger, "Artist", a.Name, "deleted", err)
	}
	s.logger.WithFields(logrus.Fields{log.FldID: id, log.FldName: a.Name}).Info("Artist deleted")
	return nil
}

func (s *artistService) load(id uint) (*models.Artist, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, artistNotFound(id)
		}
		msg := fmt.Sprintf("Error while retrieving artist #%d", id)
		s.logger.WithError(err).Error(msg)
		return nil, MakeError(http.StatusInternalServerError, ErrCodeRepoError, msg)
	}
	return a, nil
}

func artistNotFound(id uint) *HTTPError {
	return MakeError(http.StatusNotFound, ErrCodeArtistNotFound, fmt.Sprintf("Artist #%d does not exist", id))
}
