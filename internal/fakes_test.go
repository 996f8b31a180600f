package internal

import (
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

var errStoreDown = errors.New("database is locked")

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// -- In-memory store shared by the fake repositories ------------------------------------------------------------------

type fakeStore struct {
	sync.Mutex
	venues  map[uint]models.Venue
	artists map[uint]models.Artist
	shows   []models.Show
	nextID  uint
	// Set to make every write fail
	failWrites bool
	// Set to make every read fail
	failReads bool
	// Names of the show repo methods called
	showCalls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:  map[uint]models.Venue{},
		artists: map[uint]models.Artist{},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

type fakeVenueRepo struct{ *fakeStore }

func (r fakeVenueRepo) Create(v *models.Venue) error {
	r.Lock()
	defer r.Unlock()
	if r.failWrites {
		return errors.Wrap(errStoreDown, "Create: Failed to insert venue")
	}
	v.ID = r.id()
	r.venues[v.ID] = *v
	return nil
}

func (r fakeVenueRepo) Update(v *models.Venue) error {
	r.Lock()
	defer r.Unlock()
	if r.failWrites {
		return errors.Wrap(errStoreDown, "Update: Failed to update venue")
	}
	if _, ok := r.venues[v.ID]; !ok {
		return repos.ErrEntityNotExisting
	}
	r.venues[v.ID] = *v
	return nil
}

func (r fakeVenueRepo) Delete(id uint) error {
	r.Lock()
	defer r.Unlock()
	if r.failWrites {
		return errors.Wrap(errStoreDown, "Delete: Failed to delete venue")
	}
	for _, s := range r.shows {
		if s.VenueID == id {
			return repos.ErrEntityInUse
		}
	}
	if _, ok := r.venues[id]; !ok {
		return repos.ErrEntityNotExisting
	}
	delete(r.venues, id)
	return nil
}

func (r fakeVenueRepo) GetByID(id uint) (*models.Venue, error) {
	r.Lock()
	defer r.Unlock()
	if r.failReads {
		return nil, errStoreDown
	}
	v, ok := r.venues[id]
	if !ok {
		return nil, repos.ErrEntityNotExisting
	}
	return &v, nil
}

func (r fakeVenueRepo) List() ([]models.Venue, error) {
	r.Lock()
	defer r.Unlock()
	if r.failReads {
		return nil, errStoreDown
	}
	ret := []models.Venue{}
	for _, v := range r.venues {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret, nil
}

type fakeArtistRepo struct{ *fakeStore }

func (r fakeArtistRepo) Create(a *models.Artist) error {
	r.Lock()
	defer r.Unlock()
	if r.failWrites {
		return errors.Wrap(errStoreDown, "Create: Failed to insert artist")
	}
	a.ID = r.id()
	r.artists[a.ID] = *a
	return nil
}

func (r fakeArtistRepo) Update(a *models.Artist) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.artists[a.ID]; !ok {
		return repos.ErrEntityNotExisting
	}
	r.artists[a.ID] = *a
	return nil
}

func (r fakeArtistRepo) Delete(id uint) error {
	r.Lock()
	defer r.Unlock()
	for _, s := range r.shows {
		if s.ArtistID == id {
			return repos.ErrEntityInUse
		}
	}
	if _, ok := r.artists[id]; !ok {
		return repos.ErrEntityNotExisting
	}
	delete(r.artists, id)
	return nil
}

func (r fakeArtistRepo) GetByID(id uint) (*models.Artist, error) {
	r.Lock()
	defer r.Unlock()
	a, ok := r.artists[id]
	if !ok {
		return nil, repos.ErrEntityNotExisting
	}
	return &a, nil
}

func (r fakeArtistRepo) List() ([]models.Artist, error) {
	r.Lock()
	defer r.Unlock()
	ret := []models.Artist{}
	for _, a := range r.artists {
		ret = append(ret, a)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret, nil
}

type fakeShowRepo struct{ *fakeStore }

func (r fakeShowRepo) called(name string) {
	r.showCalls = append(r.showCalls, name)
}

func (r fakeShowRepo) Create(s *models.Show) error {
	r.Lock()
	defer r.Unlock()
	r.called("Create")
	if _, ok := r.artists[s.ArtistID]; !ok {
		return &repos.MissingReferenceError{Field: "artist_id", ID: s.ArtistID}
	}
	if _, ok := r.venues[s.VenueID]; !ok {
		return &repos.MissingReferenceError{Field: "venue_id", ID: s.VenueID}
	}
	if r.failWrites {
		return errors.Wrap(errStoreDown, "Create: Failed to insert show")
	}
	s.ID = r.id()
	r.shows = append(r.shows, *s)
	return nil
}

func (r fakeShowRepo) GetByID(id uint) (*models.Show, error) {
	r.Lock()
	defer r.Unlock()
	r.called("GetByID")
	for _, s := range r.shows {
		if s.ID == id {
			ret := s
			return &ret, nil
		}
	}
	return nil, repos.ErrEntityNotExisting
}

func (r fakeShowRepo) List() ([]models.Show, error) {
	r.Lock()
	defer r.Unlock()
	r.called("List")
	if r.failReads {
		return nil, errStoreDown
	}
	return append([]models.Show{}, r.shows...), nil
}

func (r fakeShowRepo) ListDetails() ([]models.ShowDetail, error) {
	r.Lock()
	defer r.Unlock()
	r.called("ListDetails")
	return r.details(func(models.Show) bool { return true }), nil
}

func (r fakeShowRepo) ListByVenue(venueID uint) ([]models.ShowDetail, error) {
	r.Lock()
	defer r.Unlock()
	r.called("ListByVenue")
	return r.details(func(s models.Show) bool { return s.VenueID == venueID }), nil
}

func (r fakeShowRepo) ListByArtist(artistID uint) ([]models.ShowDetail, error) {
	r.Lock()
	defer r.Unlock()
	r.called("ListByArtist")
	return r.details(func(s models.Show) bool { return s.ArtistID == artistID }), nil
}

func (r fakeShowRepo) details(filter func(models.Show) bool) []models.ShowDetail {
	ret := []models.ShowDetail{}
	for _, s := range r.shows {
		if !filter(s) {
			continue
		}
		v := r.venues[s.VenueID]
		a := r.artists[s.ArtistID]
		ret = append(ret, models.ShowDetail{
			ID:              s.ID,
			VenueID:         v.ID,
			VenueName:       v.Name,
			VenueImageLink:  v.ImageLink,
			ArtistID:        a.ID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       s.StartTime,
		})
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].StartTime.Before(ret[j].StartTime) })
	return ret
}
