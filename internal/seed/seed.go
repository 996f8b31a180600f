// Package seed imports venues, artists and shows from a data file into an empty or existing Fyyur database.
// Every entry passes the same validation as the entries created through the API.
package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"gopkg.in/yaml.v3"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
)

// Show is a show inside a seed file. Artist and venue are referenced by name, since IDs are assigned on import.
type Show struct {
	Artist    string `json:"artist" yaml:"artist"`
	Venue     string `json:"venue" yaml:"venue"`
	StartTime string `json:"start_time" yaml:"start_time"`
}

// Data is the content of a seed file
type Data struct {
	Venues  []models.VenueInput  `json:"venues" yaml:"venues"`
	Artists []models.ArtistInput `json:"artists" yaml:"artists"`
	Shows   []Show               `json:"shows" yaml:"shows"`
}

// Report tells how many entries have been imported
type Report struct {
	Venues  int
	Artists int
	Shows   int
}

// Load reads seed data from a JSON or YAML file
func Load(fileName string) (*Data, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load: Cannot open seed file")
	}
	defer f.Close()
	var data Data
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&data)
	default:
		err = json.NewDecoder(f).Decode(&data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Load: Failed to decode seed file '%s'", fileName)
	}
	return &data, nil
}

// Importer writes seed data through the services
type Importer struct {
	Venues  fyyur.VenueService
	Artists fyyur.ArtistService
	Shows   fyyur.ShowService
}

// Import creates all venues and artists of the seed data and then books its shows. It stops at the first entry that
// cannot be stored - entries imported before stay in place.
func (im *Importer) Import(ctx context.Context, data *Data) (Report, error) {
	logger := ctxhelper.Logger(ctx)
	var rep Report
	venueIDs := make(map[string]uint, len(data.Venues))
	for i, in := range data.Venues {
		v, err := im.Venues.Create(ctx, in)
		if err != nil {
			return rep, errors.Wrapf(err, "Import: Venue #%d (%s)", i+1, in.Name)
		}
		venueIDs[v.Name] = v.ID
		rep.Venues++
	}
	artistIDs := make(map[string]uint, len(data.Artists))
	for i, in := range data.Artists {
		a, err := im.Artists.Create(ctx, in)
		if err != nil {
			return rep, errors.Wrapf(err, "Import: Artist #%d (%s)", i+1, in.Name)
		}
		artistIDs[a.Name] = a.ID
		rep.Artists++
	}
	for i, s := range data.Shows {
		artistID, ok := artistIDs[strings.TrimSpace(s.Artist)]
		if !ok {
			return rep, errors.Errorf("Import: Show #%d references unknown artist '%s'", i+1, s.Artist)
		}
		venueID, ok := venueIDs[strings.TrimSpace(s.Venue)]
		if !ok {
			return rep, errors.Errorf("Import: Show #%d references unknown venue '%s'", i+1, s.Venue)
		}
		in := models.ShowInput{ArtistID: artistID, VenueID: venueID, StartTime: s.StartTime}
		if _, err := im.Shows.Create(ctx, in); err != nil {
			return rep, errors.Wrapf(err, "Import: Show #%d", i+1)
		}
		rep.Shows++
	}
	logger.WithFields(logrus.Fields{
		log.FldVenue:  rep.Venues,
		log.FldArtist: rep.Artists,
	}).Infof("Imported %d shows", rep.Shows)
	return rep, nil
}
