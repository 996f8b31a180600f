package seed

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	fyyur "github.com/derWhity/fyyur/internal"
	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/migrate"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
)

const demoYAML = `
venues:
  - name: The Musical Hop
    city: San Francisco
    state: CA
    address: 1015 Folsom Street
    phone: 123-123-1234
    website: https://www.themusicalhop.com
    facebook_link: https://www.facebook.com/TheMusicalHop
    seeking_talent: true
    seeking_description: We are on the lookout for a local artist to play every two weeks. Please call us.
    genres: [Jazz, Reggae, Classical, Folk]
artists:
  - name: Guns N Petals
    city: San Francisco
    state: CA
    phone: 326-123-5000
    website: https://www.gunsnpetalsband.com
    facebook_link: https://www.facebook.com/GunsNPetals
    seeking_venue: true
    seeking_description: Looking for shows to perform at in the San Francisco Bay Area!
    image_link: https://images.unsplash.com/photo-1549213783-8284d0336c4f
    genres: [Rock n Roll]
shows:
  - artist: Guns N Petals
    venue: The Musical Hop
    start_time: "2019-05-21T21:30:00.000Z"
`

type fixture struct {
	ctx      context.Context
	importer *Importer
}

func newFixture(t *testing.T) *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logrus.NewEntry(logger)
	db, err := migrate.OpenDatabase(filepath.Join(t.TempDir(), "fyyur.db"), entry)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	shows := showrepo.New(db, entry)
	return &fixture{
		ctx: ctxhelper.WithLogger(context.Background(), entry),
		importer: &Importer{
			Venues:  fyyur.NewVenueService(venuerepo.New(db, entry), shows, entry),
			Artists: fyyur.NewArtistService(artistrepo.New(db, entry), shows, entry),
			Shows:   fyyur.NewShowService(shows, entry),
		},
	}
}

func writeSeed(t *testing.T, name, content string) string {
	fileName := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0o600))
	return fileName
}

func TestImport_YAML(t *testing.T) {
	f := newFixture(t)
	data, err := Load(writeSeed(t, "demo.yaml", demoYAML))
	require.NoError(t, err)
	require.Len(t, data.Venues, 1)
	assert.Equal(t, []string{"Jazz", "Reggae", "Classical", "Folk"}, data.Venues[0].Genres)

	rep, err := f.importer.Import(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, Report{Venues: 1, Artists: 1, Shows: 1}, rep)

	groups, err := f.importer.Venues.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "San Francisco", groups[0].City)

	artists, err := f.importer.Artists.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	detail, err := f.importer.Artists.Get(f.ctx, artists[0].ID)
	require.NoError(t, err)
	require.Len(t, detail.PastShows, 1)
	assert.Equal(t, "The Musical Hop", detail.PastShows[0].VenueName)
}

func TestImport_JSON(t *testing.T) {
	f := newFixture(t)
	data, err := Load(writeSeed(t, "demo.json", `{"venues": [], "artists": [], "shows": []}`))
	require.NoError(t, err)
	rep, err := f.importer.Import(f.ctx, data)
	require.NoError(t, err)
	assert.Equal(t, Report{}, rep)
}

func TestImport_StopsAtInvalidEntry(t *testing.T) {
	f := newFixture(t)
	data, err := Load(writeSeed(t, "demo.yml", demoYAML))
	require.NoError(t, err)
	data.Artists[0].State = "ZZ"

	rep, err := f.importer.Import(f.ctx, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Artist #1 (Guns N Petals)")
	assert.Equal(t, Report{Venues: 1}, rep)
}

func TestImport_UnknownShowReference(t *testing.T) {
	f := newFixture(t)
	data, err := Load(writeSeed(t, "demo.yaml", demoYAML))
	require.NoError(t, err)
	data.Shows[0].Venue = "The Dueling Pianos Bar"

	_, err = f.importer.Import(f.ctx, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown venue")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(writeSeed(t, "broken.json", `{"venues": [`))
	assert.Error(t, err)
}
