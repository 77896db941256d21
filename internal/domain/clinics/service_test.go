package clinics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mem "petify/internal/adapters/storage/memory"
	"petify/internal/domain/clinics"
)

type fakeGeocoder struct {
	places []clinics.Place
	err    error
	query  string
}

func (g *fakeGeocoder) Search(_ context.Context, query string, _ int) ([]clinics.Place, error) {
	g.query = query
	return g.places, g.err
}

func TestService_SearchAndGet(t *testing.T) {
	ctx := context.Background()
	s := mem.NewStore()
	repo := mem.NewClinicRepo(s)
	svc := clinics.NewService(repo)

	got, err := svc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	imp := clinics.NewImporter(repo, &fakeGeocoder{places: []clinics.Place{
		{Name: "Vet A", Address: "Calle 1", Lat: 1, Lng: 2},
	}}, s, nil)
	_, err = imp.Import(ctx, "vet", "", 5)
	require.NoError(t, err)

	items, err := svc.Search(ctx, clinics.SearchQuery{Lat: 0, Lng: 0, Radius: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)

	c, err := svc.Get(ctx, items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Vet A", c.Name)
	require.NotNil(t, c.Source)
	assert.Equal(t, clinics.SourceNominatim, *c.Source)
}

func TestImporter_SkipsDuplicatesAndBlankNames(t *testing.T) {
	ctx := context.Background()
	s := mem.NewStore()
	repo := mem.NewClinicRepo(s)

	geo := &fakeGeocoder{places: []clinics.Place{
		{Name: "Vet A", Address: "Calle 1", Lat: 1, Lng: 2},
		{Name: "Vet A", Address: "Calle 1", Lat: 1, Lng: 2},
		{Name: "  ", Address: "Calle 2"},
		{Name: "Vet B", Address: "", Lat: 3, Lng: 4},
	}}
	imp := clinics.NewImporter(repo, geo, s, nil)

	res, err := imp.Import(ctx, "veterinaria", "Samara", 10)
	require.NoError(t, err)
	assert.Equal(t, "veterinaria, Samara", geo.query)
	assert.Equal(t, clinics.ImportResult{Found: 4, Inserted: 2, Skipped: 2}, res)

	// segunda corrida no inserta nada
	res, err = imp.Import(ctx, "veterinaria", "Samara", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 4, res.Skipped)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImporter_GeocoderError(t *testing.T) {
	s := mem.NewStore()
	boom := errors.New("upstream down")
	imp := clinics.NewImporter(mem.NewClinicRepo(s), &fakeGeocoder{err: boom}, s, nil)

	_, err := imp.Import(context.Background(), "vet", "", 5)
	assert.ErrorIs(t, err, boom)
}
