package markets

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/internal/cache"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/redis"
)

type fakeMarketRepo struct {
	rows      map[string]*models.Market
	listCalls int
	createErr error
}

func newFakeMarketRepo(rows ...*models.Market) *fakeMarketRepo {
	repo := &fakeMarketRepo{rows: map[string]*models.Market{}}
	for _, row := range rows {
		repo.rows[row.ID] = row
	}
	return repo
}

func (f *fakeMarketRepo) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Market, int64, error) {
	f.listCalls++
	out := make([]models.Market, 0, len(f.rows))
	for _, row := range f.rows {
		if filters.Active != nil && row.IsActive != *filters.Active {
			continue
		}
		out = append(out, *row)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMarketRepo) FindByID(ctx context.Context, id string) (*models.Market, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *row
	return &cpy, nil
}

func (f *fakeMarketRepo) Create(ctx context.Context, market *models.Market) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[market.ID]; ok {
		return errors.New("duplicate key value violates unique constraint \"markets_pkey\"")
	}
	cpy := *market
	f.rows[market.ID] = &cpy
	return nil
}

func (f *fakeMarketRepo) Update(ctx context.Context, market *models.Market) error {
	cpy := *market
	f.rows[market.ID] = &cpy
	return nil
}

func shilin() *models.Market {
	return &models.Market{
		ID:             "shilin-night-market",
		Name:           "Shilin Night Market",
		ChineseName:    "士林夜市",
		Location:       "Shilin District, Taipei",
		Latitude:       25.0881,
		Longitude:      121.5240,
		Established:    "1909",
		ResearchFocus:  "Culinary tourism",
		Description:    "Largest night market in Taipei.",
		AnalyticalNote: "High tourist-to-local ratio.",
		KeyFindings:    pq.StringArray{"finding one", "finding two"},
		Image:          "https://img.example.org/shilin.jpg",
		IsActive:       true,
	}
}

func newMarketService(t *testing.T, repo marketRepository, cacheStore *cache.Store) Service {
	t.Helper()
	svc, err := NewService(repo, cacheStore, config.CacheConfig{})
	require.NoError(t, err)
	return svc
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newMarketService(t, newFakeMarketRepo(), nil)

	_, err := svc.GetByID(context.Background(), "missing")
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateDuplicateIDConflicts(t *testing.T) {
	existing := shilin()
	repo := newFakeMarketRepo(existing)
	svc := newMarketService(t, repo, nil)

	lat, lng := 25.0, 121.5
	_, err := svc.Create(context.Background(), CreateMarketInput{
		ID: existing.ID, Name: "Impostor", ChineseName: "x", Location: "x",
		Latitude: &lat, Longitude: &lng, Established: "2020", ResearchFocus: "x",
		Description: "x", AnalyticalNote: "x", KeyFindings: []string{"x"}, Image: "x",
	})

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// the stored record is untouched
	assert.Equal(t, "Shilin Night Market", repo.rows[existing.ID].Name)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newFakeMarketRepo(shilin())
	svc := newMarketService(t, repo, nil)

	inactive := false
	dto, err := svc.Update(context.Background(), "shilin-night-market", UpdateMarketInput{IsActive: &inactive})
	require.NoError(t, err)

	assert.False(t, dto.IsActive)
	assert.Equal(t, "Shilin Night Market", dto.Name)
	assert.Equal(t, "士林夜市", dto.ChineseName)
	assert.Equal(t, []string{"finding one", "finding two"}, dto.KeyFindings)
}

func TestDeleteSoftDeletes(t *testing.T) {
	repo := newFakeMarketRepo(shilin())
	svc := newMarketService(t, repo, nil)

	dto, err := svc.Delete(context.Background(), "shilin-night-market")
	require.NoError(t, err)
	assert.False(t, dto.IsActive)

	// still retrievable by direct lookup, flag set
	fetched, err := svc.GetByID(context.Background(), "shilin-night-market")
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)
}

func TestDeleteMissingMarket(t *testing.T) {
	svc := newMarketService(t, newFakeMarketRepo(), nil)

	_, err := svc.Delete(context.Background(), "missing")
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListUsesCacheUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMarketRepo(shilin())
	store := cache.New(redis.NewWithStore(redis.NewMemoryStore()), nil)
	svc, err := NewService(repo, store, config.CacheConfig{ListTTL: 0, DetailTTL: 0})
	require.NoError(t, err)

	page := pagination.Normalize(1, 20)

	_, _, err = svc.List(ctx, ListFilters{}, page)
	require.NoError(t, err)
	_, _, err = svc.List(ctx, ListFilters{}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second read should come from cache")

	lat, lng := 25.0, 121.5
	_, err = svc.Create(ctx, CreateMarketInput{
		ID: "raohe-night-market", Name: "Raohe Street Night Market", ChineseName: "饒河街觀光夜市",
		Location: "Songshan District, Taipei", Latitude: &lat, Longitude: &lng,
		Established: "1987", ResearchFocus: "Heritage foodways", Description: "d",
		AnalyticalNote: "a", KeyFindings: []string{"k"}, Image: "i",
	})
	require.NoError(t, err)

	list, meta, err := svc.List(ctx, ListFilters{}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "write should invalidate the cached page")
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), meta.Total)
}
