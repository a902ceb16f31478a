package vendors

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

type fakeVendorRepo struct {
	vendors map[string]*models.Vendor
	markets map[string]bool
	joins   []models.MarketVendor
}

func newFakeVendorRepo(marketIDs ...string) *fakeVendorRepo {
	repo := &fakeVendorRepo{
		vendors: map[string]*models.Vendor{},
		markets: map[string]bool{},
	}
	for _, id := range marketIDs {
		repo.markets[id] = true
	}
	return repo
}

func (f *fakeVendorRepo) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Vendor, int64, error) {
	out := []models.Vendor{}
	for _, vendor := range f.vendors {
		if filters.MarketID != "" && !f.joined(filters.MarketID, vendor.ID) {
			continue
		}
		out = append(out, *vendor)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVendorRepo) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *vendor
	return &cpy, nil
}

func (f *fakeVendorRepo) CreateInMarket(ctx context.Context, vendor *models.Vendor, marketID string) error {
	if !f.markets[marketID] {
		return ErrMarketNotFound
	}
	cpy := *vendor
	f.vendors[vendor.ID] = &cpy
	f.joins = append(f.joins, models.MarketVendor{MarketID: marketID, VendorID: vendor.ID})
	return nil
}

func (f *fakeVendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	cpy := *vendor
	f.vendors[vendor.ID] = &cpy
	return nil
}

func (f *fakeVendorRepo) joined(marketID, vendorID string) bool {
	for _, join := range f.joins {
		if join.MarketID == marketID && join.VendorID == vendorID {
			return true
		}
	}
	return false
}

func newVendorService(t *testing.T, repo vendorRepository) Service {
	t.Helper()
	svc, err := NewService(repo, nil, config.CacheConfig{})
	require.NoError(t, err)
	return svc
}

func TestCreateUnknownMarketIsNotFound(t *testing.T) {
	repo := newFakeVendorRepo("shilin-night-market")
	svc := newVendorService(t, repo)

	lat, lng := 25.08, 121.52
	_, err := svc.Create(context.Background(), CreateVendorInput{
		Name: "Hot-Star Chicken", MarketID: "no-such-market", Latitude: &lat, Longitude: &lng,
	})

	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// neither the vendor nor a join record was written
	assert.Empty(t, repo.vendors)
	assert.Empty(t, repo.joins)
}

func TestCreateGeneratesIDAndJoin(t *testing.T) {
	repo := newFakeVendorRepo("shilin-night-market")
	svc := newVendorService(t, repo)

	lat, lng := 25.08, 121.52
	dto, err := svc.Create(context.Background(), CreateVendorInput{
		Name: "Hot-Star Chicken", MarketID: "shilin-night-market",
		Latitude: &lat, Longitude: &lng, Specialties: []string{"fried chicken"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, dto.ID)
	assert.True(t, dto.IsActive)
	require.Len(t, repo.joins, 1)
	assert.Equal(t, "shilin-night-market", repo.joins[0].MarketID)
	assert.Equal(t, dto.ID, repo.joins[0].VendorID)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	repo := newFakeVendorRepo("shilin-night-market")
	phone := "+886-2-1234-5678"
	repo.vendors["hot-star"] = &models.Vendor{
		ID: "hot-star", Name: "Hot-Star Chicken", ChineseName: "豪大大雞排",
		Latitude: 25.08, Longitude: 121.52, Phone: &phone,
		Specialties: pq.StringArray{"fried chicken"}, IsActive: true,
	}
	svc := newVendorService(t, repo)

	name := "Hot-Star Large Fried Chicken"
	dto, err := svc.Update(context.Background(), "hot-star", UpdateVendorInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, name, dto.Name)
	assert.Equal(t, "豪大大雞排", dto.ChineseName)
	require.NotNil(t, dto.Phone)
	assert.Equal(t, phone, *dto.Phone)
	assert.Equal(t, []string{"fried chicken"}, dto.Specialties)
}

func TestDeleteSoftDeletesVendor(t *testing.T) {
	repo := newFakeVendorRepo("shilin-night-market")
	repo.vendors["hot-star"] = &models.Vendor{ID: "hot-star", Name: "Hot-Star Chicken", IsActive: true}
	svc := newVendorService(t, repo)

	dto, err := svc.Delete(context.Background(), "hot-star")
	require.NoError(t, err)
	assert.False(t, dto.IsActive)

	fetched, err := svc.GetByID(context.Background(), "hot-star")
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newVendorService(t, newFakeVendorRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
