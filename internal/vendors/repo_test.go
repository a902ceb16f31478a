package vendors

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Market{}, &models.Vendor{}, &models.MarketVendor{}))
	return conn
}

func seedMarket(t *testing.T, conn *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Market{
		ID: id, Name: id, ChineseName: "測試", Location: "Taipei",
		Latitude: 25.0, Longitude: 121.5, Established: "1980", IsActive: true,
	}).Error)
}

func seedVendorInMarket(t *testing.T, conn *gorm.DB, vendorID, marketID string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Vendor{
		ID: vendorID, Name: vendorID, Latitude: 25.08, Longitude: 121.52, IsActive: true,
	}).Error)
	require.NoError(t, conn.Create(&models.MarketVendor{MarketID: marketID, VendorID: vendorID}).Error)
}

func TestRepositoryListMarketFilterCountsFilteredSet(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewRepository(conn)

	seedMarket(t, conn, "shilin-night-market")
	seedMarket(t, conn, "raohe-night-market")
	seedVendorInMarket(t, conn, "hot-star", "shilin-night-market")
	seedVendorInMarket(t, conn, "oyster-omelet", "shilin-night-market")
	seedVendorInMarket(t, conn, "pepper-bun", "raohe-night-market")

	rows, total, err := repo.List(ctx, ListFilters{MarketID: "shilin-night-market"}, pagination.Normalize(1, 100))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total, "total must count the filtered set, not all vendors")
	require.Len(t, rows, 2)
	for _, vendor := range rows {
		require.Len(t, vendor.Markets, 1)
		assert.Equal(t, "shilin-night-market", vendor.Markets[0].ID)
	}
}

func TestRepositoryCreateInMarket(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewRepository(conn)

	seedMarket(t, conn, "shilin-night-market")

	t.Run("atomically writes vendor and join", func(t *testing.T) {
		vendor := &models.Vendor{ID: "hot-star", Name: "Hot-Star Chicken", Latitude: 25.08, Longitude: 121.52, IsActive: true}
		require.NoError(t, repo.CreateInMarket(ctx, vendor, "shilin-night-market"))

		loaded, err := repo.FindByID(ctx, "hot-star")
		require.NoError(t, err)
		require.Len(t, loaded.Markets, 1)
		assert.Equal(t, "shilin-night-market", loaded.Markets[0].ID)
	})

	t.Run("unknown market writes nothing", func(t *testing.T) {
		vendor := &models.Vendor{ID: "ghost-stall", Name: "Ghost Stall", IsActive: true}
		err := repo.CreateInMarket(ctx, vendor, "no-such-market")
		require.ErrorIs(t, err, ErrMarketNotFound)

		var count int64
		require.NoError(t, conn.Model(&models.Vendor{}).Where("id = ?", "ghost-stall").Count(&count).Error)
		assert.Zero(t, count)

		require.NoError(t, conn.Model(&models.MarketVendor{}).Where("vendor_id = ?", "ghost-stall").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestRepositorySpecialtyFilter(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewRepository(conn)

	seedMarket(t, conn, "shilin-night-market")
	require.NoError(t, conn.Create(&models.Vendor{
		ID: "hot-star", Name: "Hot-Star Chicken", Specialties: pq.StringArray{"fried chicken"},
		Latitude: 25.08, Longitude: 121.52, IsActive: true,
	}).Error)
	require.NoError(t, conn.Create(&models.Vendor{
		ID: "mango-shaved-ice", Name: "Mango Shaved Ice", Specialties: pq.StringArray{"dessert"},
		Latitude: 25.09, Longitude: 121.53, IsActive: true,
	}).Error)

	require.NoError(t, conn.Create(&models.Vendor{
		ID: "rong-ji", Name: "Rong Ji", Specialties: pq.StringArray{"braised pork rice", "miso soup"},
		Latitude: 25.06, Longitude: 121.51, IsActive: true,
	}).Error)

	rows, total, err := repo.List(ctx, ListFilters{Specialty: "dessert"}, pagination.Normalize(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "mango-shaved-ice", rows[0].ID)

	// the match is a substring over the serialized array, so a term inside
	// a multi-word specialty still hits
	rows, total, err = repo.List(ctx, ListFilters{Specialty: "rice"}, pagination.Normalize(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "rong-ji", rows[0].ID)
}
