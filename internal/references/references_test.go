package references

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/db/models"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Reference{}))
	return conn
}

func seedReference(t *testing.T, conn *gorm.DB, year int, authors, category string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Reference{
		ID:       uuid.New(),
		Authors:  authors,
		Year:     year,
		Title:    "Study of night market foodways",
		Category: category,
	}).Error)
}

func TestServiceListOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)

	seedReference(t, conn, 2018, "Chen, Y.", "ethnography")
	seedReference(t, conn, 2021, "Wu, M.", "ethnography")
	seedReference(t, conn, 2019, "Lin, H.", "economics")

	svc, err := NewService(NewRepository(conn), nil, config.CacheConfig{})
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		rows, meta, err := svc.List(ctx, ListFilters{}, pagination.Normalize(1, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(3), meta.Total)
		require.Len(t, rows, 3)
		assert.Equal(t, 2021, rows[0].Year)
	})

	t.Run("category filter", func(t *testing.T) {
		rows, meta, err := svc.List(ctx, ListFilters{Category: "economics"}, pagination.Normalize(1, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(1), meta.Total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Lin, H.", rows[0].Authors)
	})
}

func TestServiceListSearchesAuthorsAndTitles(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)

	seedReference(t, conn, 2018, "Chen, Y.", "ethnography")
	seedReference(t, conn, 2021, "Wu, M.", "ethnography")
	require.NoError(t, conn.Create(&models.Reference{
		ID:       uuid.New(),
		Authors:  "Yu, S.",
		Year:     2004,
		Title:    "Renao and the sensory order of the market",
		Category: "ethnography",
	}).Error)

	svc, err := NewService(NewRepository(conn), nil, config.CacheConfig{})
	require.NoError(t, err)

	t.Run("matches authors", func(t *testing.T) {
		rows, meta, err := svc.List(ctx, ListFilters{Search: "Wu"}, pagination.Normalize(1, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(1), meta.Total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Wu, M.", rows[0].Authors)
	})

	t.Run("matches titles", func(t *testing.T) {
		rows, meta, err := svc.List(ctx, ListFilters{Search: "Renao"}, pagination.Normalize(1, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(1), meta.Total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Yu, S.", rows[0].Authors)
	})

	t.Run("no match yields empty page", func(t *testing.T) {
		rows, meta, err := svc.List(ctx, ListFilters{Search: "durian"}, pagination.Normalize(1, 20))
		require.NoError(t, err)
		assert.Equal(t, int64(0), meta.Total)
		assert.Empty(t, rows)
	})
}
