package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
)

func TestMapConfigWithToken(t *testing.T) {
	handler := MapConfig(config.MapsConfig{AccessToken: "pk.test-token", Style: "mapbox://styles/mapbox/streets-v12"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/map/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data MapConfigDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Enabled)
	assert.Equal(t, "pk.test-token", envelope.Data.AccessToken)
	assert.InDelta(t, 23.5, envelope.Data.Center.Lat, 0.01)
}

func TestMapConfigWithoutTokenDegrades(t *testing.T) {
	handler := MapConfig(config.MapsConfig{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/map/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data MapConfigDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.False(t, envelope.Data.Enabled)
	assert.Empty(t, envelope.Data.AccessToken)
}

func TestHealthReadyAggregatesFailures(t *testing.T) {
	cfg := &config.Config{}
	handler := HealthReady(cfg, nil, map[string]Pinger{
		"postgres": pingFunc(func() error { return assert.AnError }),
		"redis":    nil,
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthReadyAllUp(t *testing.T) {
	cfg := &config.Config{}
	handler := HealthReady(cfg, nil, map[string]Pinger{
		"postgres": pingFunc(func() error { return nil }),
		"redis":    nil,
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
	assert.Contains(t, rec.Body.String(), `"postgres":"up"`)
}

type pingFunc func() error

func (f pingFunc) Ping(ctx context.Context) error {
	return f()
}
