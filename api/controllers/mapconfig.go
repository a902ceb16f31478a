package controllers

import (
	"net/http"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
	"github.com/formosafoodlab/nightmarket-atlas/internal/explorer"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/geo"
)

// MapConfigDTO is the explorer bootstrap payload: provider credentials plus
// the home viewport. With no access token configured the map widget renders
// disabled while the rest of the site keeps working.
type MapConfigDTO struct {
	Enabled     bool       `json:"enabled"`
	AccessToken string     `json:"accessToken,omitempty"`
	Style       string     `json:"style,omitempty"`
	HomeBounds  geo.Bounds `json:"homeBounds"`
	Center      geo.Point  `json:"center"`
	MinZoom     float64    `json:"minZoom"`
	MaxZoom     float64    `json:"maxZoom"`
}

// MapConfig hands the frontend its map bootstrap settings.
func MapConfig(cfg config.MapsConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto := MapConfigDTO{
			Enabled:    cfg.AccessToken != "",
			HomeBounds: explorer.TaiwanBounds,
			Center:     explorer.TaiwanBounds.Center(),
			MinZoom:    explorer.MinZoom,
			MaxZoom:    explorer.MaxZoom,
		}
		if dto.Enabled {
			dto.AccessToken = cfg.AccessToken
			dto.Style = cfg.Style
		}

		responses.WriteSuccess(w, dto)
	}
}
