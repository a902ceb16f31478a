package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/geo"
)

func TestRendererClearsBeforeAdding(t *testing.T) {
	surface := newFakeSurface()
	renderer := &markerRenderer{}

	first := []Marker{
		{ID: "a", Kind: MarkerMarket, Point: geo.Point{Lat: 25, Lng: 121.5}},
		{ID: "b", Kind: MarkerMarket, Point: geo.Point{Lat: 25.1, Lng: 121.6}},
	}
	renderer.render(surface, first)
	assert.Len(t, surface.markers, 2)

	second := []Marker{
		{ID: "c", Kind: MarkerVendor, Point: geo.Point{Lat: 25.05, Lng: 121.55}},
	}
	renderer.render(surface, second)

	require.Len(t, surface.markers, 1)
	_, ok := surface.markers["c"]
	assert.True(t, ok)
}

func TestRendererEmptySetClearsEverything(t *testing.T) {
	surface := newFakeSurface()
	renderer := &markerRenderer{}

	renderer.render(surface, []Marker{{ID: "a", Point: geo.Point{Lat: 25, Lng: 121.5}}})
	renderer.render(surface, nil)

	assert.Empty(t, surface.markers)
}

func TestVendorPopupCapsTagsAtTwo(t *testing.T) {
	vendor := Vendor{
		ID:          "hot-star",
		Name:        "Hot-Star Chicken",
		ChineseName: "豪大大雞排",
		Point:       geo.Point{Lat: 25.0879, Lng: 121.5241},
		Specialties: []string{"fried chicken", "pepper", "basil", "garlic"},
	}

	marker := vendorMarker(vendor, false)

	assert.Equal(t, []string{"fried chicken", "pepper"}, marker.Popup.Tags)
	assert.Equal(t, "Hot-Star Chicken", marker.Popup.Title)
	assert.Equal(t, "豪大大雞排", marker.Popup.Subtitle)
	assert.Equal(t, IconMeat, marker.Icon)
}

func TestMarketMarkerShape(t *testing.T) {
	market := Market{ID: "shilin-night-market", Name: "Shilin Night Market", ChineseName: "士林夜市", Point: geo.Point{Lat: 25.0881, Lng: 121.524}}

	marker := marketMarker(market, true)

	assert.Equal(t, MarkerMarket, marker.Kind)
	assert.Equal(t, IconMarket, marker.Icon)
	assert.True(t, marker.Selected)
	assert.Empty(t, marker.Popup.Tags)
}
