package explorer

import "github.com/formosafoodlab/nightmarket-atlas/pkg/geo"

const maxPopupTags = 2

// MarkerKind distinguishes market pins from vendor pins.
type MarkerKind string

const (
	MarkerMarket MarkerKind = "market"
	MarkerVendor MarkerKind = "vendor"
)

// Popup is the summary card a marker opens on click or hover.
type Popup struct {
	Title    string
	Subtitle string
	Tags     []string
}

// Marker is one pin on the map surface.
type Marker struct {
	ID       string
	Kind     MarkerKind
	Point    geo.Point
	Icon     MarkerIcon
	Selected bool
	Popup    Popup
}

// MapSurface is the rendering widget the explorer drives. Camera commands
// carry a sequence number; the surface must let a higher Seq supersede any
// animation still in flight.
type MapSurface interface {
	AddMarker(marker Marker)
	RemoveMarker(id string)
	EaseTo(cmd CameraCommand)
	FitBounds(cmd CameraCommand)
}

// markerRenderer owns the set of markers currently on the surface. Every
// render clears the previous set before adding the new one, so the surface
// can never accumulate stale pins; collections are tens of items, which
// keeps the rebuild cheap.
type markerRenderer struct {
	rendered []string
}

func (r *markerRenderer) render(surface MapSurface, markers []Marker) {
	for _, id := range r.rendered {
		surface.RemoveMarker(id)
	}
	r.rendered = r.rendered[:0]

	for _, marker := range markers {
		surface.AddMarker(marker)
		r.rendered = append(r.rendered, marker.ID)
	}
}

func marketMarker(market Market, selected bool) Marker {
	return Marker{
		ID:       market.ID,
		Kind:     MarkerMarket,
		Point:    market.Point,
		Icon:     IconMarket,
		Selected: selected,
		Popup: Popup{
			Title:    market.Name,
			Subtitle: market.ChineseName,
		},
	}
}

func vendorMarker(vendor Vendor, selected bool) Marker {
	tags := vendor.Specialties
	if len(tags) > maxPopupTags {
		tags = tags[:maxPopupTags]
	}
	return Marker{
		ID:       vendor.ID,
		Kind:     MarkerVendor,
		Point:    vendor.Point,
		Icon:     IconForVendor(vendor.Specialties),
		Selected: selected,
		Popup: Popup{
			Title:    vendor.Name,
			Subtitle: vendor.ChineseName,
			Tags:     append([]string{}, tags...),
		},
	}
}
