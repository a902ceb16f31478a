package explorer

import (
	"context"
	"fmt"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/geo"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
)

// Market is the explorer's lightweight view of a night market.
type Market struct {
	ID          string
	Name        string
	ChineseName string
	Point       geo.Point
}

// Vendor is the explorer's lightweight view of a stall.
type Vendor struct {
	ID          string
	Name        string
	ChineseName string
	Point       geo.Point
	Specialties []string
}

// Engine is the explorer state container: collections, view mode and the
// current selection, plus the camera and marker policies that keep the map
// surface consistent with them. Instances are independent, so a test (or a
// second page) can run its own engine against its own surface. Not safe for
// concurrent use; callers drive it from a single goroutine the way a UI
// event loop would.
type Engine struct {
	surface MapSurface
	logg    *logger.Logger

	camera  cameraController
	markers markerRenderer

	mode        ViewMode
	selection   Selection
	activePanel string
	markets     []Market
	vendors     []Vendor
}

// NewEngine builds an engine around a map surface. The initial mode is
// markets with nothing selected.
func NewEngine(surface MapSurface, logg *logger.Logger) (*Engine, error) {
	if surface == nil {
		return nil, fmt.Errorf("map surface required")
	}
	return &Engine{
		surface: surface,
		logg:    logg,
		mode:    ModeMarkets,
	}, nil
}

// Mode returns the active view mode.
func (e *Engine) Mode() ViewMode {
	return e.mode
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	return e.selection
}

// SetMarkets replaces the market collection wholesale. A market selection
// whose id is no longer present is cleared rather than left dangling.
func (e *Engine) SetMarkets(ctx context.Context, markets []Market) {
	e.markets = append([]Market{}, markets...)

	if id, ok := e.selection.MarketID(); ok && e.findMarket(id) == nil {
		e.info(ctx, "explorer.selection_cleared_on_refresh")
		e.selection = NoSelection()
	}

	e.sync(ctx)
}

// SetVendors replaces the vendor collection wholesale, with the same
// stale-selection reconciliation as SetMarkets.
func (e *Engine) SetVendors(ctx context.Context, vendors []Vendor) {
	e.vendors = append([]Vendor{}, vendors...)

	if id, ok := e.selection.VendorID(); ok && e.findVendor(id) == nil {
		e.info(ctx, "explorer.selection_cleared_on_refresh")
		e.selection = NoSelection()
	}

	e.sync(ctx)
}

// ActivePanel returns the id of the expanded research panel, or the empty
// string when every panel is collapsed.
func (e *Engine) ActivePanel() string {
	return e.activePanel
}

// SetActivePanel expands the named research panel. At most one panel is open
// at a time: naming the panel that is already expanded collapses it, as does
// the empty id. Panel state is prose-only and never moves the camera.
func (e *Engine) SetActivePanel(panel string) {
	if panel == e.activePanel {
		e.activePanel = ""
		return
	}
	e.activePanel = panel
}

// SetMode switches the view mode. Unknown modes are ignored.
func (e *Engine) SetMode(ctx context.Context, mode ViewMode) {
	if !mode.Valid() || mode == e.mode {
		return
	}
	e.mode = mode
	e.sync(ctx)
}

// SelectMarket selects a market by id, displacing any vendor selection. The
// selection may reference a market the collection has not loaded yet; the
// camera only moves once the backing record is present.
func (e *Engine) SelectMarket(ctx context.Context, id string) {
	e.selection = MarketSelection(id)
	e.sync(ctx)
}

// SelectVendor selects a vendor by id, displacing any market selection.
func (e *Engine) SelectVendor(ctx context.Context, id string) {
	e.selection = VendorSelection(id)
	e.sync(ctx)
}

// ClearSelection returns to the unselected camera policy for the current
// mode.
func (e *Engine) ClearSelection(ctx context.Context) {
	if e.selection.IsNone() {
		return
	}
	e.selection = NoSelection()
	e.sync(ctx)
}

// ReportZoom feeds the camera's actual zoom back from the surface, keeping
// the refit hysteresis honest after user-driven zooming.
func (e *Engine) ReportZoom(zoom float64) {
	e.camera.reportZoom(zoom)
}

// sync recomputes the camera target and marker set from the current state.
func (e *Engine) sync(ctx context.Context) {
	e.syncCamera(ctx)
	e.markers.render(e.surface, e.currentMarkers())
}

func (e *Engine) syncCamera(ctx context.Context) {
	// Research mode never moves the camera.
	if e.mode == ModeResearch {
		return
	}

	if id, ok := e.selection.MarketID(); ok {
		market := e.findMarket(id)
		if market == nil || !market.Point.Valid() {
			// Selected before the collection loaded; act once it arrives.
			return
		}
		zoom := MarketFocusZoom
		if e.mode == ModeVendors {
			zoom = StallFocusZoom
		}
		e.surface.EaseTo(e.camera.ease(market.Point, zoom))
		return
	}

	if id, ok := e.selection.VendorID(); ok {
		vendor := e.findVendor(id)
		if vendor == nil || !vendor.Point.Valid() {
			return
		}
		e.surface.EaseTo(e.camera.ease(vendor.Point, VendorFocusZoom))
		return
	}

	switch e.mode {
	case ModeVendors:
		if e.camera.zoomAbove(RefitSkipZoom) {
			e.info(ctx, "explorer.refit_skipped")
			return
		}
		e.fitTo(vendorPoints(e.vendors))
	case ModeMarkets:
		e.fitTo(marketPoints(e.markets))
	}
}

// fitTo fits the camera over the valid points: none is a no-op, one eases
// to a fixed default zoom instead of a zero-area box, more fit the bounds.
func (e *Engine) fitTo(points []geo.Point) {
	bounds, count := geo.BoundsFrom(points)
	switch {
	case count == 0:
		return
	case count == 1 || bounds.IsPoint():
		e.surface.EaseTo(e.camera.ease(bounds.Center(), SinglePointZoom))
	default:
		e.surface.FitBounds(e.camera.fit(bounds))
	}
}

func (e *Engine) currentMarkers() []Marker {
	switch e.mode {
	case ModeVendors:
		selectedID, _ := e.selection.VendorID()
		markers := make([]Marker, 0, len(e.vendors))
		for _, vendor := range e.vendors {
			if !vendor.Point.Valid() {
				continue
			}
			markers = append(markers, vendorMarker(vendor, vendor.ID == selectedID))
		}
		return markers
	default:
		// Research keeps the market layer visible; only the camera freezes.
		selectedID, _ := e.selection.MarketID()
		markers := make([]Marker, 0, len(e.markets))
		for _, market := range e.markets {
			if !market.Point.Valid() {
				continue
			}
			markers = append(markers, marketMarker(market, market.ID == selectedID))
		}
		return markers
	}
}

func (e *Engine) findMarket(id string) *Market {
	for i := range e.markets {
		if e.markets[i].ID == id {
			return &e.markets[i]
		}
	}
	return nil
}

func (e *Engine) findVendor(id string) *Vendor {
	for i := range e.vendors {
		if e.vendors[i].ID == id {
			return &e.vendors[i]
		}
	}
	return nil
}

func (e *Engine) info(ctx context.Context, msg string) {
	if e.logg == nil {
		return
	}
	e.logg.Info(ctx, msg)
}

func marketPoints(markets []Market) []geo.Point {
	points := make([]geo.Point, 0, len(markets))
	for _, market := range markets {
		points = append(points, market.Point)
	}
	return points
}

func vendorPoints(vendors []Vendor) []geo.Point {
	points := make([]geo.Point, 0, len(vendors))
	for _, vendor := range vendors {
		points = append(points, vendor.Point)
	}
	return points
}
