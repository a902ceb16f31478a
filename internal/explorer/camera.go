package explorer

import "github.com/formosafoodlab/nightmarket-atlas/pkg/geo"

// Zoom policy. Browsing markets keeps the camera wide; once a market is
// selected in vendors mode the camera drops low enough that individual
// stalls separate visually.
const (
	MinZoom = 7.0
	MaxZoom = 18.0

	// MarketFocusZoom is used when a market is selected while browsing
	// markets.
	MarketFocusZoom = 14.0
	// StallFocusZoom is used when a market is selected in vendors mode.
	StallFocusZoom = 16.0
	// VendorFocusZoom is used when a single vendor is selected.
	VendorFocusZoom = 17.0
	// SinglePointZoom replaces a degenerate one-point bounding box.
	SinglePointZoom = 14.0
	// FitZoomCeiling caps how far a bounds fit may zoom in.
	FitZoomCeiling = 15.0
	// RefitSkipZoom is the hysteresis threshold: when the camera is
	// already zoomed past it, vendors-mode bounds refits are skipped to
	// avoid churn on every collection refresh.
	RefitSkipZoom = 12.0
)

// TaiwanBounds is the home region the explorer presents.
var TaiwanBounds = geo.Bounds{
	MinLat: 21.5,
	MinLng: 119.5,
	MaxLat: 25.5,
	MaxLng: 122.5,
}

// panMargin is how far outside the home region the camera center may stray.
const panMargin = 1.0

// CameraAction distinguishes the two camera command shapes.
type CameraAction string

const (
	ActionEase      CameraAction = "ease"
	ActionFitBounds CameraAction = "fitBounds"
)

// CameraCommand is one camera movement request. Seq increases monotonically;
// a command with a higher Seq supersedes any in-flight animation, so the
// surface cancels the old movement instead of queueing behind it.
type CameraCommand struct {
	Seq     uint64
	Action  CameraAction
	Center  geo.Point
	Zoom    float64
	Bounds  geo.Bounds
	MaxZoom float64
}

// cameraController mints camera commands and tracks the zoom the camera was
// last told to reach (fed back by the surface via ReportZoom when the user
// pans or zooms by hand).
type cameraController struct {
	seq     uint64
	zoom    float64
	hasZoom bool
}

func (c *cameraController) nextSeq() uint64 {
	c.seq++
	return c.seq
}

func (c *cameraController) reportZoom(zoom float64) {
	c.zoom = zoom
	c.hasZoom = true
}

// zoomAbove reports whether the camera is known to sit above the threshold.
func (c *cameraController) zoomAbove(threshold float64) bool {
	return c.hasZoom && c.zoom > threshold
}

// ease builds a clamped ease command toward a single point.
func (c *cameraController) ease(target geo.Point, zoom float64) CameraCommand {
	zoom = clampZoom(zoom)
	c.reportZoom(zoom)
	return CameraCommand{
		Seq:    c.nextSeq(),
		Action: ActionEase,
		Center: TaiwanBounds.Expand(panMargin, panMargin).Clamp(target),
		Zoom:   zoom,
	}
}

// fit builds a bounds-fit command capped at the fit ceiling. The bounds are
// clipped into the expanded home region so the implied center obeys the same
// limit ease enforces. The resulting zoom depends on the bounds extent, so
// the tracked zoom becomes unknown until the surface reports it back.
func (c *cameraController) fit(bounds geo.Bounds) CameraCommand {
	c.hasZoom = false
	return CameraCommand{
		Seq:     c.nextSeq(),
		Action:  ActionFitBounds,
		Bounds:  bounds.Clip(TaiwanBounds.Expand(panMargin, panMargin)),
		MaxZoom: FitZoomCeiling,
	}
}

func clampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
