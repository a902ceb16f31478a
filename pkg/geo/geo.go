package geo

import "math"

// Point is a WGS 84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point carries usable coordinates. NaN, infinite
// and out-of-range values all fail; the zero point (0,0) is in the Gulf of
// Guinea and never a real stall location, so it is rejected too.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	if math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return false
	}
	return p.Lat != 0 || p.Lng != 0
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// BoundsFrom computes the bounding box over the valid points in the input.
// The second return value is the number of points included; zero means the
// bounds are meaningless and must not drive a camera move.
func BoundsFrom(points []Point) (Bounds, int) {
	b := Bounds{
		MinLat: math.MaxFloat64,
		MinLng: math.MaxFloat64,
		MaxLat: -math.MaxFloat64,
		MaxLng: -math.MaxFloat64,
	}
	count := 0
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		b.Extend(p)
		count++
	}
	if count == 0 {
		return Bounds{}, 0
	}
	return b, count
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p Point) {
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// IsPoint reports whether the bounds collapse to a single coordinate.
func (b Bounds) IsPoint() bool {
	return b.MinLat == b.MaxLat && b.MinLng == b.MaxLng
}

// Contains reports whether p falls inside the bounds (inclusive).
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Clamp pulls p onto the nearest edge of the bounds if it lies outside.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		Lat: clamp(p.Lat, b.MinLat, b.MaxLat),
		Lng: clamp(p.Lng, b.MinLng, b.MaxLng),
	}
}

// Clip pulls b inside limit: each corner is clamped onto limit, so the
// result (and its center) always lies within it. Bounds entirely outside
// limit collapse onto its nearest edge.
func (b Bounds) Clip(limit Bounds) Bounds {
	return Bounds{
		MinLat: clamp(b.MinLat, limit.MinLat, limit.MaxLat),
		MinLng: clamp(b.MinLng, limit.MinLng, limit.MaxLng),
		MaxLat: clamp(b.MaxLat, limit.MinLat, limit.MaxLat),
		MaxLng: clamp(b.MaxLng, limit.MinLng, limit.MaxLng),
	}
}

// Expand returns bounds grown by the given margins in degrees.
func (b Bounds) Expand(latMargin, lngMargin float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - latMargin,
		MinLng: b.MinLng - lngMargin,
		MaxLat: b.MaxLat + latMargin,
		MaxLng: b.MaxLng + lngMargin,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
