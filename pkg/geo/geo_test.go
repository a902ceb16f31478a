package geo

import (
	"math"
	"testing"
)

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{name: "taipei", point: Point{Lat: 25.0880, Lng: 121.5252}, want: true},
		{name: "zero", point: Point{}, want: false},
		{name: "nan lat", point: Point{Lat: math.NaN(), Lng: 121.5}, want: false},
		{name: "nan lng", point: Point{Lat: 25.0, Lng: math.NaN()}, want: false},
		{name: "inf", point: Point{Lat: math.Inf(1), Lng: 121.5}, want: false},
		{name: "lat out of range", point: Point{Lat: 91, Lng: 121.5}, want: false},
		{name: "lng out of range", point: Point{Lat: 25, Lng: 181}, want: false},
		{name: "southern hemisphere", point: Point{Lat: -36.8, Lng: 174.7}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.Valid(); got != tt.want {
				t.Fatalf("Valid(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestBoundsFromFiltersInvalid(t *testing.T) {
	points := []Point{
		{Lat: 25.0880, Lng: 121.5252},
		{Lat: math.NaN(), Lng: 121.5},
		{Lat: 25.0510, Lng: 121.5770},
		{},
	}

	b, n := BoundsFrom(points)
	if n != 2 {
		t.Fatalf("expected 2 valid points, got %d", n)
	}
	if b.MinLat != 25.0510 || b.MaxLat != 25.0880 {
		t.Fatalf("unexpected lat bounds %+v", b)
	}
	if b.MinLng != 121.5252 || b.MaxLng != 121.5770 {
		t.Fatalf("unexpected lng bounds %+v", b)
	}
}

func TestBoundsFromEmpty(t *testing.T) {
	if _, n := BoundsFrom(nil); n != 0 {
		t.Fatalf("expected zero count for nil input, got %d", n)
	}
	if _, n := BoundsFrom([]Point{{}, {Lat: math.NaN(), Lng: math.NaN()}}); n != 0 {
		t.Fatalf("expected zero count when every point is invalid, got %d", n)
	}
}

func TestBoundsSinglePointCollapses(t *testing.T) {
	b, n := BoundsFrom([]Point{{Lat: 25.0880, Lng: 121.5252}})
	if n != 1 {
		t.Fatalf("expected 1 point, got %d", n)
	}
	if !b.IsPoint() {
		t.Fatalf("single point bounds should collapse: %+v", b)
	}
	c := b.Center()
	if c.Lat != 25.0880 || c.Lng != 121.5252 {
		t.Fatalf("unexpected center %+v", c)
	}
}

func TestBoundsClamp(t *testing.T) {
	taiwan := Bounds{MinLat: 21.5, MinLng: 119.5, MaxLat: 25.5, MaxLng: 122.5}

	inside := Point{Lat: 25.0, Lng: 121.5}
	if got := taiwan.Clamp(inside); got != inside {
		t.Fatalf("inside point should be untouched, got %+v", got)
	}

	outside := Point{Lat: 35.6, Lng: 139.7}
	got := taiwan.Clamp(outside)
	if got.Lat != 25.5 || got.Lng != 122.5 {
		t.Fatalf("expected clamp to the NE corner, got %+v", got)
	}
	if !taiwan.Contains(got) {
		t.Fatal("clamped point must lie inside the bounds")
	}
}

func TestBoundsClip(t *testing.T) {
	taiwan := Bounds{MinLat: 21.5, MinLng: 119.5, MaxLat: 25.5, MaxLng: 122.5}

	inside := Bounds{MinLat: 24.5, MinLng: 121.0, MaxLat: 25.2, MaxLng: 121.9}
	if got := inside.Clip(taiwan); got != inside {
		t.Fatalf("inside bounds should be untouched, got %+v", got)
	}

	straddling := Bounds{MinLat: 25.0, MinLng: 121.0, MaxLat: 35.7, MaxLng: 139.7}
	got := straddling.Clip(taiwan)
	if got.MaxLat != 25.5 || got.MaxLng != 122.5 {
		t.Fatalf("expected overflow corner pulled in, got %+v", got)
	}
	if got.MinLat != 25.0 || got.MinLng != 121.0 {
		t.Fatalf("expected interior corner untouched, got %+v", got)
	}
	if !taiwan.Contains(got.Center()) {
		t.Fatal("clipped center must lie inside the limit")
	}

	disjoint := Bounds{MinLat: 34.6, MinLng: 135.5, MaxLat: 35.7, MaxLng: 139.7}
	got = disjoint.Clip(taiwan)
	if !got.IsPoint() {
		t.Fatalf("disjoint bounds should collapse onto the edge, got %+v", got)
	}
	if !taiwan.Contains(got.Center()) {
		t.Fatal("collapsed bounds must sit on the limit")
	}
}

func TestBoundsExpand(t *testing.T) {
	b := Bounds{MinLat: 21.5, MinLng: 119.5, MaxLat: 25.5, MaxLng: 122.5}
	e := b.Expand(1, 2)
	if e.MinLat != 20.5 || e.MaxLat != 26.5 || e.MinLng != 117.5 || e.MaxLng != 124.5 {
		t.Fatalf("unexpected expanded bounds %+v", e)
	}
}
