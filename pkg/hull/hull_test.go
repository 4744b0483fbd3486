package hull

import (
	"math/rand/v2"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestPolygon(t *testing.T) {
	tests := []struct {
		name   string
		points []r2.Vec
		want   []r2.Vec
	}{
		{"Empty", nil, nil},
		{"Single", []r2.Vec{{X: 1, Y: 2}}, []r2.Vec{{X: 1, Y: 2}}},
		{"Duplicates", []r2.Vec{{X: 1, Y: 2}, {X: 1, Y: 2}}, []r2.Vec{{X: 1, Y: 2}}},
		{
			"Square",
			[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0.5, Y: 0.5}},
			[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		},
		{
			"CollinearEdge",
			[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}},
			[]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}},
		},
		{
			"AllCollinear",
			[]r2.Vec{{X: 2, Y: 2}, {X: 0, Y: 0}, {X: 1, Y: 1}},
			[]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polygon(tt.points)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Polygon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOf(t *testing.T) {
	if got := Of([]r2.Vec{{X: 3, Y: 3}}); got != nil {
		t.Errorf("Of(single) = %v, want nil", got)
	}

	a, b := r2.Vec{X: 0, Y: 0}, r2.Vec{X: 4, Y: 0}
	got := Of([]r2.Vec{b, a})
	want := []Segment{{From: a, To: b}, {From: b, To: a}}
	if !slices.Equal(got, want) {
		t.Errorf("Of(two) = %v, want %v", got, want)
	}

	tri := Of([]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}})
	if len(tri) != 3 {
		t.Fatalf("Of(triangle) has %d segments, want 3", len(tri))
	}
	for i, s := range tri {
		if next := tri[(i+1)%len(tri)]; s.To != next.From {
			t.Errorf("segment %d ends at %v, next starts at %v", i, s.To, next.From)
		}
	}
}

func TestContainsAllInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := range 20 {
		pts := make([]r2.Vec, 50)
		for i := range pts {
			pts[i] = r2.Vec{X: rng.Float64() * 400, Y: rng.Float64() * 300}
		}
		poly := Polygon(pts)
		for _, p := range pts {
			if !Contains(poly, p) {
				t.Fatalf("trial %d: point %v outside its own hull %v", trial, p, poly)
			}
		}
	}
}

func TestContains(t *testing.T) {
	square := Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}})
	segment := Polygon([]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}})
	tests := []struct {
		name string
		poly []r2.Vec
		p    r2.Vec
		want bool
	}{
		{"Inside", square, r2.Vec{X: 1, Y: 1}, true},
		{"OnEdge", square, r2.Vec{X: 2, Y: 1}, true},
		{"Vertex", square, r2.Vec{X: 0, Y: 0}, true},
		{"Outside", square, r2.Vec{X: 3, Y: 1}, false},
		{"OnSegment", segment, r2.Vec{X: 1, Y: 0}, true},
		{"BeyondSegment", segment, r2.Vec{X: 3, Y: 0}, false},
		{"OffSegment", segment, r2.Vec{X: 1, Y: 1}, false},
		{"EmptyPolygon", nil, r2.Vec{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.poly, tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
