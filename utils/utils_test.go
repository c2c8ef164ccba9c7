// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateRandomPoints_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateRandomPoints(tt.cnt, 100, tt.seed)
			if len(points) != tt.cnt {
				t.Errorf("GenerateRandomPoints(%v, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(points), tt.cnt)
			}
		})
	}
}

func TestGenerateRandomPoints_WithinBounds(t *testing.T) {
	const (
		cnt  = 100
		side = 50.0
		seed = 0
	)
	points := GenerateRandomPoints(cnt, side, seed)
	for i, p := range points {
		if p.X < 0 || p.X > side || p.Y < 0 || p.Y > side || p.Z < 0 || p.Z > side {
			t.Errorf("GenerateRandomPoints(%v, %v, %v)[%d] = %v, want within [0, %v]^3",
				cnt, side, seed, i, p, side)
		}
	}
}

func TestGenerateRandomPoints_Determinism(t *testing.T) {
	const (
		cnt  = 10
		side = 10.0
		seed = 0
	)
	a := GenerateRandomPoints(cnt, side, seed)
	b := GenerateRandomPoints(cnt, side, seed)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomPoints(%v, %v, %v) mismatch (-want +got):\n%v", cnt, side, seed, diff)
	}
}

func TestGenerateRandomPlanarPoints_WithinBounds(t *testing.T) {
	const (
		cnt  = 100
		side = 20.0
		seed = 7
	)
	points := GenerateRandomPlanarPoints(cnt, side, seed)
	if len(points) != cnt {
		t.Fatalf("GenerateRandomPlanarPoints(%v, %v, %v) len = %v, want %v", cnt, side, seed, len(points), cnt)
	}
	for i, p := range points {
		if p.X < 0 || p.X > side || p.Y < 0 || p.Y > side {
			t.Errorf("GenerateRandomPlanarPoints(%v, %v, %v)[%d] = %v, want within [0, %v]^2",
				cnt, side, seed, i, p, side)
		}
	}
}
