// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating random planar
// point sets used by property tests and benchmarks of the triangulation
// engine.
package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// GenerateRandomPoints generates cnt random (x, y, z) samples inside the
// axis-aligned square [0, side] x [0, side], with z drawn from the same
// range. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, side float64, seed int64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	pts := make([]r3.Vector, cnt)

	for i := range cnt {
		pts[i] = r3.Vector{
			X: random.Float64() * side,
			Y: random.Float64() * side,
			Z: random.Float64() * side,
		}
	}

	return pts
}

// GenerateRandomPlanarPoints generates cnt random 2D samples inside the
// axis-aligned square [0, side] x [0, side], for callers that only need
// planar coordinates (e.g. the convex hull oracle).
func GenerateRandomPlanarPoints(cnt int, side float64, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	pts := make([]r2.Point, cnt)

	for i := range cnt {
		pts[i] = r2.Point{X: random.Float64() * side, Y: random.Float64() * side}
	}

	return pts
}
