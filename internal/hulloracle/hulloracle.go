// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hulloracle computes the 2D convex hull of a planar point set by
// lifting it onto the paraboloid z = x^2 + y^2 and taking the 3D convex
// hull with quickhull-go/v2, so that property tests have an independent,
// non-incremental check of DT.ConvexHull().
package hulloracle

import (
	quickhull "github.com/markus-wa/quickhull-go/v2"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const defaultEps = 1e-12

// ConvexHull returns the CCW sequence of indices into pts that lie on
// their planar convex hull. It returns nil for fewer than 3 points.
func ConvexHull(pts []r2.Point) []int {
	if len(pts) < 3 {
		return nil
	}

	lifted := make([]r3.Vector, len(pts))
	for i, p := range pts {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, defaultEps)

	// The lower faces of the 3D hull (outward normal pointing down, away
	// from the upward-opening paraboloid) are exactly the Delaunay
	// triangles of pts. A kept face's stored winding projects clockwise
	// onto the plane, so the boundary edges of that face set, walked
	// against their stored direction, trace the planar convex hull CCW.
	type edge struct{ a, b int }
	directed := map[edge]bool{}
	for i := 0; i+2 < len(ch.Indices); i += 3 {
		a, b, c := ch.Indices[i], ch.Indices[i+1], ch.Indices[i+2]
		if faceNormalZ(lifted[a], lifted[b], lifted[c]) >= 0 {
			continue
		}
		directed[edge{a, b}] = true
		directed[edge{b, c}] = true
		directed[edge{c, a}] = true
	}

	next := map[int]int{}
	for e := range directed {
		if !directed[edge{e.b, e.a}] {
			next[e.b] = e.a
		}
	}
	if len(next) == 0 {
		return nil
	}

	var start int
	for a := range next {
		start = a
		break
	}
	hull := []int{start}
	for cur := next[start]; cur != start; cur = next[cur] {
		hull = append(hull, cur)
	}
	return hull
}

func faceNormalZ(a, b, c r3.Vector) float64 {
	u := b.Sub(a)
	v := c.Sub(a)
	return u.Cross(v).Z
}
