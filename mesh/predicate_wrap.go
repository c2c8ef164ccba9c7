// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"github.com/golang/geo/r2"
	"github.com/lvandenberg/gotin/predicates"
)

// orient returns the sign of orient2d(a, b, c), resolving the infinite
// vertex symbolically: it is treated as lying "above" every finite point
// under a fixed lexicographic tiebreak, so the three predicates agree
// with each other under cyclic rotation and transposition of arguments
// exactly as the finite predicate does.
func (m *Mesh) orient(a, b, c int) int {
	switch Infinite {
	case a:
		return orientInfSign(m.Pt(b), m.Pt(c))
	case b:
		return -orientInfSign(m.Pt(a), m.Pt(c))
	case c:
		return orientInfSign(m.Pt(a), m.Pt(b))
	default:
		return predicates.Orient2D(m.Pt(a), m.Pt(b), m.Pt(c))
	}
}

// orientInfSign is the sign of orient2d(p, q, infinite-vertex). Any
// consistent total order works for the symbolic perturbation; this one
// breaks ties by comparing p and q lexicographically.
func orientInfSign(p, q r2.Point) int {
	if p.X != q.X {
		if p.X < q.X {
			return 1
		}
		return -1
	}
	if p.Y != q.Y {
		if p.Y < q.Y {
			return 1
		}
		return -1
	}
	return 0
}

// inCircle returns the sign of incircle(a, b, c, d), positive when d lies
// inside the circumcircle of the CCW triangle (a, b, c). Whenever the
// infinite vertex participates — on the shared edge or as either
// opposite apex — the edge in question borders the convex hull or the
// ghost fan around the infinite vertex, and is never a Lawson-flip
// candidate: the symbolic predicate simply reports it as legal. Hull
// changes from an exterior insertion, or hull re-stitching on removal,
// are handled explicitly rather than through this test.
func (m *Mesh) inCircle(a, b, c, d int) int {
	if a == Infinite || b == Infinite || c == Infinite || d == Infinite {
		return -1
	}
	return predicates.InCircle(m.Pt(a), m.Pt(b), m.Pt(c), m.Pt(d))
}

// Orient exposes the symbolic orientation predicate for the vertex
// triple (a, b, c) to callers outside the package.
func (m *Mesh) Orient(a, b, c int) int { return m.orient(a, b, c) }
