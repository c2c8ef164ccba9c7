// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/lvandenberg/gotin/predicates"
)

// LocationKind classifies the result of Locate.
type LocationKind int

const (
	// LocEmpty means the mesh has no triangles yet (bootstrap phase).
	LocEmpty LocationKind = iota
	// LocTriangle means the query lies strictly inside a finite triangle.
	LocTriangle
	// LocGhost means the query lies outside the convex hull; Triangle is
	// the ghost triangle whose hull edge is visible from the query.
	LocGhost
	// LocEdge means the query lies, within tolerance, on the edge shared
	// by Triangle and its neighbour opposite ApexVertex.
	LocEdge
	// LocVertex means the query coincides, within tolerance, with an
	// existing vertex.
	LocVertex
)

// Location is the result of a point location query.
type Location struct {
	Kind LocationKind

	// Triangle is valid for LocTriangle, LocGhost and LocEdge.
	Triangle int
	// ApexVertex is valid for LocEdge: the edge lies opposite this vertex
	// within Triangle.
	ApexVertex int
	// Vertex is valid for LocVertex.
	Vertex int
}

// Locate finds the finite triangle, ghost triangle, edge or vertex
// containing q, using a stochastic jump-and-walk when jumpAndWalk is
// true and a plain walk from an arbitrary live triangle otherwise. tol is
// the 2D distance under which the query is snapped to a vertex or edge.
func (m *Mesh) Locate(q r2.Point, tol float64, jumpAndWalk bool) (Location, error) {
	if len(m.Triangles) == 0 {
		return Location{Kind: LocEmpty}, nil
	}
	start := m.seedTriangle(q, jumpAndWalk)
	if start < 0 {
		return Location{Kind: LocEmpty}, nil
	}
	return m.walk(start, q, tol)
}

func (m *Mesh) seedTriangle(q r2.Point, jumpAndWalk bool) int {
	if !jumpAndWalk {
		return m.anyLiveTriangle()
	}
	n := len(m.Triangles)
	samples := cubeRootSamples(m.numLiveTriangles)
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < samples; i++ {
		idx := m.rnd.Intn(n)
		if m.Triangles[idx].Removed {
			continue
		}
		d := m.centroid(idx).Sub(q).Norm()
		if d < bestDist {
			bestDist = d
			best = idx
		}
	}
	if best < 0 {
		return m.anyLiveTriangle()
	}
	return best
}

func cubeRootSamples(n int) int {
	s := int(math.Cbrt(float64(n)))
	if s < 1 {
		s = 1
	}
	return s
}

func (m *Mesh) anyLiveTriangle() int {
	for i := len(m.Triangles) - 1; i >= 0; i-- {
		if !m.Triangles[i].Removed {
			return i
		}
	}
	return -1
}

func (m *Mesh) centroid(t int) r2.Point {
	tri := m.Triangles[t]
	var sum r2.Point
	n := 0
	for _, v := range tri.V {
		if v != Infinite {
			sum = sum.Add(m.Pt(v))
			n++
		}
	}
	if n == 0 {
		return r2.Point{}
	}
	return sum.Mul(1.0 / float64(n))
}

// orientEdgeQuery returns the sign of orient2d(pt(a), pt(b), q), resolving
// the infinite vertex symbolically when a or b is Infinite.
func (m *Mesh) orientEdgeQuery(a, b int, q r2.Point) int {
	switch Infinite {
	case a:
		return orientInfSign(m.Pt(b), q)
	case b:
		return -orientInfSign(m.Pt(a), q)
	default:
		return predicates.Orient2D(m.Pt(a), m.Pt(b), q)
	}
}

// walk performs the monotone visibility walk from t toward q, guided by
// orientEdgeQuery. Stepping into a ghost triangle ends the walk at the
// hull: the query is either genuinely outside (LocGhost) or sent back
// inside through the hull edge, so the symbolic edges of the ghost fan
// are never themselves walked across.
func (m *Mesh) walk(t int, q r2.Point, tol float64) (Location, error) {
	maxSteps := 4*len(m.Triangles) + 64
	for step := 0; ; step++ {
		if step > maxSteps {
			return Location{}, fmt.Errorf("mesh: point location did not terminate")
		}
		tri := m.Triangles[t]

		if !tri.IsFinite() {
			loc, inside := m.classifyGhost(t, q)
			if !inside {
				return loc, nil
			}
			t = loc.Triangle
			continue
		}

		crossed := false
		for i := 0; i < 3; i++ {
			a := tri.V[(i+1)%3]
			b := tri.V[(i+2)%3]
			if m.orientEdgeQuery(a, b, q) < 0 {
				t = tri.N[i]
				crossed = true
				break
			}
		}
		if crossed {
			continue
		}

		if loc, ok := m.snapWithinTriangle(t, q, tol); ok {
			return loc, nil
		}
		return Location{Kind: LocTriangle, Triangle: t}, nil
	}
}

// classifyGhost decides, for a walk that reached ghost g, whether the
// query is outside the hull (inside=false, a LocGhost result) or should
// continue through the hull edge (inside=true, Triangle set to the
// finite neighbour across it).
func (m *Mesh) classifyGhost(g int, q r2.Point) (loc Location, inside bool) {
	tri := m.Triangles[g]
	hullStart, hullEnd := tri.V[1], tri.V[0]
	switch s := m.orientEdgeQuery(hullStart, hullEnd, q); {
	case s < 0:
		return Location{Kind: LocGhost, Triangle: g}, false
	case s > 0:
		return Location{Triangle: tri.N[2]}, true
	default:
		// On the supporting line of the hull edge: inside iff within the
		// segment itself.
		a, b := m.Pt(hullStart), m.Pt(hullEnd)
		ab := b.Sub(a)
		if denom := ab.Dot(ab); denom > 0 {
			if tt := q.Sub(a).Dot(ab) / denom; tt >= 0 && tt <= 1 {
				return Location{Triangle: tri.N[2]}, true
			}
		}
		return Location{Kind: LocGhost, Triangle: g}, false
	}
}

// snapWithinTriangle checks whether q coincides with or is within tol of
// one of t's vertices or edges, given that q is already known to lie
// inside finite triangle t. An exactly-on-edge query is reported as
// LocEdge even with a zero tolerance, so degenerate splits can never be
// attempted.
func (m *Mesh) snapWithinTriangle(t int, q r2.Point, tol float64) (Location, bool) {
	tri := m.Triangles[t]
	for _, v := range tri.V {
		p := m.Pt(v)
		if p == q || (tol > 0 && q.Sub(p).Norm() <= tol) {
			return Location{Kind: LocVertex, Vertex: v}, true
		}
	}
	for i := 0; i < 3; i++ {
		a := tri.V[(i+1)%3]
		b := tri.V[(i+2)%3]
		apex := tri.V[i]
		if m.orientEdgeQuery(a, b, q) == 0 || distancePointToSegment(q, m.Pt(a), m.Pt(b)) <= math.Max(tol, 0) {
			return Location{Kind: LocEdge, Triangle: t, ApexVertex: apex}, true
		}
	}
	return Location{}, false
}

func distancePointToSegment(q, a, b r2.Point) float64 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return q.Sub(a).Norm()
	}
	tt := q.Sub(a).Dot(ab) / denom
	if tt < 0 {
		tt = 0
	} else if tt > 1 {
		tt = 1
	}
	proj := a.Add(ab.Mul(tt))
	return q.Sub(proj).Norm()
}
