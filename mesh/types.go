// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package mesh implements the dynamic triangle-mesh arena underlying an
// incremental 2.5-D Delaunay triangulation: vertex and triangle storage,
// the infinite-vertex/ghost-triangle convention, the stochastic-walk point
// locator, star-based insertion with Lawson flipping, and link-polygon
// deletion. It knows nothing about per-vertex attributes, duplicate
// policy, or interpolation; those live one layer up, in the root gotin
// package.
package mesh

import "github.com/golang/geo/r2"

// Infinite is the reserved vertex index for the symbolic infinite vertex.
// Index 0 is always allocated and never finite; any access to its (x, y)
// is geometrically undefined.
const Infinite = 0

// Vertex is one slot of the vertex arena. Index 0 is the infinite vertex
// and carries no meaningful Pt/Z.
type Vertex struct {
	Pt      r2.Point
	Z       float64
	Removed bool
}

// Triangle is one slot of the triangle arena: three CCW vertex indices and
// the three neighbour triangle indices, N[i] being the neighbour across
// the edge opposite V[i] (i.e. the edge (V[(i+1)%3], V[(i+2)%3])).
// A triangle with any V[i] == Infinite is a ghost triangle.
type Triangle struct {
	V       [3]int
	N       [3]int
	Removed bool
}

// IsFinite reports whether none of the triangle's vertices is the
// infinite vertex.
func (t Triangle) IsFinite() bool {
	return t.V[0] != Infinite && t.V[1] != Infinite && t.V[2] != Infinite
}

// IndexOf returns the local index (0, 1 or 2) of v within the triangle,
// or -1 if v is not one of its vertices.
func (t Triangle) IndexOf(v int) int {
	for i, vi := range t.V {
		if vi == v {
			return i
		}
	}
	return -1
}

// NextVertex returns the vertex following v in CCW order within the
// triangle. It panics if v is not part of the triangle.
func (t Triangle) NextVertex(v int) int {
	i := t.IndexOf(v)
	if i < 0 {
		panic("mesh: NextVertex: vertex not in triangle")
	}
	return t.V[(i+1)%3]
}

// PrevVertex returns the vertex preceding v in CCW order within the
// triangle. It panics if v is not part of the triangle.
func (t Triangle) PrevVertex(v int) int {
	i := t.IndexOf(v)
	if i < 0 {
		panic("mesh: PrevVertex: vertex not in triangle")
	}
	return t.V[(i+2)%3]
}
