// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r2"
)

// Mesh is the arena of vertices and triangles that backs an incremental
// Delaunay triangulation. The zero value is not usable; construct one
// with New.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle

	// vertexTriangle[i] is the index of one triangle incident to vertex i,
	// used both as the entry point for CCW star traversal and as a seed
	// for the stochastic walk.
	vertexTriangle []int

	numLiveVertices  int
	numLiveTriangles int

	// bootstrap holds vertex indices inserted so far while no triangle
	// exists yet, because every vertex seen up to now has been exactly
	// collinear with the rest.
	bootstrap []int

	rnd *rand.Rand
}

// New returns an empty mesh with only the infinite vertex allocated.
func New(rnd *rand.Rand) *Mesh {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return &Mesh{
		Vertices:       []Vertex{{}}, // slot 0: the infinite vertex
		vertexTriangle: []int{-1},
		rnd:            rnd,
	}
}

// NumVertices returns the number of non-tombstoned finite vertices.
func (m *Mesh) NumVertices() int { return m.numLiveVertices }

// NumTriangles returns the number of non-tombstoned finite triangles.
func (m *Mesh) NumTriangles() int { return m.numLiveTriangles }

// HasGarbage reports whether any tombstoned vertex or triangle slot
// remains in the arenas.
func (m *Mesh) HasGarbage() bool {
	if m.numLiveVertices != len(m.Vertices)-1 {
		return true
	}
	if m.numLiveTriangles != m.countFiniteSlots() {
		return true
	}
	return false
}

func (m *Mesh) countFiniteSlots() int {
	n := 0
	for _, t := range m.Triangles {
		if !t.Removed && t.IsFinite() {
			n++
		}
	}
	return n
}

// AllocVertex appends a new finite vertex and returns its index.
func (m *Mesh) AllocVertex(pt r2.Point, z float64) int {
	m.Vertices = append(m.Vertices, Vertex{Pt: pt, Z: z})
	m.vertexTriangle = append(m.vertexTriangle, -1)
	m.numLiveVertices++
	return len(m.Vertices) - 1
}

// IsVertexRemoved reports whether vertex i has been tombstoned. It
// panics if i is out of range.
func (m *Mesh) IsVertexRemoved(i int) bool {
	m.checkVertexIndex(i)
	return m.Vertices[i].Removed
}

func (m *Mesh) checkVertexIndex(i int) {
	if i < 0 || i >= len(m.Vertices) {
		panic(fmt.Sprintf("mesh: vertex index %d out of range [0, %d)", i, len(m.Vertices)))
	}
}

func (m *Mesh) checkTriangleIndex(t int) {
	if t < 0 || t >= len(m.Triangles) {
		panic(fmt.Sprintf("mesh: triangle index %d out of range [0, %d)", t, len(m.Triangles)))
	}
}

// Pt returns the planar coordinates of vertex i. It panics for the
// infinite vertex or an out-of-range index; callers must check IsFinite
// semantics before calling.
func (m *Mesh) Pt(i int) r2.Point {
	m.checkVertexIndex(i)
	if i == Infinite {
		panic("mesh: Pt: vertex 0 is the infinite vertex")
	}
	return m.Vertices[i].Pt
}

// Z returns the elevation of vertex i. It panics for the infinite vertex
// or an out-of-range index.
func (m *Mesh) Z(i int) float64 {
	m.checkVertexIndex(i)
	if i == Infinite {
		panic("mesh: Z: vertex 0 is the infinite vertex")
	}
	return m.Vertices[i].Z
}

// SetZ overwrites the elevation of vertex i. It panics for the infinite
// vertex or an out-of-range index.
func (m *Mesh) SetZ(i int, z float64) {
	m.checkVertexIndex(i)
	if i == Infinite {
		panic("mesh: SetZ: vertex 0 is the infinite vertex")
	}
	m.Vertices[i].Z = z
}

// setTriangle overwrites the content of an existing slot (a flip, a
// triangle/edge split reusing one of its two input slots, or a ghost
// triangle turning finite on exterior insertion) and records idx as an
// incident triangle for each of its vertices. The live-triangle counter
// is adjusted for the finiteness of the old and new content; it must not
// be used to allocate a brand new slot, since it never Removed-flags
// a slot it replaces.
func (m *Mesh) setTriangle(idx int, tri Triangle) {
	old := m.Triangles[idx]
	if !old.Removed && old.IsFinite() {
		m.numLiveTriangles--
	}
	m.Triangles[idx] = tri
	if !tri.Removed && tri.IsFinite() {
		m.numLiveTriangles++
	}
	for _, v := range tri.V {
		m.vertexTriangle[v] = idx
	}
}

// allocTriangle appends tri and returns its new index, updating the live
// finite-triangle counter and vertex->triangle pointers. A zero-valued
// placeholder (filled in later through setTriangle) updates no pointer.
func (m *Mesh) allocTriangle(tri Triangle) int {
	idx := len(m.Triangles)
	m.Triangles = append(m.Triangles, tri)
	if tri.V != ([3]int{}) {
		for _, v := range tri.V {
			m.vertexTriangle[v] = idx
		}
	}
	if tri.IsFinite() {
		m.numLiveTriangles++
	}
	return idx
}

// removeTriangle tombstones a triangle slot.
func (m *Mesh) removeTriangle(idx int) {
	tri := &m.Triangles[idx]
	if tri.Removed {
		return
	}
	if tri.IsFinite() {
		m.numLiveTriangles--
	}
	tri.Removed = true
}

// linkNeighbor sets t's neighbour across the edge opposite local vertex
// index li to other, and does NOT touch other's own neighbour slot;
// callers are expected to call this twice (once per triangle) to restore
// the symmetry invariant.
func (m *Mesh) linkNeighbor(t, li, other int) {
	m.Triangles[t].N[li] = other
}

// rotateCCW returns the triangle obtained by pivoting around vertex v
// from t to the next triangle in CCW order: it crosses the edge
// (v, PrevVertex(v)). Around the infinite vertex this steps the ghost
// fan against the hull's CCW order (a CCW turn around the hull is a CW
// turn around the point at infinity).
func (m *Mesh) rotateCCW(t, v int) int {
	tri := &m.Triangles[t]
	li := tri.IndexOf(v)
	if li < 0 {
		panic("mesh: rotateCCW: vertex not in triangle")
	}
	return tri.N[(li+1)%3]
}

// rotateCW returns the triangle obtained by pivoting around vertex v from
// t to the previous triangle in CCW order: it crosses the edge
// (v, NextVertex(v)). Around the infinite vertex this steps the ghost
// fan along the hull's CCW order.
func (m *Mesh) rotateCW(t, v int) int {
	tri := &m.Triangles[t]
	li := tri.IndexOf(v)
	if li < 0 {
		panic("mesh: rotateCW: vertex not in triangle")
	}
	return tri.N[(li+2)%3]
}

// IncidentTriangles returns, in CCW order, the indices of all triangles
// (finite or ghost) incident to vertex v. It panics if v is out of range
// or has no incident triangle yet (bootstrap phase).
func (m *Mesh) IncidentTriangles(v int) []int {
	m.checkVertexIndex(v)
	start := m.vertexTriangle[v]
	if start < 0 {
		panic(fmt.Sprintf("mesh: vertex %d has no incident triangles yet", v))
	}
	result := []int{start}
	for cur := m.rotateCCW(start, v); cur != start; cur = m.rotateCCW(cur, v) {
		result = append(result, cur)
	}
	return result
}
