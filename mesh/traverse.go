// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import "github.com/golang/geo/r2"

// ConvexHull returns the finite vertex indices on the convex hull, in CCW
// order, by walking the ghost fan around the infinite vertex. It returns
// nil if the mesh has no triangles yet.
func (m *Mesh) ConvexHull() []int {
	start := m.vertexTriangle[Infinite]
	if start < 0 {
		return nil
	}
	var hull []int
	for cur := start; ; {
		hull = append(hull, m.Triangles[cur].V[1])
		cur = m.rotateCW(cur, Infinite)
		if cur == start {
			break
		}
	}
	return hull
}

// BBox returns the axis-aligned bounding box of all non-removed finite
// vertices. ok is false when no such vertex exists.
func (m *Mesh) BBox() (min, max r2.Point, ok bool) {
	for i := 1; i < len(m.Vertices); i++ {
		if m.Vertices[i].Removed {
			continue
		}
		p := m.Vertices[i].Pt
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, ok
}

// AdjacentVertices returns the CCW link of vertex i: the vertices of its
// incident triangles, immediately following i within each. The infinite
// vertex appears in the result when i is on the convex hull. It panics
// under the same conditions as IncidentTriangles.
func (m *Mesh) AdjacentVertices(i int) []int {
	incident := m.IncidentTriangles(i)
	link := make([]int, len(incident))
	for j, t := range incident {
		link[j] = m.Triangles[t].NextVertex(i)
	}
	return link
}

// NumTriangleSlots returns the total size of the triangle arena,
// including tombstones and ghosts; valid triangle indices for the other
// methods in this file are [0, NumTriangleSlots()).
func (m *Mesh) NumTriangleSlots() int { return len(m.Triangles) }

// IsTriangleRemoved reports whether triangle t has been tombstoned. It
// panics if t is out of range.
func (m *Mesh) IsTriangleRemoved(t int) bool {
	m.checkTriangleIndex(t)
	return m.Triangles[t].Removed
}

// TriangleVertices returns the three vertex indices of t in their stored
// CCW order. It panics if t is out of range.
func (m *Mesh) TriangleVertices(t int) [3]int {
	m.checkTriangleIndex(t)
	return m.Triangles[t].V
}

// AdjacentTriangles returns the three neighbour triangle indices of t, in
// the triangle's own edge order. It panics if t is out of range.
func (m *Mesh) AdjacentTriangles(t int) [3]int {
	m.checkTriangleIndex(t)
	return m.Triangles[t].N
}

// IsFiniteTriangle reports whether t is a finite triangle. It panics if t
// is out of range.
func (m *Mesh) IsFiniteTriangle(t int) bool {
	m.checkTriangleIndex(t)
	return m.Triangles[t].IsFinite()
}

// CollectGarbage compacts the vertex and triangle arenas, discarding every
// tombstone and remapping all surviving indices (the infinite vertex
// always keeps index 0). It returns, for each old vertex index, the new
// index it was assigned, or -1 if the vertex was removed. Callers holding
// vertex-keyed side tables (attribute columns) must remap them with the
// same table.
func (m *Mesh) CollectGarbage() []int {
	vertexRemap := make([]int, len(m.Vertices))
	newVertices := make([]Vertex, 0, m.numLiveVertices+1)
	newVertices = append(newVertices, m.Vertices[0])
	vertexRemap[0] = 0
	for old := 1; old < len(m.Vertices); old++ {
		if m.Vertices[old].Removed {
			vertexRemap[old] = -1
			continue
		}
		vertexRemap[old] = len(newVertices)
		newVertices = append(newVertices, m.Vertices[old])
	}

	triRemap := make([]int, len(m.Triangles))
	newTriangles := make([]Triangle, 0, m.numLiveTriangles)
	for old, t := range m.Triangles {
		if t.Removed {
			triRemap[old] = -1
			continue
		}
		triRemap[old] = len(newTriangles)
		nt := t
		nt.V[0] = vertexRemap[t.V[0]]
		nt.V[1] = vertexRemap[t.V[1]]
		nt.V[2] = vertexRemap[t.V[2]]
		newTriangles = append(newTriangles, nt)
	}
	for i := range newTriangles {
		for j := 0; j < 3; j++ {
			newTriangles[i].N[j] = triRemap[newTriangles[i].N[j]]
		}
	}

	newVertexTriangle := make([]int, len(newVertices))
	for old, nv := range vertexRemap {
		if nv < 0 {
			continue
		}
		ot := m.vertexTriangle[old]
		if ot < 0 {
			newVertexTriangle[nv] = -1
			continue
		}
		newVertexTriangle[nv] = triRemap[ot]
	}

	newBootstrap := make([]int, 0, len(m.bootstrap))
	for _, b := range m.bootstrap {
		if vertexRemap[b] >= 0 {
			newBootstrap = append(newBootstrap, vertexRemap[b])
		}
	}

	m.Vertices = newVertices
	m.Triangles = newTriangles
	m.vertexTriangle = newVertexTriangle
	m.bootstrap = newBootstrap
	return vertexRemap
}
