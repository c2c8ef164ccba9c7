// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package gotin

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/lvandenberg/gotin/mesh"
)

// NumberOfVertices returns the number of non-tombstoned finite vertices.
func (d *DT) NumberOfVertices() int { return d.mesh.NumVertices() }

// NumberOfTriangles returns the number of non-tombstoned finite
// triangles.
func (d *DT) NumberOfTriangles() int { return d.mesh.NumTriangles() }

// Points returns a dense snapshot of every vertex's coordinates and
// elevation, including tombstoned slots; row 0 holds the infinite
// vertex's sentinel values (+Inf, +Inf, +Inf). The mesh retains no
// reference to the returned slice.
func (d *DT) Points() []r3.Vector {
	out := make([]r3.Vector, len(d.mesh.Vertices))
	out[0] = r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	for i := 1; i < len(d.mesh.Vertices); i++ {
		v := d.mesh.Vertices[i]
		out[i] = r3.Vector{X: v.Pt.X, Y: v.Pt.Y, Z: v.Z}
	}
	return out
}

// Triangle is a dense, exported view of one finite triangle's vertex
// indices, returned by the Triangles snapshot.
type Triangle struct {
	A, B, C int
}

// Triangles returns a dense snapshot of the finite triangles currently
// in the mesh (ghosts and tombstones excluded). The mesh retains no
// reference to the returned slice.
func (d *DT) Triangles() []Triangle {
	var out []Triangle
	for t := 0; t < d.mesh.NumTriangleSlots(); t++ {
		if !d.mesh.IsFiniteTriangle(t) || d.mesh.IsTriangleRemoved(t) {
			continue
		}
		v := d.mesh.TriangleVertices(t)
		out = append(out, Triangle{A: v[0], B: v[1], C: v[2]})
	}
	return out
}

// GetPoint returns the (x, y, z) of vertex i. It fails with
// InfiniteVertex for i == 0, and OutOfRange for any other invalid or
// removed index.
func (d *DT) GetPoint(i int) (r3.Vector, error) {
	if err := d.checkFiniteVertex("GetPoint", i); err != nil {
		return r3.Vector{}, err
	}
	if d.mesh.IsVertexRemoved(i) {
		return r3.Vector{}, newErrorf("GetPoint", OutOfRange, "vertex %d is removed", i)
	}
	p := d.mesh.Pt(i)
	return r3.Vector{X: p.X, Y: p.Y, Z: d.mesh.Z(i)}, nil
}

// GetBBox returns the axis-aligned bounding box of the finite vertices,
// as an r2.Rect built from r1.Interval per axis. ok is false when the
// mesh has no finite vertex yet.
func (d *DT) GetBBox() (r2.Rect, bool) {
	min, max, ok := d.mesh.BBox()
	if !ok {
		return r2.Rect{X: r1.Interval{Lo: math.Inf(1), Hi: math.Inf(-1)}, Y: r1.Interval{Lo: math.Inf(1), Hi: math.Inf(-1)}}, false
	}
	return r2.Rect{
		X: r1.Interval{Lo: min.X, Hi: max.X},
		Y: r1.Interval{Lo: min.Y, Hi: max.Y},
	}, true
}

// ConvexHull returns the CCW sequence of finite vertex indices on the
// hull; empty if fewer than three non-collinear finite vertices exist.
func (d *DT) ConvexHull() []int {
	return d.mesh.ConvexHull()
}

// IsInsideConvexHull reports whether (pt) lies inside or on the convex
// hull of the current finite vertex set.
func (d *DT) IsInsideConvexHull(pt r2.Point) bool {
	loc, err := d.mesh.Locate(pt, 0, d.jumpAndWalk)
	if err != nil {
		return false
	}
	switch loc.Kind {
	case mesh.LocTriangle, mesh.LocVertex, mesh.LocEdge:
		return true
	default:
		return false
	}
}

// IsVertexConvexHull reports whether vertex i is on the convex hull.
func (d *DT) IsVertexConvexHull(i int) bool {
	for _, h := range d.mesh.ConvexHull() {
		if h == i {
			return true
		}
	}
	return false
}

// IsTriangle reports whether (a, b, c) forms a triangle currently
// present in the mesh, in any rotation of the given vertex order. Ghost
// triangles count: naming the infinite vertex matches the ghost fanning
// the corresponding hull edge.
func (d *DT) IsTriangle(a, b, c int) bool {
	for t := 0; t < d.mesh.NumTriangleSlots(); t++ {
		if d.mesh.IsTriangleRemoved(t) {
			continue
		}
		v := d.mesh.TriangleVertices(t)
		if sameTriangleVertices(v, a, b, c) {
			return true
		}
	}
	return false
}

func sameTriangleVertices(v [3]int, a, b, c int) bool {
	for shift := 0; shift < 3; shift++ {
		if v[shift%3] == a && v[(shift+1)%3] == b && v[(shift+2)%3] == c {
			return true
		}
	}
	return false
}

// IsFinite reports whether triangle t is finite (none of its vertices is
// the infinite vertex). It fails with OutOfRange if t is invalid.
func (d *DT) IsFinite(t int) (bool, error) {
	if t < 0 || t >= d.mesh.NumTriangleSlots() {
		return false, newErrorf("IsFinite", OutOfRange, "triangle index %d out of range", t)
	}
	return d.mesh.IsFiniteTriangle(t), nil
}

// IsVertexRemoved reports whether vertex i has been tombstoned. It fails
// with InfiniteVertex for i == 0, and OutOfRange for any other invalid
// index.
func (d *DT) IsVertexRemoved(i int) (bool, error) {
	if err := d.checkFiniteVertex("IsVertexRemoved", i); err != nil {
		return false, err
	}
	return d.mesh.IsVertexRemoved(i), nil
}

// HasGarbage reports whether any tombstoned vertex or triangle slot
// remains in the arenas.
func (d *DT) HasGarbage() bool { return d.mesh.HasGarbage() }

// IncidentTrianglesToVertex returns, in CCW order, the triangles
// incident to vertex i (ghosts included when i is on the hull). The
// infinite vertex is a valid argument: its incident triangles are the
// ghost fan tiling the hull exterior. It fails with OutOfRange for an
// invalid, removed, or not-yet-triangulated index.
func (d *DT) IncidentTrianglesToVertex(i int) ([]int, error) {
	if err := d.checkVertexRange("IncidentTrianglesToVertex", i); err != nil {
		return nil, err
	}
	if d.mesh.IsVertexRemoved(i) {
		return nil, newErrorf("IncidentTrianglesToVertex", OutOfRange, "vertex %d is removed", i)
	}
	return d.safeIncident(i)
}

func (d *DT) safeIncident(i int) (result []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newErrorf("IncidentTrianglesToVertex", OutOfRange, "vertex %d has no incident triangles yet", i)
		}
	}()
	return d.mesh.IncidentTriangles(i), nil
}

// AdjacentTrianglesToTriangle returns the three neighbours of t in edge
// order. It fails with OutOfRange if t is invalid.
func (d *DT) AdjacentTrianglesToTriangle(t int) ([3]int, error) {
	if t < 0 || t >= d.mesh.NumTriangleSlots() {
		return [3]int{}, newErrorf("AdjacentTrianglesToTriangle", OutOfRange, "triangle index %d out of range", t)
	}
	return d.mesh.AdjacentTriangles(t), nil
}

// AdjacentVerticesToVertex returns the CCW link vertices of i (the
// infinite vertex included when i is on the hull). Like
// IncidentTrianglesToVertex, it accepts the infinite vertex itself, whose
// link is the convex hull. It fails with OutOfRange for an invalid,
// removed, or not-yet-triangulated index.
func (d *DT) AdjacentVerticesToVertex(i int) ([]int, error) {
	if err := d.checkVertexRange("AdjacentVerticesToVertex", i); err != nil {
		return nil, err
	}
	if d.mesh.IsVertexRemoved(i) {
		return nil, newErrorf("AdjacentVerticesToVertex", OutOfRange, "vertex %d is removed", i)
	}
	return d.safeAdjacentVertices(i)
}

func (d *DT) safeAdjacentVertices(i int) (result []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newErrorf("AdjacentVerticesToVertex", OutOfRange, "vertex %d has no incident triangles yet", i)
		}
	}()
	return d.mesh.AdjacentVertices(i), nil
}

// Locate is the public handle to the stochastic walk locator.
func (d *DT) Locate(pt r2.Point) (mesh.Location, error) {
	return d.mesh.Locate(pt, d.snapTolerance, d.jumpAndWalk)
}

// VerticalExaggeration multiplies every finite vertex's z by k;
// attributes are left untouched.
func (d *DT) VerticalExaggeration(k float64) {
	for i := 1; i < len(d.mesh.Vertices); i++ {
		if d.mesh.Vertices[i].Removed {
			continue
		}
		d.mesh.SetZ(i, d.mesh.Z(i)*k)
	}
}

// UpdateVertexZValue replaces the z of vertex i. It returns false if i is
// the infinite vertex, out of range, or removed.
func (d *DT) UpdateVertexZValue(i int, z float64) bool {
	if i == mesh.Infinite || i < 0 || i >= len(d.mesh.Vertices) {
		return false
	}
	if d.mesh.IsVertexRemoved(i) {
		return false
	}
	d.mesh.SetZ(i, z)
	return true
}

// Normal returns the area-weighted average of the unit normals of i's
// incident finite triangles. It fails with InfiniteVertex for i == 0,
// OutOfRange for an invalid, removed, or untriangulated index, and
// EmptyMesh if i has no finite incident triangle.
func (d *DT) Normal(i int) (r3.Vector, error) {
	if err := d.checkFiniteVertex("Normal", i); err != nil {
		return r3.Vector{}, err
	}
	if d.mesh.IsVertexRemoved(i) {
		return r3.Vector{}, newErrorf("Normal", OutOfRange, "vertex %d is removed", i)
	}
	incident, err := d.safeIncident(i)
	if err != nil {
		return r3.Vector{}, newErrorf("Normal", OutOfRange, "vertex %d has no incident triangles yet", i)
	}

	sum := r3.Vector{}
	count := 0
	for _, t := range incident {
		if !d.mesh.IsFiniteTriangle(t) {
			continue
		}
		v := d.mesh.TriangleVertices(t)
		n, area, ok := d.triangleNormalArea(v)
		if !ok {
			continue
		}
		sum = sum.Add(n.Mul(area))
		count++
	}
	if count == 0 {
		return r3.Vector{}, newErrorf("Normal", EmptyMesh, "vertex %d has no finite incident triangle", i)
	}
	if sum.Norm() == 0 {
		return r3.Vector{}, nil
	}
	return sum.Normalize(), nil
}

func (d *DT) triangleNormalArea(v [3]int) (r3.Vector, float64, bool) {
	a3, erra := d.GetPoint(v[0])
	b3, errb := d.GetPoint(v[1])
	c3, errc := d.GetPoint(v[2])
	if erra != nil || errb != nil || errc != nil {
		return r3.Vector{}, 0, false
	}
	u := b3.Sub(a3)
	w := c3.Sub(a3)
	cross := u.Cross(w)
	area := cross.Norm() / 2
	if area == 0 {
		return r3.Vector{}, 0, false
	}
	return cross.Normalize(), area, true
}
