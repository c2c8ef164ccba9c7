// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package gotin implements an incremental 2.5-D Delaunay triangulation
// engine over a planar point set augmented with a per-vertex elevation,
// exposing insertion, removal, point location, topological traversal,
// scattered-data interpolation and several export formats for the
// resulting triangular irregular network.
package gotin

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/lvandenberg/gotin/mesh"
)

// DuplicatesPolicy selects which z value wins when a newly inserted 2D
// point snaps onto an existing vertex.
type DuplicatesPolicy int

const (
	First DuplicatesPolicy = iota
	Last
	Highest
	Lowest
)

// String returns a short label for p.
func (p DuplicatesPolicy) String() string {
	switch p {
	case First:
		return "First"
	case Last:
		return "Last"
	case Highest:
		return "Highest"
	case Lowest:
		return "Lowest"
	default:
		return "unknown"
	}
}

// InsertStrategy selects how DT.Insert seeds a batch of points.
type InsertStrategy int

const (
	// AsIsStrategy inserts points one by one in the given order.
	AsIsStrategy InsertStrategy = iota
	// BBoxStrategy first inserts the four corners of an enlarged
	// bounding box as sentinel finite vertices, then inserts the rest.
	BBoxStrategy
)

// String returns a short label for s.
func (s InsertStrategy) String() string {
	switch s {
	case AsIsStrategy:
		return "AsIs"
	case BBoxStrategy:
		return "BBox"
	default:
		return "unknown"
	}
}

// bboxPadding enlarges the bounding box used by BBoxStrategy by 10% of
// its extent, with a floor of 1.0 unit for degenerate extents.
const bboxPadding = 0.10

const defaultSnapTolerance = 1e-3

// DTOptions holds DT configuration validated eagerly by DTOption setters.
type DTOptions struct {
	SnapTolerance      float64
	DuplicatesHandling DuplicatesPolicy
	JumpAndWalk        bool
}

// DTOption is a functional option for NewDT.
type DTOption func(*DTOptions) error

// WithSnapTolerance sets the 2D distance under which a new point is
// considered coincident with an existing vertex. It must be non-negative.
func WithSnapTolerance(tol float64) DTOption {
	return func(o *DTOptions) error {
		if tol < 0 {
			return newErrorf("WithSnapTolerance", InvalidInput, "snap tolerance must be non-negative, got %v", tol)
		}
		o.SnapTolerance = tol
		return nil
	}
}

// WithDuplicatesHandling sets the policy selecting which z wins when a
// point snaps onto an existing vertex.
func WithDuplicatesHandling(p DuplicatesPolicy) DTOption {
	return func(o *DTOptions) error {
		switch p {
		case First, Last, Highest, Lowest:
		default:
			return newErrorf("WithDuplicatesHandling", InvalidInput, "unknown duplicates handling policy %v", p)
		}
		o.DuplicatesHandling = p
		return nil
	}
}

// WithJumpAndWalk toggles the stochastic seed sampling used by the
// locator; when false, the walk always starts from an arbitrary live
// triangle.
func WithJumpAndWalk(enabled bool) DTOption {
	return func(o *DTOptions) error {
		o.JumpAndWalk = enabled
		return nil
	}
}

// DT is an incremental 2.5-D Delaunay triangulation / TIN engine. The
// zero value is not usable; construct one with NewDT.
type DT struct {
	mesh  *mesh.Mesh
	attrs *attributeStore

	snapTolerance      float64
	duplicatesHandling DuplicatesPolicy
	jumpAndWalk        bool
}

// NewDT creates an empty DT with the given attribute schema (pass
// AttributeSchema{} for none) and applies opts in order, validating each
// eagerly.
func NewDT(schema AttributeSchema, opts ...DTOption) (*DT, error) {
	cfg := DTOptions{
		SnapTolerance:      defaultSnapTolerance,
		DuplicatesHandling: First,
		JumpAndWalk:        true,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &DT{
		mesh:               mesh.New(nil),
		attrs:              newAttributeStore(schema),
		snapTolerance:      cfg.SnapTolerance,
		duplicatesHandling: cfg.DuplicatesHandling,
		jumpAndWalk:        cfg.JumpAndWalk,
	}, nil
}

// SnapTolerance returns the current 2D snap distance.
func (d *DT) SnapTolerance() float64 { return d.snapTolerance }

// SetSnapTolerance updates the 2D snap distance; it must be non-negative.
func (d *DT) SetSnapTolerance(tol float64) error {
	if tol < 0 {
		return newErrorf("SetSnapTolerance", InvalidInput, "snap tolerance must be non-negative, got %v", tol)
	}
	d.snapTolerance = tol
	return nil
}

// DuplicatesHandling returns the current duplicate z-resolution policy.
func (d *DT) DuplicatesHandling() DuplicatesPolicy { return d.duplicatesHandling }

// SetDuplicatesHandling updates the duplicate z-resolution policy.
func (d *DT) SetDuplicatesHandling(p DuplicatesPolicy) error {
	switch p {
	case First, Last, Highest, Lowest:
	default:
		return newErrorf("SetDuplicatesHandling", InvalidInput, "unknown duplicates handling policy %v", p)
	}
	d.duplicatesHandling = p
	return nil
}

// JumpAndWalk reports whether the locator uses stochastic seed sampling.
func (d *DT) JumpAndWalk() bool { return d.jumpAndWalk }

// SetJumpAndWalk toggles the locator's stochastic seed sampling.
func (d *DT) SetJumpAndWalk(enabled bool) { d.jumpAndWalk = enabled }

// checkFiniteVertex validates that i addresses a real, finite vertex
// slot (it does not check for removal).
func (d *DT) checkFiniteVertex(op string, i int) error {
	if i == mesh.Infinite {
		return newErrorf(op, InfiniteVertex, "vertex 0 is the infinite vertex")
	}
	return d.checkVertexRange(op, i)
}

// checkVertexRange validates that i addresses an allocated vertex slot,
// the infinite vertex included; topology queries accept vertex 0 even
// though point access does not.
func (d *DT) checkVertexRange(op string, i int) error {
	if i < 0 || i >= len(d.mesh.Vertices) {
		return newErrorf(op, OutOfRange, "vertex index %d out of range [0, %d)", i, len(d.mesh.Vertices))
	}
	return nil
}

// InsertOnePt inserts (pt, z) with an optional attribute row (nil for
// none). If pt snaps onto an existing vertex (it locates exactly onto
// one, or falls within SnapTolerance of one of the vertices bounding its
// located triangle, edge or hull gap), no new vertex is created: the
// duplicates-handling policy decides whether z is updated, and attrs (if
// given) are merged into the existing row. It returns the resulting
// vertex index, whether a new vertex was created, and whether z was
// updated on an existing vertex.
func (d *DT) InsertOnePt(pt r2.Point, z float64, attrs map[string]any) (int, bool, bool, error) {
	if existing, ok := d.findSnapCandidate(pt); ok {
		zUpdated := d.applyDuplicatePolicy(existing, z)
		if attrs != nil {
			d.attrs.setRow(existing, attrs)
		}
		return existing, false, zUpdated, nil
	}

	idx := d.mesh.Insert(pt, z, d.snapTolerance, d.jumpAndWalk)
	d.attrs.growTo(idx + 1)
	if attrs != nil {
		d.attrs.setRow(idx, attrs)
	}
	return idx, true, false, nil
}

// findSnapCandidate looks for an existing vertex within SnapTolerance of
// pt, using the locator to avoid a full scan once the mesh has
// triangles. During the bootstrap phase (no triangles yet) it scans the
// small set of vertices seen so far directly.
func (d *DT) findSnapCandidate(pt r2.Point) (int, bool) {
	if d.mesh.NumTriangles() == 0 {
		best := -1
		bestDist := d.snapTolerance
		for i := 1; i < len(d.mesh.Vertices); i++ {
			if d.mesh.Vertices[i].Removed {
				continue
			}
			dist := pt.Sub(d.mesh.Vertices[i].Pt).Norm()
			if dist <= bestDist {
				bestDist = dist
				best = i
			}
		}
		return best, best >= 0
	}

	loc, err := d.mesh.Locate(pt, d.snapTolerance, d.jumpAndWalk)
	if err != nil {
		return -1, false
	}
	switch loc.Kind {
	case mesh.LocVertex:
		return loc.Vertex, true
	case mesh.LocTriangle, mesh.LocEdge:
		return d.nearestOf(d.triangleVerticesOf(loc.Triangle), pt)
	case mesh.LocGhost:
		return d.nearestOf(d.hullVerticesOf(loc.Triangle), pt)
	default:
		return -1, false
	}
}

func (d *DT) triangleVerticesOf(t int) []int {
	v := d.mesh.TriangleVertices(t)
	return []int{v[0], v[1], v[2]}
}

func (d *DT) hullVerticesOf(g int) []int {
	v := d.mesh.TriangleVertices(g)
	return []int{v[0], v[1]} // a ghost triangle's first two vertices are the hull edge; the third is Infinite
}

// nearestOf returns the candidate whose coordinates are closest to pt,
// provided that distance does not exceed SnapTolerance.
func (d *DT) nearestOf(candidates []int, pt r2.Point) (int, bool) {
	best := -1
	bestDist := d.snapTolerance
	for _, v := range candidates {
		if v == mesh.Infinite {
			continue
		}
		dist := pt.Sub(d.mesh.Vertices[v].Pt).Norm()
		if dist <= bestDist {
			bestDist = dist
			best = v
		}
	}
	return best, best >= 0
}

// applyDuplicatePolicy resolves the z value for an existing vertex
// against a newly submitted duplicate z, returning whether it changed
// the stored value.
func (d *DT) applyDuplicatePolicy(existing int, z float64) bool {
	switch d.duplicatesHandling {
	case Last:
		d.mesh.SetZ(existing, z)
		return true
	case Highest:
		if z > d.mesh.Z(existing) {
			d.mesh.SetZ(existing, z)
			return true
		}
		return false
	case Lowest:
		if z < d.mesh.Z(existing) {
			d.mesh.SetZ(existing, z)
			return true
		}
		return false
	default: // First
		return false
	}
}

// Insert bulk-inserts pts (x, y, z) using strategy. BBoxStrategy first
// inserts the four corners of an enlarged bounding box as sentinel
// finite vertices to accelerate location of the remaining points; the
// engine keeps these sentinels afterward.
func (d *DT) Insert(pts []r3.Vector, strategy InsertStrategy) error {
	if strategy == BBoxStrategy {
		d.insertBBoxSentinels(pts)
	}
	for _, p := range pts {
		if _, _, _, err := d.InsertOnePt(r2.Point{X: p.X, Y: p.Y}, p.Z, nil); err != nil {
			return err
		}
	}
	return nil
}

func (d *DT) insertBBoxSentinels(pts []r3.Vector) {
	if len(pts) == 0 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	padX := (maxX - minX) * bboxPadding
	if padX < 1.0 {
		padX = 1.0
	}
	padY := (maxY - minY) * bboxPadding
	if padY < 1.0 {
		padY = 1.0
	}
	corners := []r2.Point{
		{X: minX - padX, Y: minY - padY},
		{X: maxX + padX, Y: minY - padY},
		{X: maxX + padX, Y: maxY + padY},
		{X: minX - padX, Y: maxY + padY},
	}
	for _, c := range corners {
		d.InsertOnePt(c, 0, nil)
	}
}

// Remove deletes vertex i, retriangulating its link polygon.
func (d *DT) Remove(i int) error {
	if i == mesh.Infinite {
		return newErrorf("Remove", InfiniteVertex, "cannot remove the infinite vertex")
	}
	if i < 0 || i >= len(d.mesh.Vertices) {
		return newErrorf("Remove", OutOfRange, "vertex index %d out of range [0, %d)", i, len(d.mesh.Vertices))
	}
	if d.mesh.IsVertexRemoved(i) {
		return newErrorf("Remove", OutOfRange, "vertex %d is already removed", i)
	}
	if err := d.mesh.Remove(i); err != nil {
		return newError("Remove", OutOfRange, err)
	}
	return nil
}

// CollectGarbage compacts the vertex and triangle arenas, remapping the
// attribute store alongside the mesh so that vertex-keyed rows stay
// aligned with their vertex. It invalidates every previously returned
// vertex index.
func (d *DT) CollectGarbage() {
	remap := d.mesh.CollectGarbage()
	newCols := make([][]any, len(d.attrs.columns))
	newPresent := make([][]bool, len(d.attrs.present))
	for fi := range d.attrs.columns {
		newCols[fi] = make([]any, len(d.mesh.Vertices))
		newPresent[fi] = make([]bool, len(d.mesh.Vertices))
		for old, nv := range remap {
			if nv < 0 || old >= len(d.attrs.columns[fi]) {
				continue
			}
			newCols[fi][nv] = d.attrs.columns[fi][old]
			newPresent[fi][nv] = d.attrs.present[fi][old]
		}
	}
	d.attrs.columns = newCols
	d.attrs.present = newPresent
}
