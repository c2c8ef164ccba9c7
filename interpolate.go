// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package gotin

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"

	"github.com/lvandenberg/gotin/mesh"
)

// Method selects the scattered-data interpolation algorithm used by
// Interpolate.
type Method int

const (
	MethodNN Method = iota
	MethodTIN
	MethodLaplace
	MethodNNI
	MethodIDW
)

// String returns a short label for m.
func (m Method) String() string {
	switch m {
	case MethodNN:
		return "NN"
	case MethodTIN:
		return "TIN"
	case MethodLaplace:
		return "Laplace"
	case MethodNNI:
		return "NNI"
	case MethodIDW:
		return "IDW"
	default:
		return "unknown"
	}
}

// InterpolateConfig configures a call to Interpolate or InterpolateOne.
// Radius and Power are only consulted by MethodIDW.
type InterpolateConfig struct {
	Method Method
	Radius float64
	Power  float64
}

// Interpolate estimates z at each of locations using config.Method. A
// query outside the convex hull, or issued against a mesh with no
// triangles yet, yields NaN for that location unless strict is true, in
// which case the first such failure is returned as a fatal error for the
// whole batch. A query that coincides with an existing vertex returns
// that vertex's z exactly.
func (d *DT) Interpolate(config InterpolateConfig, locations []r2.Point, strict bool) ([]float64, error) {
	out := make([]float64, len(locations))
	for i, loc := range locations {
		z, err := d.interpolateOne(config, loc)
		if err != nil {
			if strict {
				return nil, err
			}
			out[i] = math.NaN()
			continue
		}
		out[i] = z
	}
	return out, nil
}

// InterpolateOne estimates z at a single query location with the same
// per-query rules as Interpolate. A query that Interpolate would report
// as NaN yields NaN together with the error that Interpolate returns
// under strict.
func (d *DT) InterpolateOne(config InterpolateConfig, loc r2.Point) (float64, error) {
	return d.interpolateOne(config, loc)
}

func (d *DT) interpolateOne(config InterpolateConfig, loc r2.Point) (float64, error) {
	if d.mesh.NumTriangles() == 0 {
		return math.NaN(), newErrorf("Interpolate", EmptyMesh, "mesh has no triangles yet")
	}
	l, err := d.mesh.Locate(loc, d.snapTolerance, d.jumpAndWalk)
	if err != nil {
		return math.NaN(), newError("Interpolate", EmptyMesh, err)
	}
	switch l.Kind {
	case mesh.LocVertex:
		return d.mesh.Z(l.Vertex), nil
	case mesh.LocEmpty, mesh.LocGhost:
		return math.NaN(), newErrorf("Interpolate", EmptyMesh, "query lies outside the convex hull")
	}

	switch config.Method {
	case MethodNN:
		return d.interpolateNN(l, loc)
	case MethodTIN:
		return d.interpolateTIN(l, loc)
	case MethodLaplace:
		return d.interpolateLaplace(l, loc)
	case MethodNNI:
		return d.interpolateNNI(l, loc)
	case MethodIDW:
		return d.interpolateIDW(loc, config.Radius, config.Power)
	default:
		return math.NaN(), newErrorf("Interpolate", InvalidInput, "unknown interpolation method %v", config.Method)
	}
}

func (d *DT) locationTriangleVertices(l mesh.Location) [3]int {
	return d.mesh.TriangleVertices(l.Triangle)
}

// interpolateNN returns the z of the nearest of the containing
// triangle's three vertices.
func (d *DT) interpolateNN(l mesh.Location, pt r2.Point) (float64, error) {
	v := d.locationTriangleVertices(l)
	best := v[0]
	bestDist := pt.Sub(d.mesh.Pt(v[0])).Norm()
	for _, c := range v[1:] {
		dist := pt.Sub(d.mesh.Pt(c)).Norm()
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return d.mesh.Z(best), nil
}

// interpolateTIN computes the exact barycentric combination of the
// containing triangle's three vertices.
func (d *DT) interpolateTIN(l mesh.Location, pt r2.Point) (float64, error) {
	v := d.locationTriangleVertices(l)
	pa, pb, pc := d.mesh.Pt(v[0]), d.mesh.Pt(v[1]), d.mesh.Pt(v[2])
	wa, wb, wc := barycentric(pa, pb, pc, pt)
	za, zb, zc := d.mesh.Z(v[0]), d.mesh.Z(v[1]), d.mesh.Z(v[2])
	return wa*za + wb*zb + wc*zc, nil
}

func barycentric(a, b, c, p r2.Point) (wa, wb, wc float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	wb = (d11*d20 - d01*d21) / denom
	wc = (d00*d21 - d01*d20) / denom
	wa = 1 - wb - wc
	return
}

// interpolateLaplace weights each natural neighbour by the length of the
// Voronoi edge q would share with it, divided by the distance to it,
// computed from the circumcenters of the virtual fan (q, p_i, p_{i+1})
// around q without ever mutating the mesh.
func (d *DT) interpolateLaplace(l mesh.Location, pt r2.Point) (float64, error) {
	boundary, _ := d.mesh.NaturalNeighborCavity(pt, l.Triangle)
	if len(boundary) < 3 {
		return math.NaN(), newErrorf("Interpolate", EmptyMesh, "natural neighbour cavity is degenerate")
	}
	k := len(boundary)
	circ := make([]r2.Point, k)
	for i := 0; i < k; i++ {
		circ[i] = d.mesh.VirtualCircumcenter(pt, boundary[i], boundary[(i+1)%k])
	}
	weights := make([]float64, k)
	zs := make([]float64, k)
	for i, p := range boundary {
		prev := (i - 1 + k) % k
		dist := pt.Sub(d.mesh.Pt(p)).Norm()
		if dist == 0 {
			return d.mesh.Z(p), nil
		}
		weights[i] = circ[prev].Sub(circ[i]).Norm() / dist
		zs[i] = d.mesh.Z(p)
	}
	return weightedAverage(weights, zs)
}

// interpolateNNI implements Sibson's natural-neighbour interpolation by
// comparing, for each natural neighbour p_i, the area its Voronoi cell
// would lose to q's new cell: the polygon bounded by the two new virtual
// circumcenters flanking p_i and the circumcenters of the existing
// cavity triangles incident to p_i.
func (d *DT) interpolateNNI(l mesh.Location, pt r2.Point) (float64, error) {
	boundary, cavity := d.mesh.NaturalNeighborCavity(pt, l.Triangle)
	if len(boundary) < 3 {
		return math.NaN(), newErrorf("Interpolate", EmptyMesh, "natural neighbour cavity is degenerate")
	}
	k := len(boundary)
	inCavity := make(map[int]bool, len(cavity))
	for _, t := range cavity {
		inCavity[t] = true
	}
	newCirc := make([]r2.Point, k)
	for i := 0; i < k; i++ {
		newCirc[i] = d.mesh.VirtualCircumcenter(pt, boundary[i], boundary[(i+1)%k])
	}

	weights := make([]float64, k)
	zs := make([]float64, k)
	for i, p := range boundary {
		if pt.Sub(d.mesh.Pt(p)).Norm() == 0 {
			return d.mesh.Z(p), nil
		}
		prev := (i - 1 + k) % k
		poly := []r2.Point{newCirc[prev]}
		// The cavity triangles incident to p form one contiguous arc of
		// its CCW star, but IncidentTriangles starts at an arbitrary
		// triangle; rotate to the start of the arc so the circumcenters
		// trace the stolen region's boundary in order.
		star := d.mesh.IncidentTriangles(p)
		m := len(star)
		start := 0
		for j := 0; j < m; j++ {
			if !inCavity[star[j]] && inCavity[star[(j+1)%m]] {
				start = (j + 1) % m
				break
			}
		}
		for j := 0; j < m; j++ {
			t := star[(start+j)%m]
			if !inCavity[t] {
				break
			}
			v := d.mesh.TriangleVertices(t)
			poly = append(poly, d.mesh.Circumcenter(v[0], v[1], v[2]))
		}
		poly = append(poly, newCirc[i])
		weights[i] = math.Abs(shoelaceArea(poly))
		zs[i] = d.mesh.Z(p)
	}
	return weightedAverage(weights, zs)
}

func shoelaceArea(poly []r2.Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum / 2
}

// interpolateIDW applies inverse-distance weighting over every finite
// vertex within radius (or every finite vertex, if radius <= 0).
func (d *DT) interpolateIDW(pt r2.Point, radius, power float64) (float64, error) {
	if power <= 0 {
		return math.NaN(), newErrorf("Interpolate", InvalidInput, "IDW power must be positive, got %v", power)
	}
	var weights, zs []float64
	for i := 1; i < len(d.mesh.Vertices); i++ {
		vtx := d.mesh.Vertices[i]
		if vtx.Removed {
			continue
		}
		dist := pt.Sub(vtx.Pt).Norm()
		if radius > 0 && dist > radius {
			continue
		}
		if dist == 0 {
			return vtx.Z, nil
		}
		weights = append(weights, 1/math.Pow(dist, power))
		zs = append(zs, vtx.Z)
	}
	if len(weights) == 0 {
		return math.NaN(), nil
	}
	return weightedAverage(weights, zs)
}

// weightedAverage returns Σw·z / Σw, or NaN if the weights sum to zero.
func weightedAverage(weights, zs []float64) (float64, error) {
	sum := floats.Sum(weights)
	if sum == 0 {
		return math.NaN(), nil
	}
	scaled := append([]float64(nil), weights...)
	floats.Scale(1/sum, scaled)
	return floats.Dot(scaled, zs), nil
}
