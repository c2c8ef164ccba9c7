// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"github.com/golang/geo/r2"
	"github.com/lvandenberg/gotin/predicates"
)

// Circumcenter returns the centre of the circle through finite vertices
// a, b, c.
func (m *Mesh) Circumcenter(a, b, c int) r2.Point {
	pa, pb, pc := m.Pt(a), m.Pt(b), m.Pt(c)
	return circumcenterOfPoints(pa, pb, pc)
}

func circumcenterOfPoints(pa, pb, pc r2.Point) r2.Point {
	ax, ay := pa.X, pa.Y
	bx, by := pb.X, pb.Y
	cx, cy := pc.X, pc.Y
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d
	return r2.Point{X: ux, Y: uy}
}

// VirtualCircumcenter returns the circumcenter of the triangle formed by
// an arbitrary query point q and two finite mesh vertices a, b, without
// requiring q to be an actual vertex. It is the Voronoi vertex that
// inserting q would create between its natural neighbours a and b, used
// by Laplace and NNI interpolation.
func (m *Mesh) VirtualCircumcenter(q r2.Point, a, b int) r2.Point {
	return circumcenterOfPoints(q, m.Pt(a), m.Pt(b))
}

// NaturalNeighborCavity computes, without mutating the mesh, the set of
// finite triangles whose circumcircle strictly contains q — the
// Bowyer-Watson cavity that a real insertion of q would replace — by
// flood-filling from seed, plus the CCW-ordered boundary vertices of
// that cavity (q's natural neighbours for Laplace/NNI interpolation).
// seed must be a finite triangle already known to contain q (typically
// the result of Locate).
func (m *Mesh) NaturalNeighborCavity(q r2.Point, seed int) (boundary []int, cavity []int) {
	inCavity := map[int]bool{}
	stack := []int{seed}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inCavity[t] {
			continue
		}
		tri := m.Triangles[t]
		if tri.Removed || !tri.IsFinite() {
			continue
		}
		if predicates.InCircle(m.Pt(tri.V[0]), m.Pt(tri.V[1]), m.Pt(tri.V[2]), q) <= 0 {
			continue
		}
		inCavity[t] = true
		cavity = append(cavity, t)
		for _, n := range tri.N {
			if !inCavity[n] {
				stack = append(stack, n)
			}
		}
	}
	if len(cavity) == 0 {
		return nil, nil
	}

	// Every cavity-boundary directed edge (a -> b) has a unique outgoing
	// vertex a; chaining next[a] = b around traces the CCW boundary
	// polygon, since the cavity is a simply-connected patch of a planar
	// triangulation.
	next := make(map[int]int, len(cavity)*3)
	for t := range inCavity {
		tri := m.Triangles[t]
		for li := 0; li < 3; li++ {
			if inCavity[tri.N[li]] {
				continue
			}
			a := tri.V[(li+1)%3]
			b := tri.V[(li+2)%3]
			next[a] = b
		}
	}
	var start int
	for a := range next {
		start = a
		break
	}
	for cur := start; ; {
		boundary = append(boundary, cur)
		cur = next[cur]
		if cur == start {
			break
		}
	}
	return boundary, cavity
}
