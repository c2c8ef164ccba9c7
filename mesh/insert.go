// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import "github.com/golang/geo/r2"

// flipCandidate names an edge to re-examine during Lawson legalization:
// the edge of Tri opposite Apex.
type flipCandidate struct {
	tri  int
	apex int
}

// Insert adds a new vertex at pt/z into the mesh and returns its index.
// Callers are responsible for duplicate/snap detection before calling
// Insert; the mesh itself always creates a genuinely new vertex.
//
// During the bootstrap phase (fewer than 3 non-collinear vertices seen
// so far), the vertex is appended and, if it breaks collinearity,
// triggers construction of the first triangle and the ghost fan around
// it; any previously accumulated collinear vertices are then threaded
// back in one at a time through the general insertion path.
func (m *Mesh) Insert(pt r2.Point, z float64, tol float64, jumpAndWalk bool) int {
	v := m.AllocVertex(pt, z)
	if len(m.Triangles) == 0 {
		m.bootstrap = append(m.bootstrap, v)
		m.tryCompleteBootstrap()
		return v
	}
	loc, err := m.Locate(pt, tol, jumpAndWalk)
	if err != nil {
		panic("mesh: Insert: " + err.Error())
	}
	m.insertAt(loc, v)
	return v
}

// tryCompleteBootstrap checks whether the accumulated bootstrap vertices
// are still exactly collinear; once a third, non-collinear vertex has
// been seen it builds the first triangle from the last two bootstrap
// points plus the new one, then re-inserts any earlier bootstrap points
// through the general insertion path (they are, by construction, outside
// or on the boundary of that first triangle).
func (m *Mesh) tryCompleteBootstrap() {
	n := len(m.bootstrap)
	if n < 3 {
		return
	}
	a, b, c := m.bootstrap[n-3], m.bootstrap[n-2], m.bootstrap[n-1]
	if m.orient(a, b, c) == 0 {
		return
	}
	rest := append([]int(nil), m.bootstrap[:n-3]...)
	m.bootstrap = nil
	m.completeBootstrap(a, b, c)
	for _, old := range rest {
		loc, err := m.Locate(m.Pt(old), 0, false)
		if err != nil {
			panic("mesh: bootstrap re-insertion: " + err.Error())
		}
		m.insertAt(loc, old)
	}
}

// completeBootstrap builds the first finite triangle from three
// non-collinear vertices (fixing CCW order if necessary) together with
// the three ghost triangles fanning around the infinite vertex.
func (m *Mesh) completeBootstrap(a, b, c int) {
	if m.orient(a, b, c) < 0 {
		b, c = c, b
	}
	t0 := m.allocTriangle(Triangle{V: [3]int{a, b, c}})
	hull := []int{a, b, c}
	inner := []int{t0, t0, t0}
	innerSlot := []int{2, 0, 1}
	m.buildGhostFan(hull, inner, innerSlot)
}

// buildGhostFan creates ghost triangles for the CCW hull cycle hull
// (length >= 3) and links each one to its two neighbouring ghosts around
// the infinite vertex and to the finite triangle across its hull edge.
// innerNeighbor[i] is the finite triangle across hull edge (hull[i],
// hull[(i+1)%k]); innerSlot[i] is the local index within that triangle
// opposite that edge, which gets pointed at the new ghost.
func (m *Mesh) buildGhostFan(hull, innerNeighbor, innerSlot []int) []int {
	k := len(hull)
	ghosts := make([]int, k)
	for i := 0; i < k; i++ {
		next := hull[(i+1)%k]
		ghosts[i] = m.allocTriangle(Triangle{V: [3]int{next, hull[i], Infinite}})
	}
	for i := 0; i < k; i++ {
		prev := (i - 1 + k) % k
		succ := (i + 1) % k
		g := &m.Triangles[ghosts[i]]
		g.N[0] = ghosts[prev]
		g.N[1] = ghosts[succ]
		g.N[2] = innerNeighbor[i]
		m.Triangles[innerNeighbor[i]].N[innerSlot[i]] = ghosts[i]
		m.vertexTriangle[hull[i]] = ghosts[i]
	}
	m.vertexTriangle[Infinite] = ghosts[0]
	return ghosts
}

// retarget finds the neighbour slot in triangle ext that currently points
// at oldSlot and repoints it at newSlot.
func (m *Mesh) retarget(ext, oldSlot, newSlot int) {
	tri := &m.Triangles[ext]
	for i, n := range tri.N {
		if n == oldSlot {
			tri.N[i] = newSlot
			return
		}
	}
}

// adjacentApex returns, for triangle t and one of its vertices apex, the
// neighbour across the edge opposite apex, that edge's two vertices in
// t's own cyclic order, and the neighbour's own apex vertex (the vertex
// not on the shared edge).
func (m *Mesh) adjacentApex(t, apex int) (other, a, b, otherApex int) {
	tri := m.Triangles[t]
	li := tri.IndexOf(apex)
	other = tri.N[li]
	a = tri.V[(li+1)%3]
	b = tri.V[(li+2)%3]
	oth := m.Triangles[other]
	oli := oth.IndexOf(otherApexFrom(oth, t))
	otherApex = oth.V[oli]
	return
}

func otherApexFrom(oth Triangle, t int) int {
	for i, n := range oth.N {
		if n == t {
			return oth.V[i]
		}
	}
	panic("mesh: adjacentApex: neighbour link is not symmetric")
}

func (m *Mesh) insertAt(loc Location, v int) {
	switch loc.Kind {
	case LocTriangle:
		m.legalize(m.splitTriangleInsert(loc.Triangle, v))
	case LocEdge:
		m.legalize(m.splitEdgeInsert(loc.Triangle, loc.ApexVertex, v))
	case LocGhost:
		m.legalize(m.insertOutsideHull(loc.Triangle, m.Pt(v), v))
	case LocVertex, LocEmpty:
		panic("mesh: insertAt: caller must resolve vertex coincidence and bootstrap before calling Insert")
	}
}

// splitTriangleInsert splits the finite triangle t into three by
// connecting v, already allocated, to each of t's vertices. t's own slot
// is reused for one of the three; two new slots are allocated for the
// rest.
func (m *Mesh) splitTriangleInsert(t, v int) []flipCandidate {
	tri := m.Triangles[t]
	a, b, c := tri.V[0], tri.V[1], tri.V[2]
	extBC, extCA, extAB := tri.N[0], tri.N[1], tri.N[2]

	t2 := m.allocTriangle(Triangle{})
	t3 := m.allocTriangle(Triangle{})

	m.setTriangle(t, Triangle{V: [3]int{a, b, v}, N: [3]int{t2, t3, extAB}})
	m.setTriangle(t2, Triangle{V: [3]int{b, c, v}, N: [3]int{t3, t, extBC}})
	m.setTriangle(t3, Triangle{V: [3]int{c, a, v}, N: [3]int{t, t2, extCA}})

	m.retarget(extBC, t, t2)
	m.retarget(extCA, t, t3)

	return []flipCandidate{{t, v}, {t2, v}, {t3, v}}
}

// splitEdgeInsert splits the two triangles sharing the edge opposite apex
// within t into four, connecting v (which lies on that edge) to all four
// surrounding vertices.
func (m *Mesh) splitEdgeInsert(t, apex, v int) []flipCandidate {
	r := apex
	otherIdx, a, b, s := m.adjacentApex(t, r)

	tri := m.Triangles[t]
	li := tri.IndexOf(r)
	extRA := tri.N[(li+2)%3]
	extBR := tri.N[(li+1)%3]

	oth := m.Triangles[otherIdx]
	oli := oth.IndexOf(s)
	extSB := oth.N[(oli+2)%3]
	extAS := oth.N[(oli+1)%3]

	t2 := m.allocTriangle(Triangle{})
	t4 := m.allocTriangle(Triangle{})

	m.setTriangle(t, Triangle{V: [3]int{r, a, v}, N: [3]int{t4, t2, extRA}})
	m.setTriangle(t2, Triangle{V: [3]int{r, v, b}, N: [3]int{otherIdx, extBR, t}})
	if s == Infinite {
		// A hull edge: keep both ghosts in the (hull edge end, hull edge
		// start, Infinite) layout the ghost fan relies on.
		m.setTriangle(otherIdx, Triangle{V: [3]int{b, v, s}, N: [3]int{t4, extSB, t2}})
		m.setTriangle(t4, Triangle{V: [3]int{v, a, s}, N: [3]int{extAS, otherIdx, t}})
	} else {
		m.setTriangle(otherIdx, Triangle{V: [3]int{s, b, v}, N: [3]int{t2, t4, extSB}})
		m.setTriangle(t4, Triangle{V: [3]int{s, v, a}, N: [3]int{t, extAS, otherIdx}})
	}

	m.retarget(extBR, t, t2)
	m.retarget(extAS, otherIdx, t4)

	return []flipCandidate{{t, v}, {t2, v}, {otherIdx, v}, {t4, v}}
}

// insertOutsideHull connects v to every hull edge strictly visible from
// q, turning those ghost triangles finite and growing two new ghost
// triangles at the ends of the fan. g0 is the ghost triangle the locator
// landed in; its own hull edge may be only collinearly visible, so the
// strictly visible arc is searched for starting there.
func (m *Mesh) insertOutsideHull(g0 int, q r2.Point, v int) []flipCandidate {
	g := g0
	for !m.isGhostVisible(g, q) {
		g = m.rotateCW(g, Infinite)
		if g == g0 {
			panic("mesh: insertOutsideHull: no hull edge is strictly visible from the query point")
		}
	}

	leftGhost := g
	for {
		prev := m.rotateCCW(leftGhost, Infinite)
		if prev == leftGhost || !m.isGhostVisible(prev, q) {
			break
		}
		leftGhost = prev
	}
	rightGhost := g
	for {
		next := m.rotateCW(rightGhost, Infinite)
		if next == rightGhost || !m.isGhostVisible(next, q) {
			break
		}
		rightGhost = next
	}
	outerLeft := m.rotateCCW(leftGhost, Infinite)
	outerRight := m.rotateCW(rightGhost, Infinite)

	visible := []int{leftGhost}
	for cur := leftGhost; cur != rightGhost; {
		cur = m.rotateCW(cur, Infinite)
		visible = append(visible, cur)
	}

	// hullFirst is the hull vertex at the CW end of the visible arc,
	// hullLast the one at its CCW end; the new hull runs
	// ... -> hullFirst -> v -> hullLast -> ...
	hullFirst := m.Triangles[visible[0]].V[1]
	hullLast := m.Triangles[visible[len(visible)-1]].V[0]

	var candidates []flipCandidate
	newFinite := make([]int, len(visible))
	for i, g := range visible {
		tri := m.Triangles[g]
		// The ghost's slot is reused: its hull edge keeps its stored
		// direction and the infinite vertex is replaced by v, so the
		// triangle is CCW and the finite neighbour across the hull edge
		// needs no retargeting.
		m.setTriangle(g, Triangle{V: [3]int{tri.V[0], tri.V[1], v}, N: [3]int{-1, -1, tri.N[2]}})
		newFinite[i] = g
		candidates = append(candidates, flipCandidate{g, v})
	}
	for i := 0; i+1 < len(newFinite); i++ {
		cur, nxt := newFinite[i], newFinite[i+1]
		m.Triangles[cur].N[1] = nxt
		m.Triangles[nxt].N[0] = cur
	}

	newGhostLeft := m.allocTriangle(Triangle{V: [3]int{v, hullFirst, Infinite}})
	newGhostRight := m.allocTriangle(Triangle{V: [3]int{hullLast, v, Infinite}})

	m.Triangles[newFinite[0]].N[0] = newGhostLeft
	m.Triangles[newGhostLeft].N[2] = newFinite[0]

	last := len(newFinite) - 1
	m.Triangles[newFinite[last]].N[1] = newGhostRight
	m.Triangles[newGhostRight].N[2] = newFinite[last]

	m.Triangles[newGhostLeft].N[0] = outerLeft
	m.Triangles[newGhostLeft].N[1] = newGhostRight
	m.retarget(outerLeft, leftGhost, newGhostLeft)

	m.Triangles[newGhostRight].N[0] = newGhostLeft
	m.Triangles[newGhostRight].N[1] = outerRight
	m.retarget(outerRight, rightGhost, newGhostRight)

	m.vertexTriangle[Infinite] = newGhostLeft

	return candidates
}

// isGhostVisible reports whether q lies strictly outside the finite hull
// edge that ghost g fans around. Collinear queries are not visible: a
// point on the supporting line of a hull edge must connect through the
// strictly visible edges beside it, or a zero-area triangle would be
// created over the collinear edge.
func (m *Mesh) isGhostVisible(g int, q r2.Point) bool {
	tri := m.Triangles[g]
	hStart, hEnd := tri.V[1], tri.V[0]
	return m.orientEdgeQuery(hStart, hEnd, q) < 0
}

// legalize drains the flip stack, performing a Lawson flip whenever the
// opposite vertex lies strictly inside the current triangle's
// circumcircle (or exactly on it with a lower vertex index than the
// apex), and pushing the four newly exposed outer edges back onto
// the stack. Stale entries (edges whose apex is no longer part of the
// named triangle, because an earlier flip already touched it) are
// skipped rather than treated as errors.
func (m *Mesh) legalize(stack []flipCandidate) {
	for len(stack) > 0 {
		fc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tri := m.Triangles[fc.tri]
		if tri.Removed {
			continue
		}
		li := tri.IndexOf(fc.apex)
		if li < 0 {
			continue
		}
		otherIdx := tri.N[li]
		other := m.Triangles[otherIdx]
		oli := -1
		for i, n := range other.N {
			if n == fc.tri {
				oli = i
				break
			}
		}
		if oli < 0 {
			continue
		}
		d := other.V[oli]
		a := tri.V[(li+1)%3]
		b := tri.V[(li+2)%3]

		// Exactly cocircular quads are resolved by vertex index, so a
		// given insertion order always yields the same diagonal.
		s := m.inCircle(a, b, fc.apex, d)
		if s < 0 || (s == 0 && d >= fc.apex) {
			continue
		}

		extApexA := tri.N[(li+2)%3]
		extBApex := tri.N[(li+1)%3]
		extAD := other.N[(oli+1)%3]
		extDB := other.N[(oli+2)%3]

		newTri1 := Triangle{V: [3]int{fc.apex, a, d}, N: [3]int{extAD, otherIdx, extApexA}}
		newTri2 := Triangle{V: [3]int{fc.apex, d, b}, N: [3]int{extDB, extBApex, fc.tri}}

		m.setTriangle(fc.tri, newTri1)
		m.setTriangle(otherIdx, newTri2)

		m.retarget(extBApex, fc.tri, otherIdx)
		m.retarget(extAD, otherIdx, fc.tri)

		stack = append(stack,
			flipCandidate{fc.tri, d},
			flipCandidate{fc.tri, fc.apex},
			flipCandidate{otherIdx, fc.apex},
			flipCandidate{otherIdx, d},
		)
	}
}
