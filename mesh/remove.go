// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import "fmt"

// Remove deletes vertex i from the mesh, retriangulating its link polygon
// so that the Delaunay property is restored among the surviving vertices.
// It fails if i is the infinite vertex, out of range, or already removed.
//
// When fewer than three finite vertices would remain, or all remaining
// vertices are collinear, the mesh reverts to the bootstrap state
// instead of attempting a retriangulation that cannot produce a triangle.
func (m *Mesh) Remove(i int) error {
	if i == Infinite {
		return fmt.Errorf("mesh: Remove: cannot remove the infinite vertex")
	}
	if i < 0 || i >= len(m.Vertices) {
		return fmt.Errorf("mesh: Remove: vertex index %d out of range [0, %d)", i, len(m.Vertices))
	}
	if m.Vertices[i].Removed {
		return fmt.Errorf("mesh: Remove: vertex %d is already removed", i)
	}

	if m.numLiveVertices-1 < 3 {
		m.revertToBootstrap(i)
		return nil
	}
	var rest []int
	for v := 1; v < len(m.Vertices); v++ {
		if v != i && !m.Vertices[v].Removed {
			rest = append(rest, v)
		}
	}
	collinear := true
	for j := 2; j < len(rest); j++ {
		if m.orient(rest[0], rest[1], rest[j]) != 0 {
			collinear = false
			break
		}
	}
	if collinear {
		m.revertToBootstrap(i)
		return nil
	}

	m.removeStar(i)
	return nil
}

// revertToBootstrap tombstones i and discards every triangle in the mesh,
// threading all surviving finite vertices back through the bootstrap
// accumulator so that a later insertion can rebuild a first triangle once
// collinearity is broken again.
func (m *Mesh) revertToBootstrap(i int) {
	var rest []int
	for v := 1; v < len(m.Vertices); v++ {
		if v != i && !m.Vertices[v].Removed {
			rest = append(rest, v)
		}
	}
	m.Triangles = nil
	m.numLiveTriangles = 0
	for v := range m.vertexTriangle {
		m.vertexTriangle[v] = -1
	}
	m.Vertices[i].Removed = true
	m.numLiveVertices--
	m.bootstrap = rest
}

// linkVertex is one entry of a vertex's ordered link: the neighbouring
// vertex, the (now stale) star triangle spanning it and the next link
// vertex, and the local index of i within that triangle.
type linkVertex struct {
	v      int
	tri    int
	triApx int // local index of the removed vertex within tri
}

// removeStar handles the general case: i has at least one finite
// incident triangle and enough remaining vertices to retriangulate.
func (m *Mesh) removeStar(i int) {
	incident := m.IncidentTriangles(i)
	isHull := false
	for _, t := range incident {
		if !m.Triangles[t].IsFinite() {
			isHull = true
			break
		}
	}

	k := len(incident)
	link := make([]linkVertex, k)
	for j, t := range incident {
		tri := m.Triangles[t]
		li := tri.IndexOf(i)
		link[j] = linkVertex{v: tri.NextVertex(i), tri: t, triApx: li}
	}

	if isHull {
		m.removeHullStar(i, incident, link)
	} else {
		m.removeInteriorStar(i, incident, link)
	}

	for _, t := range incident {
		m.removeTriangle(t)
	}
	m.Vertices[i].Removed = true
	m.numLiveVertices--
	m.vertexTriangle[i] = -1
}

// removeInteriorStar retriangulates the closed CCW link polygon of an
// interior vertex.
func (m *Mesh) removeInteriorStar(i int, incident []int, link []linkVertex) {
	k := len(link)
	pts := make([]int, k)
	edgeExt := make([]int, k)
	edgeOldTri := make([]int, k)
	for j := 0; j < k; j++ {
		pts[j] = link[j].v
	}
	// Star triangle link[j].tri is (i, pts[j], pts[(j+1)%k]); its edge
	// opposite i is the link edge (pts[j], pts[(j+1)%k]), so edgeExt[j]
	// is that triangle's neighbour across its i-opposite slot.
	for j := 0; j < k; j++ {
		t := link[j].tri
		edgeExt[j] = m.Triangles[t].N[link[j].triApx]
		edgeOldTri[j] = t
	}

	apex := m.triangulateFan(pts, edgeExt[:k-1], edgeOldTri[:k-1])
	m.linkReal(apex, 1, edgeExt[k-1], edgeOldTri[k-1])
}

// removeHullStar retriangulates the open link path of a hull vertex. The
// new hull section between the removed vertex's two hull neighbours is
// the convex chain of the path: link vertices left outside that chain
// are promoted to hull vertices with a ghost per new hull edge, and the
// pockets between the chain and the path are ear-clipped like an
// interior link.
func (m *Mesh) removeHullStar(i int, incident []int, link []linkVertex) {
	k := len(link)
	infAt := -1
	for j, lv := range link {
		if lv.v == Infinite {
			infAt = j
			break
		}
	}
	if infAt < 0 {
		panic("mesh: removeHullStar: hull vertex has no ghost in its star")
	}

	// The CCW link of a hull vertex runs ... -> prevHull -> inf ->
	// nextHull -> ...; the finite path starts just after the infinite
	// vertex and pts[j] sits in star triangle link[(infAt+1+j)%k].tri
	// together with pts[j+1].
	n := k - 1
	pts := make([]int, n)
	edgeExt := make([]int, n-1)
	edgeOldTri := make([]int, n-1)
	for j := 0; j < n; j++ {
		src := (infAt + 1 + j) % k
		pts[j] = link[src].v
	}
	for j := 0; j < n-1; j++ {
		src := (infAt + 1 + j) % k
		t := link[src].tri
		edgeExt[j] = m.Triangles[t].N[link[src].triApx]
		edgeOldTri[j] = t
	}

	// Graham scan over the path walked in hull-CCW direction (from
	// pts[n-1], the removed vertex's hull predecessor, down to pts[0],
	// its hull successor). chain holds path indices, strictly
	// decreasing. Collinear vertices stay on the chain: the hull is kept
	// weakly convex, the same way collinear insertions leave their
	// vertices on the hull boundary.
	chain := []int{n - 1}
	for idx := n - 2; idx >= 0; idx-- {
		for len(chain) >= 2 {
			a := pts[chain[len(chain)-2]]
			b := pts[chain[len(chain)-1]]
			if m.orient(a, b, pts[idx]) < 0 {
				chain = chain[:len(chain)-1]
			} else {
				break
			}
		}
		chain = append(chain, idx)
	}

	// One ghost per new hull edge, in hull-CCW order.
	ghosts := make([]int, len(chain)-1)
	for j := 0; j+1 < len(chain); j++ {
		u := pts[chain[j]]   // hull edge start
		w := pts[chain[j+1]] // hull edge end
		ghosts[j] = m.allocTriangle(Triangle{V: [3]int{w, u, Infinite}})

		lo, hi := chain[j+1], chain[j]
		if hi-lo == 1 {
			// The chord is an existing path edge.
			if edgeOldTri[lo] >= 0 {
				m.retarget(edgeExt[lo], edgeOldTri[lo], ghosts[j])
			}
			m.Triangles[ghosts[j]].N[2] = edgeExt[lo]
		} else {
			// A pocket: the path dips inside the chord (w, u);
			// ear-clip it like an interior link.
			top := m.triangulateFan(pts[lo:hi+1], edgeExt[lo:hi], edgeOldTri[lo:hi])
			m.Triangles[top].N[1] = ghosts[j]
			m.Triangles[ghosts[j]].N[2] = top
		}
	}
	for j := 0; j+1 < len(ghosts); j++ {
		m.Triangles[ghosts[j]].N[1] = ghosts[j+1]
		m.Triangles[ghosts[j+1]].N[0] = ghosts[j]
	}

	// ghostAfter fans over hull edge (i, pts[0]) and ghostBefore over
	// (pts[n-1], i); the outer ghosts beyond them flank the rebuilt
	// section of the fan.
	ghostAfter := link[infAt].tri
	ghostBefore := link[(infAt-1+k)%k].tri
	outerBefore := m.rotateCCW(ghostBefore, Infinite)
	outerAfter := m.rotateCW(ghostAfter, Infinite)

	first := ghosts[0]
	last := ghosts[len(ghosts)-1]
	m.Triangles[first].N[0] = outerBefore
	m.retarget(outerBefore, ghostBefore, first)
	m.Triangles[last].N[1] = outerAfter
	m.retarget(outerAfter, ghostAfter, last)
	m.vertexTriangle[Infinite] = first
}

// linkReal sets t's neighbour slot li to ext, and if oldTri is a genuine
// triangle (not the -1 sentinel for a brand new diagonal), retargets
// ext's own pointer away from oldTri back to t.
func (m *Mesh) linkReal(t, li, ext, oldTri int) {
	m.Triangles[t].N[li] = ext
	if oldTri >= 0 {
		m.retarget(ext, oldTri, t)
	}
}

// triangulateFan retriangulates the open fan bounded by pts[0..n-1] (n>=3)
// using the classical recursive incircle-guided ear selection (Lischinski,
// "Incremental Delaunay Triangulation", Graphics Gems IV): among the
// candidate triangles (pts[0], pts[c], pts[n-1]) for c in [1, n-2], pick
// the one whose circumcircle contains none of the other path vertices.
//
// Every call allocates exactly one new triangle, the "apex" over the full
// span, with V = [pts[0], pts[c], pts[n-1]] and local slot 1 (opposite
// pts[c]) left unlinked — callers own the edge (pts[n-1], pts[0]), since
// only they know what lies across it. edgeExt[j]/edgeOldTri[j] describe
// the pre-existing edge (pts[j], pts[j+1]); edgeOldTri[j] is the stale
// triangle being retargeted away from, or -1 if the edge is a brand new
// diagonal with nothing yet pointing at it.
func (m *Mesh) triangulateFan(pts []int, edgeExt, edgeOldTri []int) int {
	n := len(pts)
	apex := m.allocTriangle(Triangle{})

	if n == 3 {
		m.setTriangle(apex, Triangle{V: [3]int{pts[0], pts[1], pts[2]}})
		m.linkReal(apex, 2, edgeExt[0], edgeOldTri[0])
		m.linkReal(apex, 0, edgeExt[1], edgeOldTri[1])
		return apex
	}

	c := m.chooseEar(pts)

	var left int
	if c == 1 {
		left = edgeExt[0]
		if edgeOldTri[0] >= 0 {
			m.retarget(edgeExt[0], edgeOldTri[0], apex)
		}
	} else {
		left = m.triangulateFan(pts[0:c+1], edgeExt[0:c], edgeOldTri[0:c])
		m.Triangles[left].N[1] = apex
	}

	var right int
	if c == n-2 {
		right = edgeExt[n-2]
		if edgeOldTri[n-2] >= 0 {
			m.retarget(edgeExt[n-2], edgeOldTri[n-2], apex)
		}
	} else {
		right = m.triangulateFan(pts[c:n], edgeExt[c:n-1], edgeOldTri[c:n-1])
		m.Triangles[right].N[1] = apex
	}

	m.setTriangle(apex, Triangle{V: [3]int{pts[0], pts[c], pts[n-1]}, N: [3]int{right, 0, left}})
	return apex
}

// chooseEar picks, among pts[1..n-2], the index c such that the triangle
// (pts[0], pts[c], pts[n-1]) is CCW and no other candidate lies inside
// its circumcircle. Candidates on or behind the base edge are skipped so
// that reflex stretches of the link polygon never produce an inverted
// triangle.
func (m *Mesh) chooseEar(pts []int) int {
	n := len(pts)
	c := -1
	for k := 1; k <= n-2; k++ {
		if m.orient(pts[0], pts[k], pts[n-1]) <= 0 {
			continue
		}
		if c < 0 || m.inCircle(pts[0], pts[c], pts[n-1], pts[k]) > 0 {
			c = k
		}
	}
	if c < 0 {
		c = 1
	}
	return c
}
