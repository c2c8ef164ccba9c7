// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package mesh

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/lvandenberg/gotin/predicates"
	"github.com/lvandenberg/gotin/utils"
)

func insertAll(m *Mesh, pts []r2.Point) {
	for _, p := range pts {
		m.Insert(p, 0, 0, false)
	}
}

// TestEulerFormula checks that for n random non-duplicate insertions
// the mesh holds 2n - h - 2 finite triangles, h being the hull size.
func TestEulerFormula(t *testing.T) {
	//nolint:gosec
	m := New(rand.New(rand.NewSource(1)))
	pts := utils.GenerateRandomPlanarPoints(200, 1000, 42)
	insertAll(m, pts)

	n := m.NumVertices()
	h := len(m.ConvexHull())
	want := 2*n - h - 2
	if got := m.NumTriangles(); got != want {
		t.Errorf("NumTriangles() = %d, want 2*%d - %d - 2 = %d", got, n, h, want)
	}
}

// TestOrientationAndIncircleInvariants checks the two Delaunay mesh
// invariants: every finite triangle is CCW, and no finite vertex lies
// strictly inside the circumcircle of any finite triangle it is not
// part of.
func TestOrientationAndIncircleInvariants(t *testing.T) {
	//nolint:gosec
	m := New(rand.New(rand.NewSource(2)))
	pts := utils.GenerateRandomPlanarPoints(120, 1000, 7)
	insertAll(m, pts)

	var tris [][3]int
	for tIdx := 0; tIdx < m.NumTriangleSlots(); tIdx++ {
		if m.IsTriangleRemoved(tIdx) || !m.IsFiniteTriangle(tIdx) {
			continue
		}
		v := m.TriangleVertices(tIdx)
		tris = append(tris, v)
		a, b, c := m.Pt(v[0]), m.Pt(v[1]), m.Pt(v[2])
		if predicates.Orient2D(a, b, c) <= 0 {
			t.Fatalf("triangle %v is not CCW", v)
		}
	}

	for _, v := range tris {
		a, b, c := m.Pt(v[0]), m.Pt(v[1]), m.Pt(v[2])
		for i := 1; i <= len(pts); i++ {
			if m.IsVertexRemoved(i) || i == v[0] || i == v[1] || i == v[2] {
				continue
			}
			d := m.Pt(i)
			if predicates.InCircle(a, b, c, d) > 0 {
				t.Fatalf("vertex %d lies strictly inside circumcircle of triangle %v", i, v)
			}
		}
	}
}

// TestInsertRemoveRoundTrip checks that inserting then removing a
// vertex restores vertex and triangle counts to their pre-insertion
// values.
func TestInsertRemoveRoundTrip(t *testing.T) {
	//nolint:gosec
	m := New(rand.New(rand.NewSource(3)))
	pts := utils.GenerateRandomPlanarPoints(30, 1000, 11)
	insertAll(m, pts)

	beforeV, beforeT := m.NumVertices(), m.NumTriangles()
	last := m.Insert(r2.Point{X: 500, Y: 500}, 0, 0, false)

	if err := m.Remove(last); err != nil {
		t.Fatalf("Remove(%d) error = %v", last, err)
	}
	if got := m.NumVertices(); got != beforeV {
		t.Errorf("NumVertices() after round trip = %d, want %d", got, beforeV)
	}
	if got := m.NumTriangles(); got != beforeT {
		t.Errorf("NumTriangles() after round trip = %d, want %d", got, beforeT)
	}
}

// TestCollectGarbageInvariant checks that compaction leaves vertex and
// triangle counts unchanged and clears all tombstones.
func TestCollectGarbageInvariant(t *testing.T) {
	//nolint:gosec
	m := New(rand.New(rand.NewSource(4)))
	pts := utils.GenerateRandomPlanarPoints(50, 1000, 13)
	insertAll(m, pts)

	mid := m.Insert(r2.Point{X: 250, Y: 250}, 0, 0, false)
	if err := m.Remove(mid); err != nil {
		t.Fatalf("Remove(%d) error = %v", mid, err)
	}

	beforeV, beforeT := m.NumVertices(), m.NumTriangles()
	if !m.HasGarbage() {
		t.Fatal("HasGarbage() = false after a Remove, want true")
	}
	m.CollectGarbage()
	if got := m.NumVertices(); got != beforeV {
		t.Errorf("NumVertices() after CollectGarbage = %d, want %d", got, beforeV)
	}
	if got := m.NumTriangles(); got != beforeT {
		t.Errorf("NumTriangles() after CollectGarbage = %d, want %d", got, beforeT)
	}
	if m.HasGarbage() {
		t.Error("HasGarbage() = true after CollectGarbage, want false")
	}
}

func TestConvexHull_NeverContainsInfiniteVertex(t *testing.T) {
	//nolint:gosec
	m := New(rand.New(rand.NewSource(5)))
	insertAll(m, utils.GenerateRandomPlanarPoints(40, 1000, 21))
	for _, h := range m.ConvexHull() {
		if h == Infinite {
			t.Fatal("ConvexHull() contains the infinite vertex")
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			pts := utils.GenerateRandomPlanarPoints(pointsCnt, 1000, 17)

			b.ResetTimer()
			for b.Loop() {
				//nolint:gosec
				m := New(rand.New(rand.NewSource(1)))
				insertAll(m, pts)
			}
		})
	}
}

func BenchmarkLocate(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			//nolint:gosec
			m := New(rand.New(rand.NewSource(1)))
			insertAll(m, utils.GenerateRandomPlanarPoints(pointsCnt, 1000, 17))
			queries := utils.GenerateRandomPlanarPoints(1000, 1000, 23)

			b.ResetTimer()
			for b.Loop() {
				for _, q := range queries {
					if _, err := m.Locate(q, 0, true); err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}
