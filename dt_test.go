// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package gotin

import (
	"errors"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func mustNewDT(t *testing.T, opts ...DTOption) *DT {
	t.Helper()
	dt, err := NewDT(AttributeSchema{}, opts...)
	if err != nil {
		t.Fatalf("NewDT() error = %v", err)
	}
	return dt
}

// TestInsertOnePt_SquareWithCentre builds a square with a centre
// point, then duplicate insertion at the centre under the default and
// "Highest" policies.
func TestInsertOnePt_SquareWithCentre(t *testing.T) {
	dt := mustNewDT(t)
	pts := []struct {
		p r2.Point
		z float64
	}{
		{r2.Point{X: 0, Y: 0}, 1}, {r2.Point{X: 10, Y: 0}, 2},
		{r2.Point{X: 10, Y: 10}, 3}, {r2.Point{X: 0, Y: 10}, 4},
		{r2.Point{X: 5, Y: 5}, 10},
	}
	for _, pt := range pts {
		if _, _, _, err := dt.InsertOnePt(pt.p, pt.z, nil); err != nil {
			t.Fatalf("InsertOnePt(%v) error = %v", pt.p, err)
		}
	}
	if got := dt.NumberOfVertices(); got != 5 {
		t.Errorf("NumberOfVertices() = %d, want 5", got)
	}
	if got := dt.NumberOfTriangles(); got != 4 {
		t.Errorf("NumberOfTriangles() = %d, want 4", got)
	}
	wantHull := []int{1, 2, 3, 4}
	if got := dt.ConvexHull(); !intSliceEqualCyclic(got, wantHull) {
		t.Errorf("ConvexHull() = %v, want a CCW rotation of %v", got, wantHull)
	}

	idx, inserted, zUpdated, err := dt.InsertOnePt(r2.Point{X: 5, Y: 5}, 11, nil)
	if err != nil {
		t.Fatalf("InsertOnePt(duplicate) error = %v", err)
	}
	if idx != 5 || inserted || zUpdated {
		t.Errorf("InsertOnePt(duplicate, default policy) = (%d, %v, %v), want (5, false, false)", idx, inserted, zUpdated)
	}
	if z, _ := dt.GetPoint(5); z.Z != 10 {
		t.Errorf("GetPoint(5).Z = %v, want 10", z.Z)
	}

	if err := dt.SetDuplicatesHandling(Highest); err != nil {
		t.Fatalf("SetDuplicatesHandling() error = %v", err)
	}
	idx, inserted, zUpdated, err = dt.InsertOnePt(r2.Point{X: 5, Y: 5}, 11, nil)
	if err != nil {
		t.Fatalf("InsertOnePt(duplicate, Highest) error = %v", err)
	}
	if idx != 5 || inserted || !zUpdated {
		t.Errorf("InsertOnePt(duplicate, Highest) = (%d, %v, %v), want (5, false, true)", idx, inserted, zUpdated)
	}
	if z, _ := dt.GetPoint(5); z.Z != 11 {
		t.Errorf("GetPoint(5).Z = %v, want 11", z.Z)
	}
}

// TestInsertOnePt_SnapTolerance checks that a point just inside the
// snap tolerance of an existing vertex snaps onto it, while one just
// outside becomes a genuinely new vertex.
func TestInsertOnePt_SnapTolerance(t *testing.T) {
	dt := mustNewDT(t, WithSnapTolerance(0.1))
	for _, pt := range []struct {
		p r2.Point
		z float64
	}{
		{r2.Point{X: 0, Y: 0}, 1}, {r2.Point{X: 10, Y: 0}, 2},
		{r2.Point{X: 10, Y: 10}, 3}, {r2.Point{X: 0, Y: 10}, 4},
		{r2.Point{X: 5, Y: 5}, 10},
	} {
		if _, _, _, err := dt.InsertOnePt(pt.p, pt.z, nil); err != nil {
			t.Fatalf("InsertOnePt(%v) error = %v", pt.p, err)
		}
	}

	idx, inserted, _, err := dt.InsertOnePt(r2.Point{X: 10.09, Y: 0.0}, 20, nil)
	if err != nil {
		t.Fatalf("InsertOnePt(within snap) error = %v", err)
	}
	if idx != 2 || inserted {
		t.Errorf("InsertOnePt(10.09, 0) = (%d, %v), want (2, false)", idx, inserted)
	}

	_, inserted, _, err = dt.InsertOnePt(r2.Point{X: 10.11, Y: 0.0}, 20, nil)
	if err != nil {
		t.Fatalf("InsertOnePt(outside snap) error = %v", err)
	}
	if !inserted {
		t.Errorf("InsertOnePt(10.11, 0) inserted = %v, want true", inserted)
	}
}

// TestInsert_CollinearBootstrap checks that collinear points
// accumulate without a triangle; the first off-line point completes the
// bootstrap; removing it reverts to the collinear state.
func TestInsert_CollinearBootstrap(t *testing.T) {
	dt := mustNewDT(t)
	for _, pt := range []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}} {
		if _, _, _, err := dt.InsertOnePt(pt, 0, nil); err != nil {
			t.Fatalf("InsertOnePt(%v) error = %v", pt, err)
		}
	}
	if got := dt.NumberOfVertices(); got != 3 {
		t.Errorf("NumberOfVertices() = %d, want 3", got)
	}
	if got := dt.NumberOfTriangles(); got != 0 {
		t.Errorf("NumberOfTriangles() = %d, want 0", got)
	}

	if _, _, _, err := dt.InsertOnePt(r2.Point{X: 2, Y: 1}, 0, nil); err != nil {
		t.Fatalf("InsertOnePt(2,1) error = %v", err)
	}
	if got := dt.NumberOfVertices(); got != 4 {
		t.Errorf("NumberOfVertices() = %d, want 4", got)
	}
	if got := dt.NumberOfTriangles(); got != 2 {
		t.Errorf("NumberOfTriangles() = %d, want 2", got)
	}

	if err := dt.Remove(4); err != nil {
		t.Fatalf("Remove(4) error = %v", err)
	}
	if got := dt.NumberOfVertices(); got != 3 {
		t.Errorf("NumberOfVertices() after Remove = %d, want 3", got)
	}
	if got := dt.NumberOfTriangles(); got != 0 {
		t.Errorf("NumberOfTriangles() after Remove = %d, want 0", got)
	}
}

func TestRemove_InfiniteVertex(t *testing.T) {
	dt := mustNewDT(t)
	err := dt.Remove(0)
	if err == nil {
		t.Fatal("Remove(0) error = nil, want InfiniteVertex error")
	}
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Kind != InfiniteVertex {
		t.Errorf("Remove(0) error = %v, want Kind = InfiniteVertex", err)
	}
}

func TestRemove_OutOfRange(t *testing.T) {
	dt := mustNewDT(t)
	err := dt.Remove(42)
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Kind != OutOfRange {
		t.Errorf("Remove(42) error = %v, want Kind = OutOfRange", err)
	}
}

func TestInsert_BBoxStrategy(t *testing.T) {
	dt := mustNewDT(t)
	pts := []r3.Vector{
		{X: 0, Y: 0, Z: 1}, {X: 10, Y: 0, Z: 2}, {X: 10, Y: 10, Z: 3},
		{X: 0, Y: 10, Z: 4}, {X: 5, Y: 5, Z: 10},
	}
	if err := dt.Insert(pts, BBoxStrategy); err != nil {
		t.Fatalf("Insert(BBoxStrategy) error = %v", err)
	}
	// 4 sentinel corners + 5 real points.
	if got := dt.NumberOfVertices(); got != 9 {
		t.Errorf("NumberOfVertices() = %d, want 9", got)
	}
}

// intSliceEqualCyclic reports whether got is some rotation of want,
// since ConvexHull's starting point is an implementation detail.
func intSliceEqualCyclic(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	n := len(want)
	for shift := 0; shift < n; shift++ {
		ok := true
		for i := 0; i < n; i++ {
			if got[i] != want[(i+shift)%n] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
