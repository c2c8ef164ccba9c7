// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package gotin

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func squareCorners(t *testing.T) *DT {
	t.Helper()
	dt := mustNewDT(t)
	pts := []struct {
		p r2.Point
		z float64
	}{
		{r2.Point{X: 0, Y: 0}, 1}, {r2.Point{X: 10, Y: 0}, 2},
		{r2.Point{X: 10, Y: 10}, 3}, {r2.Point{X: 0, Y: 10}, 4},
	}
	for _, pt := range pts {
		if _, _, _, err := dt.InsertOnePt(pt.p, pt.z, nil); err != nil {
			t.Fatalf("InsertOnePt(%v) error = %v", pt.p, err)
		}
	}
	return dt
}

const interpEps = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// TestInterpolate_AtCentre interpolates at the centre of a square of
// four corners, where Laplace and natural-neighbour weights are all
// equal by symmetry.
func TestInterpolate_AtCentre(t *testing.T) {
	dt := squareCorners(t)
	q := r2.Point{X: 5, Y: 5}

	if got, err := dt.InterpolateOne(InterpolateConfig{Method: MethodLaplace}, q); err != nil {
		t.Fatalf("InterpolateOne(Laplace) error = %v", err)
	} else if !approxEqual(got, 2.5, interpEps) {
		t.Errorf("InterpolateOne(Laplace) = %v, want 2.5", got)
	}

	if got, err := dt.InterpolateOne(InterpolateConfig{Method: MethodNNI}, q); err != nil {
		t.Fatalf("InterpolateOne(NNI) error = %v", err)
	} else if !approxEqual(got, 2.5, interpEps) {
		t.Errorf("InterpolateOne(NNI) = %v, want 2.5", got)
	}

	if got, err := dt.InterpolateOne(InterpolateConfig{Method: MethodTIN}, q); err != nil {
		t.Fatalf("InterpolateOne(TIN) error = %v", err)
	} else if !approxEqual(got, 3.0, interpEps) {
		t.Errorf("InterpolateOne(TIN) = %v, want 3.0", got)
	}
}

// TestInterpolate_IDWRadius checks that the search radius limits which
// vertices contribute, down to none at all.
func TestInterpolate_IDWRadius(t *testing.T) {
	dt := squareCorners(t)

	got, err := dt.InterpolateOne(InterpolateConfig{Method: MethodIDW, Radius: 3, Power: 2}, r2.Point{X: 9, Y: 9})
	if err != nil {
		t.Fatalf("InterpolateOne(IDW, 9,9) error = %v", err)
	}
	if !approxEqual(got, 3.0, interpEps) {
		t.Errorf("InterpolateOne(IDW, 9,9) = %v, want 3.0", got)
	}

	got, err = dt.InterpolateOne(InterpolateConfig{Method: MethodIDW, Radius: 3, Power: 2}, r2.Point{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("InterpolateOne(IDW, 5,5) error = %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("InterpolateOne(IDW, 5,5) = %v, want NaN", got)
	}
}

// TestInterpolate_AtVertex checks that querying exactly at an
// existing vertex returns that vertex's z for NN, Laplace, and NNI.
func TestInterpolate_AtVertex(t *testing.T) {
	dt := squareCorners(t)
	if _, _, _, err := dt.InsertOnePt(r2.Point{X: 5, Y: 5}, 10, nil); err != nil {
		t.Fatalf("InsertOnePt(centre) error = %v", err)
	}

	v := r2.Point{X: 10, Y: 0}
	for _, m := range []Method{MethodNN, MethodLaplace, MethodNNI} {
		got, err := dt.InterpolateOne(InterpolateConfig{Method: m}, v)
		if err != nil {
			t.Fatalf("InterpolateOne(%v, vertex) error = %v", m, err)
		}
		if !approxEqual(got, 2, interpEps) {
			t.Errorf("InterpolateOne(%v, vertex) = %v, want 2", m, got)
		}
	}
}

// TestInterpolate_EmptyMesh checks the empty-mesh failure mode.
func TestInterpolate_EmptyMesh(t *testing.T) {
	dt := mustNewDT(t)
	if _, err := dt.InterpolateOne(InterpolateConfig{Method: MethodNN}, r2.Point{X: 0, Y: 0}); err == nil {
		t.Error("InterpolateOne(empty mesh) error = nil, want EmptyMesh error")
	}
}

// TestInterpolate_OutsideConvexHull checks the outside-hull behaviour:
// NaN by default, a fatal error under strict.
func TestInterpolate_OutsideConvexHull(t *testing.T) {
	dt := squareCorners(t)
	outside := r2.Point{X: 100, Y: 100}

	zs, err := dt.Interpolate(InterpolateConfig{Method: MethodNN}, []r2.Point{outside}, false)
	if err != nil {
		t.Fatalf("Interpolate(non-strict) error = %v", err)
	}
	if !math.IsNaN(zs[0]) {
		t.Errorf("Interpolate(non-strict)[0] = %v, want NaN", zs[0])
	}

	if _, err := dt.Interpolate(InterpolateConfig{Method: MethodNN}, []r2.Point{outside}, true); err == nil {
		t.Error("Interpolate(strict) error = nil, want a fatal error")
	}
}

func TestInterpolate_IDWInvalidPower(t *testing.T) {
	dt := squareCorners(t)
	if _, err := dt.InterpolateOne(InterpolateConfig{Method: MethodIDW, Radius: 0, Power: 0}, r2.Point{X: 5, Y: 5}); err == nil {
		t.Error("InterpolateOne(IDW, power=0) error = nil, want InvalidInput error")
	}
}
