// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package hulloracle

import (
	"sort"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/lvandenberg/gotin/utils"
)

func TestConvexHull_Square(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	}
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("len(ConvexHull) = %d, want 4", len(hull))
	}
	got := append([]int(nil), hull...)
	sort.Ints(got)
	want := []int{0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ConvexHull() sorted = %v, want %v", got, want)
			break
		}
	}
}

func TestConvexHull_FewerThanThree(t *testing.T) {
	if got := ConvexHull([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}); got != nil {
		t.Errorf("ConvexHull(2 pts) = %v, want nil", got)
	}
}

func TestConvexHull_RandomCountBounds(t *testing.T) {
	pts := utils.GenerateRandomPlanarPoints(200, 100, 7)
	hull := ConvexHull(pts)
	if len(hull) < 3 || len(hull) > len(pts) {
		t.Errorf("len(ConvexHull) = %d, want in [3, %d]", len(hull), len(pts))
	}
	seen := map[int]bool{}
	for _, h := range hull {
		if seen[h] {
			t.Errorf("ConvexHull() returned duplicate index %d", h)
		}
		seen[h] = true
	}
}
