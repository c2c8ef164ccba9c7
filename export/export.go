// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package export streams the finite mesh of a gotin.DT to the on-disk
// formats consumers build on: OBJ, PLY, GeoJSON, CityJSON and
// FlatGeoBuf. Every writer takes an io.Writer at call scope; each format
// also has a WriteXxxFile(path) convenience wrapper that owns the file
// handle and releases it on every exit path, including a write failure.
package export

import (
	"os"

	"github.com/lvandenberg/gotin"
)

// snapshot is the dense, finite-only view every writer in this package
// renders from: finite vertex indices in ascending order (skipping
// tombstones and the infinite vertex), a 1-based map from a DT vertex
// index to its position in that order, and the finite triangles.
type snapshot struct {
	order []int
	index map[int]int // DT vertex index -> 1-based position in order
	pts   []r3Like
	tris  []gotin.Triangle
}

// r3Like avoids importing golang/geo/r3 into this package's exported
// surface; callers never see it, only x/y/z accessors below.
type r3Like struct{ X, Y, Z float64 }

func newSnapshot(dt *gotin.DT) (*snapshot, error) {
	raw := dt.Points()
	s := &snapshot{
		index: make(map[int]int, len(raw)),
	}
	for i := 1; i < len(raw); i++ {
		removed, err := dt.IsVertexRemoved(i)
		if err != nil || removed {
			continue
		}
		s.index[i] = len(s.order) + 1
		s.order = append(s.order, i)
		s.pts = append(s.pts, r3Like{X: raw[i].X, Y: raw[i].Y, Z: raw[i].Z})
	}
	s.tris = dt.Triangles()
	return s, nil
}

// face returns the 1-based position of each of t's three vertices within
// the snapshot's finite vertex order.
func (s *snapshot) face(t gotin.Triangle) (a, b, c int) {
	return s.index[t.A], s.index[t.B], s.index[t.C]
}

// ioError wraps cause as a *gotin.Error with Kind IOError.
func ioError(op string, cause error) error {
	return &gotin.Error{Kind: gotin.IOError, Op: op, Err: cause}
}

// writeFile opens path, defers Close on every exit path, and delegates
// to write.
func writeFile(op, path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ioError(op, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return nil
}
