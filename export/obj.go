// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lvandenberg/gotin"
)

// WriteOBJ streams the current finite mesh of dt to w as a Wavefront OBJ
// file: a "v x y z" line per finite vertex followed by an "f a b c" line
// per finite triangle, using OBJ's 1-based vertex indices.
func WriteOBJ(w io.Writer, dt *gotin.DT) error {
	snap, err := newSnapshot(dt)
	if err != nil {
		return ioError("WriteOBJ", err)
	}
	bw := bufio.NewWriter(w)
	for _, p := range snap.pts {
		if _, err := fmt.Fprintf(bw, "v %v %v %v\n", p.X, p.Y, p.Z); err != nil {
			return ioError("WriteOBJ", err)
		}
	}
	for _, t := range snap.tris {
		a, b, c := snap.face(t)
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", a, b, c); err != nil {
			return ioError("WriteOBJ", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ioError("WriteOBJ", err)
	}
	return nil
}

// WriteOBJFile writes dt to path as an OBJ file, creating or truncating
// it.
func WriteOBJFile(path string, dt *gotin.DT) error {
	return writeFile("WriteOBJFile", path, func(f *os.File) error {
		return WriteOBJ(f, dt)
	})
}
