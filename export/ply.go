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

// WritePLY streams the current finite mesh of dt to w as an ASCII PLY
// file: a header declaring the vertex and face element counts, followed
// by one "x y z" line per finite vertex and one "3 a b c" line per
// finite triangle, using PLY's 0-based vertex indices.
func WritePLY(w io.Writer, dt *gotin.DT) error {
	snap, err := newSnapshot(dt)
	if err != nil {
		return ioError("WritePLY", err)
	}
	bw := bufio.NewWriter(w)

	header := fmt.Sprintf(
		"ply\nformat ascii 1.0\nelement vertex %d\nproperty float x\nproperty float y\nproperty float z\n"+
			"element face %d\nproperty list uchar int vertex_indices\nend_header\n",
		len(snap.pts), len(snap.tris))
	if _, err := io.WriteString(bw, header); err != nil {
		return ioError("WritePLY", err)
	}
	for _, p := range snap.pts {
		if _, err := fmt.Fprintf(bw, "%v %v %v\n", p.X, p.Y, p.Z); err != nil {
			return ioError("WritePLY", err)
		}
	}
	for _, t := range snap.tris {
		a, b, c := snap.face(t)
		if _, err := fmt.Fprintf(bw, "3 %d %d %d\n", a-1, b-1, c-1); err != nil {
			return ioError("WritePLY", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ioError("WritePLY", err)
	}
	return nil
}

// WritePLYFile writes dt to path as an ASCII PLY file, creating or
// truncating it.
func WritePLYFile(path string, dt *gotin.DT) error {
	return writeFile("WritePLYFile", path, func(f *os.File) error {
		return WritePLY(f, dt)
	})
}
