// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/lvandenberg/gotin"
)

// FlatGeoBuf's full wire format is a FlatBuffers-encoded header plus
// per-feature messages. This writer keeps only the parts of the format
// that are plain framing, the 4-byte magic/version prefix and
// little-endian length-prefixed records, and encodes each triangle
// feature's geometry and z0/z1/z2 properties as flat little-endian
// float64s rather than a full FlatBuffers Feature message.
var flatgeobufMagic = [4]byte{0x66, 0x67, 0x62, 0x03} // "fgb" + version 3

// WriteFlatGeoBuf streams the current finite mesh of dt to w as one
// length-prefixed polygon feature per finite triangle: its three (x, y)
// ring vertices as little-endian float64 pairs, followed by the
// per-feature properties z0, z1, z2 as little-endian float64s, matching
// the vertex order stored on the triangle.
func WriteFlatGeoBuf(w io.Writer, dt *gotin.DT) error {
	snap, err := newSnapshot(dt)
	if err != nil {
		return ioError("WriteFlatGeoBuf", err)
	}
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(flatgeobufMagic[:]); err != nil {
		return ioError("WriteFlatGeoBuf", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(snap.tris))); err != nil {
		return ioError("WriteFlatGeoBuf", err)
	}

	for _, t := range snap.tris {
		record := make([]byte, 9*8) // 3 ring points (x,y) is 6 floats + z0,z1,z2 is 3 floats
		vs := [3]int{t.A, t.B, t.C}
		for i, v := range vs {
			pos := snap.index[v] - 1
			p := snap.pts[pos]
			binary.LittleEndian.PutUint64(record[i*16:], math.Float64bits(p.X))
			binary.LittleEndian.PutUint64(record[i*16+8:], math.Float64bits(p.Y))
		}
		for i, v := range vs {
			pos := snap.index[v] - 1
			z := snap.pts[pos].Z
			binary.LittleEndian.PutUint64(record[48+i*8:], math.Float64bits(z))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(record))); err != nil {
			return ioError("WriteFlatGeoBuf", err)
		}
		if _, err := bw.Write(record); err != nil {
			return ioError("WriteFlatGeoBuf", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return ioError("WriteFlatGeoBuf", err)
	}
	return nil
}

// WriteFlatGeoBufFile writes dt to path as a FlatGeoBuf-framed file,
// creating or truncating it.
func WriteFlatGeoBufFile(path string, dt *gotin.DT) error {
	return writeFile("WriteFlatGeoBufFile", path, func(f *os.File) error {
		return WriteFlatGeoBuf(f, dt)
	})
}
