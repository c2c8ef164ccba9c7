// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/lvandenberg/gotin"
)

// dt5Points builds the 5-point square-plus-centre mesh shared by every
// writer test: 5 vertices, 4 triangles.
func dt5Points(t *testing.T) *gotin.DT {
	t.Helper()
	dt, err := gotin.NewDT(gotin.AttributeSchema{})
	if err != nil {
		t.Fatalf("NewDT() error = %v", err)
	}
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	}
	zs := []float64{1, 2, 3, 4, 5}
	for i, p := range pts {
		if _, _, _, err := dt.InsertOnePt(p, zs[i], nil); err != nil {
			t.Fatalf("InsertOnePt(%v) error = %v", p, err)
		}
	}
	return dt
}

func TestWriteOBJ_Counts(t *testing.T) {
	dt := dt5Points(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, dt); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	nov, nof := 0, 0
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			nov++
		case strings.HasPrefix(line, "f "):
			nof++
		}
	}
	if nov != 5 || nof != 4 {
		t.Errorf("WriteOBJ() wrote %d vertices, %d faces, want 5, 4", nov, nof)
	}
}

func TestWritePLY_Counts(t *testing.T) {
	dt := dt5Points(t)
	var buf bytes.Buffer
	if err := WritePLY(&buf, dt); err != nil {
		t.Fatalf("WritePLY() error = %v", err)
	}
	var nov, nof int
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 3 && fields[0] == "element" {
			switch fields[1] {
			case "vertex":
				nov = atoiT(t, fields[2])
			case "face":
				nof = atoiT(t, fields[2])
			}
		}
	}
	if nov != 5 || nof != 4 {
		t.Errorf("WritePLY() header vertex/face = %d/%d, want 5/4", nov, nof)
	}
}

func atoiT(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("atoiT(%q): not a plain integer", s)
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func TestWriteGeoJSON_Shape(t *testing.T) {
	dt := dt5Points(t)
	var buf bytes.Buffer
	if err := WriteGeoJSON(&buf, dt); err != nil {
		t.Fatalf("WriteGeoJSON() error = %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if doc.Type != "FeatureCollection" {
		t.Errorf("doc.Type = %q, want FeatureCollection", doc.Type)
	}
	nov, nof := 0, 0
	for _, f := range doc.Features {
		switch f.Geometry.Type {
		case "Point":
			nov++
		case "Polygon":
			nof++
		}
	}
	if nov != 5 || nof != 4 {
		t.Errorf("WriteGeoJSON() wrote %d points, %d polygons, want 5, 4", nov, nof)
	}
}

func TestWriteCityJSON_Shape(t *testing.T) {
	dt := dt5Points(t)
	var buf bytes.Buffer
	if err := WriteCityJSON(&buf, dt, CityJSONOptions{}); err != nil {
		t.Fatalf("WriteCityJSON() error = %v", err)
	}

	var doc struct {
		Vertices    [][]float64 `json:"vertices"`
		CityObjects map[string]struct {
			Geometry []struct {
				Boundaries [][][]int `json:"boundaries"`
			} `json:"geometry"`
		} `json:"CityObjects"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(doc.Vertices) != 5 {
		t.Errorf("len(doc.Vertices) = %d, want 5", len(doc.Vertices))
	}
	if len(doc.CityObjects) != 1 {
		t.Errorf("len(doc.CityObjects) = %d, want 1", len(doc.CityObjects))
	}
	obj, ok := doc.CityObjects[defaultCityObjectType]
	if !ok {
		t.Fatalf("doc.CityObjects[%q] missing", defaultCityObjectType)
	}
	if len(obj.Geometry) != 1 || len(obj.Geometry[0].Boundaries) != 4 {
		t.Errorf("boundaries count = %v, want 1 geometry with 4 boundaries", obj.Geometry)
	}
}

func TestWriteFlatGeoBuf_RoundTrip(t *testing.T) {
	dt := dt5Points(t)
	var buf bytes.Buffer
	if err := WriteFlatGeoBuf(&buf, dt); err != nil {
		t.Fatalf("WriteFlatGeoBuf() error = %v", err)
	}

	b := buf.Bytes()
	if !bytes.Equal(b[:4], flatgeobufMagic[:]) {
		t.Fatalf("magic = % x, want % x", b[:4], flatgeobufMagic)
	}
	count := binary.LittleEndian.Uint32(b[4:8])
	if count != 4 {
		t.Fatalf("feature count = %d, want 4", count)
	}

	off := 8
	for i := uint32(0); i < count; i++ {
		size := binary.LittleEndian.Uint32(b[off:])
		off += 4
		record := b[off : off+int(size)]
		off += int(size)
		if len(record) != 9*8 {
			t.Fatalf("feature %d record size = %d, want %d", i, len(record), 9*8)
		}
		for j := 0; j < 3; j++ {
			z := math.Float64frombits(binary.LittleEndian.Uint64(record[48+j*8:]))
			if z < 1 || z > 5 {
				t.Errorf("feature %d z%d = %v, want in [1, 5]", i, j, z)
			}
		}
	}
	if off != len(b) {
		t.Errorf("trailing bytes after last feature: off=%d, len=%d", off, len(b))
	}
}
