// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lvandenberg/gotin"
)

type geojsonFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Type       string          `json:"type"`
	Geometry   geojsonGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geojsonGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// WriteGeoJSON streams the current finite mesh of dt to w as an RFC 7946
// FeatureCollection: one Point feature per finite vertex and one Polygon
// feature per finite triangle, its ring closed and wound CCW to match
// the triangle's own stored orientation.
func WriteGeoJSON(w io.Writer, dt *gotin.DT) error {
	snap, err := newSnapshot(dt)
	if err != nil {
		return ioError("WriteGeoJSON", err)
	}

	fc := geojsonFeatureCollection{Type: "FeatureCollection"}
	for _, p := range snap.pts {
		fc.Features = append(fc.Features, geojsonFeature{
			Type:       "Feature",
			Geometry:   geojsonGeometry{Type: "Point", Coordinates: []float64{p.X, p.Y, p.Z}},
			Properties: map[string]any{},
		})
	}
	for _, t := range snap.tris {
		a, b, c := t.A, t.B, t.C
		ring := [][]float64{
			vertexCoord(snap, a),
			vertexCoord(snap, b),
			vertexCoord(snap, c),
			vertexCoord(snap, a),
		}
		fc.Features = append(fc.Features, geojsonFeature{
			Type:       "Feature",
			Geometry:   geojsonGeometry{Type: "Polygon", Coordinates: [][][]float64{ring}},
			Properties: map[string]any{"z0": ring[0][2], "z1": ring[1][2], "z2": ring[2][2]},
		})
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(fc); err != nil {
		return ioError("WriteGeoJSON", err)
	}
	return nil
}

func vertexCoord(snap *snapshot, vertexIdx int) []float64 {
	pos := snap.index[vertexIdx] - 1
	p := snap.pts[pos]
	return []float64{p.X, p.Y, p.Z}
}

// WriteGeoJSONFile writes dt to path as a GeoJSON file, creating or
// truncating it.
func WriteGeoJSONFile(path string, dt *gotin.DT) error {
	return writeFile("WriteGeoJSONFile", path, func(f *os.File) error {
		return WriteGeoJSON(f, dt)
	})
}
