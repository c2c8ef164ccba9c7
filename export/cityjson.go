// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/lvandenberg/gotin"
)

const defaultCityObjectType = "myterrain"

// CityJSONOptions configures WriteCityJSON.
type CityJSONOptions struct {
	// ObjectType is the "type" field of the single CityObject this
	// writer emits. Defaults to "myterrain".
	ObjectType string
}

type cityjsonDoc struct {
	Type        string                    `json:"type"`
	Version     string                    `json:"version"`
	Metadata    map[string]string         `json:"metadata"`
	CityObjects map[string]cityjsonObject `json:"CityObjects"`
	Vertices    [][]float64               `json:"vertices"`
}

type cityjsonObject struct {
	Type     string             `json:"type"`
	Geometry []cityjsonGeometry `json:"geometry"`
}

type cityjsonGeometry struct {
	Type       string    `json:"type"`
	LOD        string    `json:"lod"`
	Boundaries [][][]int `json:"boundaries"`
}

// WriteCityJSON streams the current finite mesh of dt to w as a single
// CityJSON 1.1 CityObject (keyed by opts.ObjectType, "myterrain" by
// default) whose MultiSurface
// geometry's boundaries are the finite triangles, each a one-ring
// surface indexing the top-level vertices array.
func WriteCityJSON(w io.Writer, dt *gotin.DT, opts CityJSONOptions) error {
	if opts.ObjectType == "" {
		opts.ObjectType = defaultCityObjectType
	}
	snap, err := newSnapshot(dt)
	if err != nil {
		return ioError("WriteCityJSON", err)
	}

	vertices := make([][]float64, len(snap.pts))
	for i, p := range snap.pts {
		vertices[i] = []float64{p.X, p.Y, p.Z}
	}
	boundaries := make([][][]int, len(snap.tris))
	for i, t := range snap.tris {
		a, b, c := snap.face(t)
		boundaries[i] = [][]int{{a - 1, b - 1, c - 1}}
	}

	doc := cityjsonDoc{
		Type:     "CityJSON",
		Version:  "1.1",
		Metadata: map[string]string{"identifier": uuid.New().String()},
		CityObjects: map[string]cityjsonObject{
			opts.ObjectType: {
				Type: opts.ObjectType,
				Geometry: []cityjsonGeometry{
					{Type: "MultiSurface", LOD: "1", Boundaries: boundaries},
				},
			},
		},
		Vertices: vertices,
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return ioError("WriteCityJSON", err)
	}
	return nil
}

// WriteCityJSONFile writes dt to path as a CityJSON file, creating or
// truncating it.
func WriteCityJSONFile(path string, dt *gotin.DT, opts CityJSONOptions) error {
	return writeFile("WriteCityJSONFile", path, func(f *os.File) error {
		return WriteCityJSON(f, dt, opts)
	})
}
