// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command gotinsvg triangulates a batch of random 2.5-D points and
// renders the finite triangles and convex hull of the resulting TIN to
// an SVG file.
package main

import (
	"log"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"

	"github.com/lvandenberg/gotin"
	"github.com/lvandenberg/gotin/utils"
)

const (
	filename = "gotin.svg"

	width  = 800
	height = 800
	side   = 100.0

	triangleStyle = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	hullStyle     = "fill:none;stroke:rgb(200,30,30);stroke-width:2"
	siteStyle     = "fill:rgb(0,0,255)"
)

func pointToScreen(p r2.Point) (int, int) {
	x := p.X / side * width
	y := height - p.Y/side*height
	return int(x), int(y)
}

func render(dt *gotin.DT) {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:rgb(255,255,255)")

	for _, tri := range dt.Triangles() {
		xs := make([]int, 3)
		ys := make([]int, 3)
		for i, v := range [3]int{tri.A, tri.B, tri.C} {
			pt, err := dt.GetPoint(v)
			if err != nil {
				log.Fatal(err)
			}
			xs[i], ys[i] = pointToScreen(r2.Point{X: pt.X, Y: pt.Y})
		}
		canvas.Polygon(xs, ys, triangleStyle)
	}

	hull := dt.ConvexHull()
	if len(hull) > 0 {
		xs := make([]int, len(hull))
		ys := make([]int, len(hull))
		for i, v := range hull {
			pt, err := dt.GetPoint(v)
			if err != nil {
				log.Fatal(err)
			}
			xs[i], ys[i] = pointToScreen(r2.Point{X: pt.X, Y: pt.Y})
		}
		canvas.Polygon(xs, ys, hullStyle)
	}

	for i := 1; i <= dt.NumberOfVertices(); i++ {
		pt, err := dt.GetPoint(i)
		if err != nil {
			continue
		}
		x, y := pointToScreen(r2.Point{X: pt.X, Y: pt.Y})
		canvas.Circle(x, y, 3, siteStyle)
	}

	canvas.End()
}

func main() {
	const (
		numPoints = 300
		seed      = 0
	)

	dt, err := gotin.NewDT(gotin.AttributeSchema{})
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range utils.GenerateRandomPoints(numPoints, side, seed) {
		if _, _, _, err := dt.InsertOnePt(r2.Point{X: p.X, Y: p.Y}, p.Z, nil); err != nil {
			log.Fatal(err)
		}
	}

	render(dt)
}
