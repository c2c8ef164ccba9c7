// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package predicates implements exact-in-sign planar geometric predicates:
// orientation and in-circle tests, each backed by a fast filtered
// floating-point evaluation with an exact arbitrary-precision fallback.
package predicates

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

const epsilon = 1.1102230246251565e-16 // 2^-53, the float64 machine epsilon

// Orient2D returns the sign of the signed area of the triangle (a, b, c):
// positive when a, b, c are in counter-clockwise order, negative when
// clockwise, zero when collinear. The result is exact in sign.
func Orient2D(a, b, c r2.Point) int {
	bax, bay := b.X-a.X, b.Y-a.Y
	cax, cay := c.X-a.X, c.Y-a.Y
	det := bax*cay - bay*cax

	detsum := math.Abs(bax*cay) + math.Abs(bay*cax)
	errBound := (3 + 16*epsilon) * epsilon * detsum
	if det > errBound {
		return 1
	}
	if det < -errBound {
		return -1
	}
	if detsum == 0 {
		return 0
	}
	return orient2DExact(a, b, c)
}

func orient2DExact(a, b, c r2.Point) int {
	ax, ay := ratFromFloat(a.X), ratFromFloat(a.Y)
	bx, by := ratFromFloat(b.X), ratFromFloat(b.Y)
	cx, cy := ratFromFloat(c.X), ratFromFloat(c.Y)

	bax := sub(bx, ax)
	bay := sub(by, ay)
	cax := sub(cx, ax)
	cay := sub(cy, ay)

	det := sub(mul(bax, cay), mul(bay, cax))
	return det.Sign()
}

// InCircle returns the sign of the determinant that is positive when d
// lies strictly inside the circumcircle of the counter-clockwise triangle
// (a, b, c), negative when outside, zero when cocircular. The result is
// exact in sign. Callers are responsible for ensuring (a, b, c) is CCW;
// the sign of the result is only meaningful under that assumption.
func InCircle(a, b, c, d r2.Point) int {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := (10 + 96*epsilon) * epsilon * permanent

	if det > errBound {
		return 1
	}
	if det < -errBound {
		return -1
	}
	if permanent == 0 {
		return 0
	}
	return inCircleExact(a, b, c, d)
}

func inCircleExact(a, b, c, d r2.Point) int {
	ax, ay := ratFromFloat(a.X), ratFromFloat(a.Y)
	bx, by := ratFromFloat(b.X), ratFromFloat(b.Y)
	cx, cy := ratFromFloat(c.X), ratFromFloat(c.Y)
	dx, dy := ratFromFloat(d.X), ratFromFloat(d.Y)

	adx, ady := sub(ax, dx), sub(ay, dy)
	bdx, bdy := sub(bx, dx), sub(by, dy)
	cdx, cdy := sub(cx, dx), sub(cy, dy)

	alift := add(mul(adx, adx), mul(ady, ady))
	blift := add(mul(bdx, bdx), mul(bdy, bdy))
	clift := add(mul(cdx, cdx), mul(cdy, cdy))

	det := add(
		mul(alift, sub(mul(bdx, cdy), mul(cdx, bdy))),
		add(
			mul(blift, sub(mul(cdx, ady), mul(adx, cdy))),
			mul(clift, sub(mul(adx, bdy), mul(bdx, ady))),
		),
	)
	return det.Sign()
}

func ratFromFloat(x float64) *big.Rat {
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		panic("predicates: coordinate is not finite")
	}
	return r
}

func add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
