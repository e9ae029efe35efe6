// seehuhn.de/go/fractal - parallel escape-time fractal rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fractal

// DefaultLimit is the iteration limit used when none is given.
const DefaultLimit = 255

// MaxLimit is the largest supported iteration limit.  Escaped points are
// shaded 255-n, so a larger limit would not fit into a byte.
const MaxLimit = 255

// EscapeTime iterates z ← z² + c, starting from z = 0, at most limit times.
// If |z| exceeds 2 after the update in iteration n (counting from 0), the
// function returns (n, true).  If this never happens, the point may belong
// to the Mandelbrot set and the function returns (0, false).
func EscapeTime(c complex128, limit int) (int, bool) {
	var z complex128
	for i := range limit {
		z = z*z + c
		re, im := real(z), imag(z)
		if re*re+im*im > 4 {
			return i, true
		}
	}
	return 0, false
}

// Shade converts the result of [EscapeTime] into a gray value.
// Points which did not escape are black.
func Shade(n int, escaped bool) byte {
	if !escaped {
		return 0
	}
	return byte(MaxLimit - n)
}
