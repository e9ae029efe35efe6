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

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Plane is the rectangle of the complex plane which an image shows.
// The real part runs along X, the imaginary part along Y.
//
// Pixel row 0 corresponds to UpperLeft.Y; the Y coordinate decreases as the
// row index increases.
type Plane struct {
	UpperLeft  vec.Vec2
	LowerRight vec.Vec2
}

// Validate checks that the vertical axis of p is not upside down.
func (p Plane) Validate() error {
	if p.UpperLeft.Y < p.LowerRight.Y {
		return fmt.Errorf("%w: upper left y=%g is below lower right y=%g",
			ErrPrecondition, p.UpperLeft.Y, p.LowerRight.Y)
	}
	return nil
}

// Rect returns the area covered by p.
func (p Plane) Rect() rect.Rect {
	return rect.Rect{
		LLx: min(p.UpperLeft.X, p.LowerRight.X),
		LLy: p.LowerRight.Y,
		URx: max(p.UpperLeft.X, p.LowerRight.X),
		URy: p.UpperLeft.Y,
	}
}

// PixelToPoint returns the point of the plane which corresponds to the
// pixel (col, row) of a width×height image showing p.
//
// The caller must ensure that width and height are positive.  Pixel indices
// are not range checked; col == width and row == height give the right and
// bottom edge of the plane rectangle.
func PixelToPoint(width, height, col, row int, p Plane) vec.Vec2 {
	w := p.LowerRight.X - p.UpperLeft.X
	h := p.UpperLeft.Y - p.LowerRight.Y
	return vec.Vec2{
		X: p.UpperLeft.X + float64(col)*w/float64(width),
		// rows grow downwards, the imaginary axis grows upwards
		Y: p.UpperLeft.Y - float64(row)*h/float64(height),
	}
}
