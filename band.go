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
	"math"
)

// RenderBand fills a width×height image showing p, using [DefaultLimit]
// iterations per pixel.  Pixels are stored in row-major order, one byte per
// pixel.
//
// RenderBand panics if len(buf) != width*height.
func RenderBand(buf []byte, width, height int, p Plane) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height || len(buf) != width*height {
		panic(fmt.Sprintf("fractal: buffer has %d bytes, want %dx%d",
			len(buf), width, height))
	}
	renderRows(buf, width, height, 0, height, p, DefaultLimit)
}

// renderRows fills buf with the rows [top, top+rows) of a width×height
// image showing p.  Coordinates are computed relative to the full image, so
// that the result does not depend on how the image is split into bands.
func renderRows(buf []byte, width, height, top, rows int, p Plane, limit int) {
	if len(buf) != width*rows {
		panic(fmt.Sprintf("fractal: band has %d bytes, want %dx%d",
			len(buf), width, rows))
	}
	for row := range rows {
		line := buf[row*width : (row+1)*width]
		for col := range line {
			pt := PixelToPoint(width, height, col, top+row, p)
			line[col] = Shade(EscapeTime(complex(pt.X, pt.Y), limit))
		}
	}
}
