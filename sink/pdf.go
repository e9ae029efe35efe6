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

package sink

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// WritePDF stores img as a single page PDF file, one point per pixel.
//
// Every row is drawn as a sequence of filled rectangles, one for each run
// of pixels with the same gray value.  This gives sharp pixel edges in
// every viewer, but the file size grows with the number of runs, so the
// format is only suitable for small or smooth images.
func WritePDF(path string, img *image.Gray) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	paper := &pdf.Rectangle{
		URx: float64(width),
		URy: float64(height),
	}
	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Escape-time images are mostly dark, so start with a black page and
	// skip black runs below.
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(width), float64(height))
	page.Fill()

	// PDF origin is bottom-left, image rows start at the top.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(height)})

	runs := 0
	for y := range height {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:width]
		for x := 0; x < width; {
			v := row[x]
			end := x + 1
			for end < width && row[end] == v {
				end++
			}
			if v != 0 {
				page.SetFillColor(color.DeviceGray(float64(v) / 255))
				page.Rectangle(float64(x), float64(y), float64(end-x), 1)
				page.Fill()
				runs++
			}
			x = end
		}
	}

	Logger().Debug("pdf page complete", "path", path, "runs", runs)
	return page.Close()
}
