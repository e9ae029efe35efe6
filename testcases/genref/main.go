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

// Command genref generates reference images for the rendering tests.
// Every test case is rendered as a single band, without any concurrency,
// and stored as PNG and PDF file.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/sink"
	"seehuhn.de/go/fractal/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := generate(tc, name); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generate(tc testcases.TestCase, name string) error {
	p := fractal.Plane{UpperLeft: tc.UpperLeft, LowerRight: tc.LowerRight}
	if err := p.Validate(); err != nil {
		return err
	}

	buf := make([]byte, tc.Width*tc.Height)
	fractal.RenderBand(buf, tc.Width, tc.Height, p)

	for _, ext := range []string{".png", ".pdf"} {
		if err := sink.Write(filepath.Join(refDir, name+ext), buf, tc.Width, tc.Height); err != nil {
			return err
		}
	}
	return nil
}
