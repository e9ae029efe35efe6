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

package testcases

var overviewCases = []TestCase{
	{
		Name:       "full_set",
		Width:      96,
		Height:     72,
		UpperLeft:  pt(-2.2, 1.2),
		LowerRight: pt(0.8, -1.2),
	},
	{
		Name:       "upper_half",
		Width:      80,
		Height:     40,
		UpperLeft:  pt(-2.2, 1.2),
		LowerRight: pt(0.8, 0),
	},
	{
		// the example from the command line help text
		Name:       "cli_example",
		Width:      80,
		Height:     60,
		UpperLeft:  pt(-1.20, 0.35),
		LowerRight: pt(-1, 0.20),
	},
}

var zoomCases = []TestCase{
	{
		Name:       "seahorse_valley",
		Width:      64,
		Height:     64,
		UpperLeft:  pt(-0.78, 0.16),
		LowerRight: pt(-0.72, 0.10),
	},
	{
		Name:       "elephant_valley",
		Width:      64,
		Height:     48,
		UpperLeft:  pt(0.25, 0.05),
		LowerRight: pt(0.35, -0.025),
	},
	{
		Name:       "mini_brot",
		Width:      50,
		Height:     50,
		UpperLeft:  pt(-1.7687, 0.0025),
		LowerRight: pt(-1.7662, 0),
	},
}

// shapeCases use image sizes which do not split evenly into bands.
var shapeCases = []TestCase{
	{
		Name:       "single_pixel",
		Width:      1,
		Height:     1,
		UpperLeft:  pt(-2, 2),
		LowerRight: pt(2, -2),
	},
	{
		Name:       "single_row",
		Width:      120,
		Height:     1,
		UpperLeft:  pt(-2, 0),
		LowerRight: pt(0.5, -0.01),
	},
	{
		Name:       "tall_prime",
		Width:      7,
		Height:     97,
		UpperLeft:  pt(-0.1, 1.1),
		LowerRight: pt(0.1, -1.1),
	},
	{
		Name:       "fewer_rows_than_workers",
		Width:      40,
		Height:     5,
		UpperLeft:  pt(-2, 0.1),
		LowerRight: pt(0.5, -0.1),
	},
}
