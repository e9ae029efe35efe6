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
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Number lists the types supported by [ParsePair].
type Number interface {
	int | int32 | int64 | uint | uint32 | uint64 | float32 | float64
}

// ParsePair parses a string of the form "<left><sep><right>", for example
// "400x600" or "1.0,0.5".  Both halves must be valid numbers of type T;
// surrounding text is not allowed.
func ParsePair[T Number](s string, sep byte) (T, T, error) {
	var zero T
	left, right, ok := strings.Cut(s, string(sep))
	if !ok {
		return zero, zero, fmt.Errorf("%q: missing %q: %w", s, sep, ErrSyntax)
	}
	l, err := parseNumber[T](left)
	if err != nil {
		return zero, zero, fmt.Errorf("%q: %w", s, err)
	}
	r, err := parseNumber[T](right)
	if err != nil {
		return zero, zero, fmt.Errorf("%q: %w", s, err)
	}
	return l, r, nil
}

func parseNumber[T Number](s string) (T, error) {
	var v T
	var err error
	switch p := any(&v).(type) {
	case *int:
		var x int64
		x, err = strconv.ParseInt(s, 10, strconv.IntSize)
		*p = int(x)
	case *int32:
		var x int64
		x, err = strconv.ParseInt(s, 10, 32)
		*p = int32(x)
	case *int64:
		*p, err = strconv.ParseInt(s, 10, 64)
	case *uint:
		var x uint64
		x, err = strconv.ParseUint(s, 10, strconv.IntSize)
		*p = uint(x)
	case *uint32:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 32)
		*p = uint32(x)
	case *uint64:
		*p, err = strconv.ParseUint(s, 10, 64)
	case *float32:
		var x float64
		x, err = strconv.ParseFloat(s, 32)
		*p = float32(x)
	case *float64:
		*p, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return v, nil
}

// ParseBounds parses image dimensions of the form "WIDTHxHEIGHT".
// Both values must be positive.
func ParseBounds(s string) (width, height int, err error) {
	width, height, err = ParsePair[int](s, 'x')
	if err != nil {
		return 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%q: image size must be positive: %w", s, ErrSyntax)
	}
	return width, height, nil
}

// ParsePoint parses a point of the plane, given as "X,Y".
func ParsePoint(s string) (vec.Vec2, error) {
	x, y, err := ParsePair[float64](s, ',')
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: x, Y: y}, nil
}
