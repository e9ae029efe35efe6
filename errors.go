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
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by all errors which report invalid arguments
// to the rendering functions.  No pixels have been written when such an
// error is returned.
var ErrPrecondition = errors.New("fractal: precondition violated")

// ErrSyntax is returned by the parsing functions for malformed input.
var ErrSyntax = errors.New("invalid syntax")

// BufferSizeError reports a pixel buffer whose length does not match the
// image dimensions.
type BufferSizeError struct {
	Len           int
	Width, Height int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("fractal: buffer has %d bytes, want %dx%d=%d",
		e.Len, e.Width, e.Height, e.Width*e.Height)
}

// Is makes a BufferSizeError match [ErrPrecondition].
func (e *BufferSizeError) Is(target error) bool {
	return target == ErrPrecondition
}

// WorkerError reports the failure of the worker rendering one band.
type WorkerError struct {
	Band Band
	Err  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("fractal: band %d (rows %d-%d): %v",
		e.Band.Index, e.Band.Top, e.Band.Top+e.Band.Height-1, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
