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
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Band is a horizontal strip of whole image rows, the unit of parallel work.
//
// The Plane field is informational only.  Workers map pixels through the
// bounds of the full image, so that the output does not depend on the
// number of bands.
type Band struct {
	Index  int   // position of the band, counting from the top
	Top    int   // first image row of the band
	Height int   // number of rows
	Plane  Plane // part of the plane shown by the band
}

// Bands splits a width×height image showing p into at most workers bands
// of ceil(height/workers) rows each.  The last band may be shorter.  The
// bands are disjoint and together cover every row exactly once.
//
// Bands returns nil if any of the arguments is not positive.
func Bands(width, height int, p Plane, workers int) []Band {
	if width <= 0 || height <= 0 || workers <= 0 {
		return nil
	}
	rowsPerBand := (height + workers - 1) / workers

	bands := make([]Band, 0, (height+rowsPerBand-1)/rowsPerBand)
	for top := 0; top < height; top += rowsPerBand {
		rows := min(rowsPerBand, height-top)
		bands = append(bands, Band{
			Index:  len(bands),
			Top:    top,
			Height: rows,
			Plane: Plane{
				UpperLeft:  PixelToPoint(width, height, 0, top, p),
				LowerRight: PixelToPoint(width, height, width, top+rows, p),
			},
		})
	}
	return bands
}

// Renderer renders images using a fixed number of parallel workers.
//
// A Renderer holds no state between calls and is safe for concurrent use.
type Renderer struct {
	// Workers is the number of bands rendered in parallel.
	// Must be at least 1.
	Workers int

	// Limit is the maximum number of iterations per pixel.
	// Zero means DefaultLimit.  Must not exceed MaxLimit.
	Limit int

	// fill renders one band; tests replace it to inject failures.
	fill func(buf []byte, width, height, top, rows int, p Plane, limit int)
}

// NewRenderer returns a Renderer with the given number of workers and the
// default iteration limit.
func NewRenderer(workers int) *Renderer {
	return &Renderer{Workers: workers}
}

// Render fills buf with a width×height image of the plane rectangle p.
// The image is split into bands by [Bands] and every band is rendered in
// its own goroutine.
//
// All arguments are checked before any pixel is written; invalid arguments
// give an error wrapping [ErrPrecondition].  If a worker fails, or if ctx
// is cancelled before all bands have started, Render waits for the
// remaining workers and then returns the first failure as a *WorkerError.
// The contents of buf are unspecified in this case.
func (r *Renderer) Render(ctx context.Context, buf []byte, width, height int, p Plane) error {
	if err := r.check(buf, width, height, p); err != nil {
		return err
	}
	limit := r.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	fill := r.fill
	if fill == nil {
		fill = renderRows
	}

	bands := Bands(width, height, p, r.Workers)

	// Slice the buffer before starting any goroutine, so that each worker
	// only ever sees its own rows.
	parts := make([][]byte, len(bands))
	for i, b := range bands {
		start, end := b.Top*width, (b.Top+b.Height)*width
		parts[i] = buf[start:end:end]
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, b := range bands {
		part := parts[i]
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &WorkerError{Band: b, Err: fmt.Errorf("panic: %v", v)}
				}
			}()
			if err := ctx.Err(); err != nil {
				return &WorkerError{Band: b, Err: err}
			}
			fill(part, width, height, b.Top, b.Height, p, limit)
			return nil
		})
	}
	return g.Wait()
}

func (r *Renderer) check(buf []byte, width, height int, p Plane) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: invalid image size %dx%d", ErrPrecondition, width, height)
	case r.Workers < 1:
		return fmt.Errorf("%w: need at least one worker, got %d", ErrPrecondition, r.Workers)
	case r.Limit < 0 || r.Limit > MaxLimit:
		return fmt.Errorf("%w: iteration limit %d outside [0, %d] (0 means default)",
			ErrPrecondition, r.Limit, MaxLimit)
	case width > math.MaxInt/height:
		return fmt.Errorf("%w: image size %dx%d overflows", ErrPrecondition, width, height)
	case len(buf) != width*height:
		return &BufferSizeError{Len: len(buf), Width: width, Height: height}
	}
	return p.Validate()
}

// Render fills buf with a width×height image of p, using the given number
// of workers and the default iteration limit.  See [Renderer.Render].
func Render(buf []byte, width, height int, p Plane, workers int) error {
	return NewRenderer(workers).Render(context.Background(), buf, width, height, p)
}
