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
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/fractal/testcases"
)

func planeOf(tc testcases.TestCase) Plane {
	return Plane{UpperLeft: tc.UpperLeft, LowerRight: tc.LowerRight}
}

func TestBandsCover(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	for height := 1; height <= 50; height++ {
		for workers := 1; workers <= 20; workers++ {
			bands := Bands(8, height, p, workers)
			if len(bands) == 0 || len(bands) > workers {
				t.Fatalf("h=%d w=%d: got %d bands", height, workers, len(bands))
			}
			rowsPerBand := (height + workers - 1) / workers
			next := 0
			for i, b := range bands {
				if b.Index != i {
					t.Errorf("h=%d w=%d: band %d has index %d", height, workers, i, b.Index)
				}
				if b.Top != next {
					t.Fatalf("h=%d w=%d: band %d starts at row %d, want %d",
						height, workers, i, b.Top, next)
				}
				if b.Height <= 0 || b.Height > rowsPerBand {
					t.Errorf("h=%d w=%d: band %d has %d rows", height, workers, i, b.Height)
				}
				if i < len(bands)-1 && b.Height != rowsPerBand {
					t.Errorf("h=%d w=%d: inner band %d has %d rows, want %d",
						height, workers, i, b.Height, rowsPerBand)
				}
				next += b.Height
			}
			if next != height {
				t.Errorf("h=%d w=%d: bands cover %d rows", height, workers, next)
			}
		}
	}
}

func TestBandsCount(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	cases := []struct {
		height, workers int
		bands           int
	}{
		{height: 100, workers: 14, bands: 13}, // 8 rows per band
		{height: 5, workers: 14, bands: 5},
		{height: 14, workers: 14, bands: 14},
		{height: 15, workers: 14, bands: 8}, // 2 rows per band
		{height: 3000, workers: 1, bands: 1},
	}
	for _, tc := range cases {
		if got := len(Bands(10, tc.height, p, tc.workers)); got != tc.bands {
			t.Errorf("height=%d workers=%d: got %d bands, want %d",
				tc.height, tc.workers, got, tc.bands)
		}
	}

	for _, bad := range [][3]int{{0, 10, 1}, {10, 0, 1}, {10, 10, 0}} {
		if bands := Bands(bad[0], bad[1], p, bad[2]); bands != nil {
			t.Errorf("Bands(%v): got %d bands, want nil", bad, len(bands))
		}
	}
}

func TestBandsPlane(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -1.2, Y: 0.35}, LowerRight: vec.Vec2{X: -1, Y: 0.2}}
	bands := Bands(80, 61, p, 4)

	if bands[0].Plane.UpperLeft != p.UpperLeft {
		t.Errorf("first band starts at %v, want %v", bands[0].Plane.UpperLeft, p.UpperLeft)
	}
	last := bands[len(bands)-1].Plane.LowerRight
	if math.Abs(last.X-p.LowerRight.X) > 1e-12 || math.Abs(last.Y-p.LowerRight.Y) > 1e-12 {
		t.Errorf("last band ends at %v, want %v", last, p.LowerRight)
	}
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1].Plane, bands[i].Plane
		if prev.LowerRight.Y != cur.UpperLeft.Y {
			t.Errorf("gap between band %d and %d: %g != %g",
				i-1, i, prev.LowerRight.Y, cur.UpperLeft.Y)
		}
		if cur.UpperLeft.X != p.UpperLeft.X || math.Abs(cur.LowerRight.X-p.LowerRight.X) > 1e-12 {
			t.Errorf("band %d: x range %g..%g, want %g..%g", i,
				cur.UpperLeft.X, cur.LowerRight.X, p.UpperLeft.X, p.LowerRight.X)
		}
	}
}

// TestDeterminism renders every test case with different numbers of
// workers and compares the results to a single band rendering.
func TestDeterminism(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				w, h := tc.Width, tc.Height
				p := planeOf(tc)

				expected := make([]byte, w*h)
				RenderBand(expected, w, h, p)

				for _, workers := range []int{1, 2, 3, 14, 64} {
					actual := make([]byte, w*h)
					if err := Render(actual, w, h, p, workers); err != nil {
						t.Fatalf("%d workers: %v", workers, err)
					}
					if !bytes.Equal(actual, expected) {
						_ = writeDiffImage(fmt.Sprintf("%s_%d", name, workers), expected, actual, w, h)
						t.Errorf("%d workers: output differs from single band", workers)
					}
				}
			})
		}
	}
}

// TestAgainstReference compares the output to the images written by
// testcases/genref.  Missing reference images are skipped.
func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				refPath := filepath.Join("testdata", "reference", name+".png")
				ref, err := loadGray(refPath)
				if errors.Is(err, os.ErrNotExist) {
					t.Skip("no reference image, run go generate")
				} else if err != nil {
					t.Fatalf("loading reference: %v", err)
				}

				w, h := tc.Width, tc.Height
				actual := make([]byte, w*h)
				if err := Render(actual, w, h, planeOf(tc), 14); err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(ref, actual) {
					_ = writeDiffImage(name, ref, actual, w, h)
					t.Error("output differs from reference image")
				}
			})
		}
	}
}

func TestRenderPreconditions(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	flipped := Plane{UpperLeft: p.LowerRight, LowerRight: p.UpperLeft}
	wrap := 1 << (strconv.IntSize / 2) // wrap*wrap == 0 in int arithmetic

	cases := []struct {
		name          string
		r             *Renderer
		bufLen        int
		width, height int
		p             Plane
	}{
		{"short_buffer", NewRenderer(4), 99, 10, 10, p},
		{"long_buffer", NewRenderer(4), 101, 10, 10, p},
		{"zero_width", NewRenderer(4), 0, 0, 10, p},
		{"zero_height", NewRenderer(4), 0, 10, 0, p},
		{"negative_size", NewRenderer(4), 4, -2, -2, p},
		{"zero_workers", NewRenderer(0), 100, 10, 10, p},
		{"negative_limit", &Renderer{Workers: 2, Limit: -1}, 100, 10, 10, p},
		{"limit_too_large", &Renderer{Workers: 2, Limit: MaxLimit + 1}, 100, 10, 10, p},
		{"flipped_plane", NewRenderer(4), 100, 10, 10, flipped},
		{"size_overflow", NewRenderer(1), 0, wrap, wrap, p},
		{"size_overflow_wide", NewRenderer(1), 0, math.MaxInt, 2, p},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := bytes.Repeat([]byte{0x5a}, tc.bufLen)
			err := tc.r.Render(context.Background(), buf, tc.width, tc.height, tc.p)
			if !errors.Is(err, ErrPrecondition) {
				t.Fatalf("got error %v, want ErrPrecondition", err)
			}
			for i, v := range buf {
				if v != 0x5a {
					t.Fatalf("pixel %d was modified", i)
				}
			}
		})
	}
}

func TestRenderBufferSizeError(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	err := Render(make([]byte, 12), 4, 4, p, 2)

	var sizeErr *BufferSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("got %T, want *BufferSizeError", err)
	}
	if sizeErr.Len != 12 || sizeErr.Width != 4 || sizeErr.Height != 4 {
		t.Errorf("unexpected error fields: %+v", sizeErr)
	}
}

func TestRenderLimitMessage(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	r := &Renderer{Workers: 1, Limit: MaxLimit + 1}
	err := r.Render(context.Background(), make([]byte, 4), 2, 2, p)
	if err == nil || !strings.Contains(err.Error(), "[0, 255]") {
		t.Errorf("got %v, want a message naming the range [0, 255]", err)
	}
}

// TestRenderWorkerPanic checks that a failing band is reported, and that
// Render does not return before all other workers have finished.
func TestRenderWorkerPanic(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}

	var running, finished atomic.Int32
	r := &Renderer{
		Workers: 4,
		fill: func(buf []byte, width, height, top, rows int, p Plane, limit int) {
			running.Add(1)
			defer running.Add(-1)
			if top == 0 {
				panic("boom")
			}
			time.Sleep(20 * time.Millisecond)
			renderRows(buf, width, height, top, rows, p, limit)
			finished.Add(1)
		},
	}

	err := r.Render(context.Background(), make([]byte, 16*16), 16, 16, p)
	var workerErr *WorkerError
	if !errors.As(err, &workerErr) {
		t.Fatalf("got %v, want *WorkerError", err)
	}
	if workerErr.Band.Top != 0 || workerErr.Band.Index != 0 {
		t.Errorf("failure reported for band %+v", workerErr.Band)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("panic value missing from %q", err)
	}
	if n := running.Load(); n != 0 {
		t.Errorf("%d workers still running after Render returned", n)
	}
	if n := finished.Load(); n > 3 {
		t.Errorf("%d bands finished, at most 3 expected", n)
	}
}

func TestRenderCancelled(t *testing.T) {
	p := Plane{UpperLeft: vec.Vec2{X: -2, Y: 1}, LowerRight: vec.Vec2{X: 1, Y: -1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	r := &Renderer{
		Workers: 3,
		fill: func(buf []byte, width, height, top, rows int, p Plane, limit int) {
			calls.Add(1)
		},
	}
	err := r.Render(ctx, make([]byte, 30), 5, 6, p)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	var workerErr *WorkerError
	if !errors.As(err, &workerErr) {
		t.Errorf("got %T, want *WorkerError", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("%d bands rendered after cancellation", n)
	}
}

func TestRendererLimit(t *testing.T) {
	// c = 1 escapes in iteration 2, so a limit of 2 leaves the pixel black.
	p := Plane{UpperLeft: vec.Vec2{X: 1, Y: 0}, LowerRight: vec.Vec2{X: 2, Y: -1}}

	buf := []byte{42}
	if err := (&Renderer{Workers: 1, Limit: 2}).Render(context.Background(), buf, 1, 1, p); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0 {
		t.Errorf("limit 2: got %d, want 0", buf[0])
	}

	if err := (&Renderer{Workers: 1}).Render(context.Background(), buf, 1, 1, p); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 253 {
		t.Errorf("default limit: got %d, want 253", buf[0])
	}
}

func BenchmarkRender(b *testing.B) {
	const w, h = 400, 300
	p := Plane{UpperLeft: vec.Vec2{X: -2.2, Y: 1.2}, LowerRight: vec.Vec2{X: 0.8, Y: -1.2}}
	buf := make([]byte, w*h)

	for _, workers := range []int{1, 2, 4, 8, 14} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			r := NewRenderer(workers)
			for b.Loop() {
				if err := r.Render(context.Background(), buf, w, h, p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func loadGray(path string) (gray []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)

	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, nil
}

func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	// actual (left), diff (middle), expected (right)
	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			// green: too dark, red: too bright
			diff := int(expected[i]) - int(actual[i])
			diffColor := color.RGBA{A: 255}
			if diff > 0 {
				diffColor.G = uint8(diff)
			} else if diff < 0 {
				diffColor.R = uint8(-diff)
			}
			img.Set(x+w, y, diffColor)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
