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

// Command mandelbrot renders the Mandelbrot set into a grayscale image file.
//
// Usage:
//
//	mandelbrot [options] FILE PIXELS UPPERLEFT LOWERRIGHT
//
// PIXELS gives the image size as WIDTHxHEIGHT, the two corners are points
// of the complex plane written as X,Y.  Use "--" before the positional
// arguments if a corner has a negative real part.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"

	"seehuhn.de/go/fractal"
	"seehuhn.de/go/fractal/sink"
)

type args struct {
	File       string `arg:"positional,required" help:"output file (.png, .tif, .bmp, .pgm or .pdf, optionally followed by .zst)"`
	Pixels     string `arg:"positional,required" help:"image size as WIDTHxHEIGHT"`
	UpperLeft  string `arg:"positional,required" help:"upper left corner as X,Y"`
	LowerRight string `arg:"positional,required" help:"lower right corner as X,Y"`

	Workers     int           `arg:"-w,--workers,env:FRACTAL_WORKERS" help:"number of bands rendered in parallel [default: number of CPUs]"`
	Limit       int           `arg:"--limit,env:FRACTAL_LIMIT" default:"255" help:"maximum number of iterations per pixel (at most 255)"`
	Supersample int           `arg:"--supersample" default:"1" help:"render at N times the size and scale down"`
	Format      string        `arg:"--format" help:"output format: png, tiff, bmp, pgm or pdf [default: from file name]"`
	Timeout     time.Duration `arg:"--timeout" help:"abort rendering after this duration"`
	Profile     string        `arg:"--profile" help:"write a cpu, mem or trace profile"`
	ProfileDir  string        `arg:"--profile-dir" default:"." help:"directory for profile output"`
	Verbose     bool          `arg:"-v,--verbose" help:"print debug messages"`
}

func (args) Description() string {
	return "Render the Mandelbrot set into a grayscale image."
}

func (args) Epilogue() string {
	return "Example: mandelbrot mandel.png 4000x3000 -- -1.20,0.35 -1,0.20"
}

// job is a fully validated command line.
type job struct {
	path          string
	format        sink.Format
	compressed    bool
	width, height int
	plane         fractal.Plane
	supersample   int
	renderer      *fractal.Renderer
}

func main() {
	var a args
	p := arg.MustParse(&a)

	j, err := newJob(&a)
	if err != nil {
		p.Fail(err.Error())
	}

	level := slog.LevelInfo
	if a.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sink.SetLogger(logger)

	if err := run(&a, j, logger); err != nil {
		logger.Error("mandelbrot failed", "error", err)
		os.Exit(1)
	}
}

func newJob(a *args) (*job, error) {
	width, height, err := fractal.ParseBounds(a.Pixels)
	if err != nil {
		return nil, fmt.Errorf("error parsing image dimensions: %w", err)
	}
	upperLeft, err := fractal.ParsePoint(a.UpperLeft)
	if err != nil {
		return nil, fmt.Errorf("error parsing upper left corner point: %w", err)
	}
	lowerRight, err := fractal.ParsePoint(a.LowerRight)
	if err != nil {
		return nil, fmt.Errorf("error parsing lower right corner point: %w", err)
	}
	plane := fractal.Plane{UpperLeft: upperLeft, LowerRight: lowerRight}
	if err := plane.Validate(); err != nil {
		return nil, err
	}

	j := &job{
		path:        a.File,
		width:       width,
		height:      height,
		plane:       plane,
		supersample: a.Supersample,
	}

	if a.Format != "" {
		j.format, err = sink.ParseFormat(a.Format)
		j.compressed = strings.HasSuffix(strings.ToLower(a.File), ".zst")
	} else {
		j.format, j.compressed, err = sink.FormatFromPath(a.File)
	}
	if err != nil {
		return nil, err
	}

	if a.Supersample < 1 {
		return nil, fmt.Errorf("invalid supersampling factor %d", a.Supersample)
	}
	if width > math.MaxInt/a.Supersample || height > math.MaxInt/a.Supersample ||
		width*a.Supersample > math.MaxInt/(height*a.Supersample) {
		return nil, fmt.Errorf("image size %dx%d with supersampling %d is too large",
			width, height, a.Supersample)
	}
	if a.Limit < 1 || a.Limit > fractal.MaxLimit {
		return nil, fmt.Errorf("iteration limit must be between 1 and %d", fractal.MaxLimit)
	}
	workers := a.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	} else if workers < 0 {
		return nil, fmt.Errorf("invalid number of workers %d", workers)
	}
	j.renderer = &fractal.Renderer{Workers: workers, Limit: a.Limit}

	switch a.Profile {
	case "", "cpu", "mem", "trace":
	default:
		return nil, fmt.Errorf("unknown profile type %q", a.Profile)
	}

	return j, nil
}

func run(a *args, j *job, logger *slog.Logger) error {
	if a.Profile != "" {
		opts := []func(*profile.Profile){profile.ProfilePath(a.ProfileDir), profile.Quiet}
		switch a.Profile {
		case "cpu":
			opts = append(opts, profile.CPUProfile)
		case "mem":
			opts = append(opts, profile.MemProfile)
		case "trace":
			opts = append(opts, profile.TraceProfile)
		}
		defer profile.Start(opts...).Stop()
	}

	ctx := context.Background()
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	w, h := j.width*j.supersample, j.height*j.supersample
	pixels := make([]byte, w*h)

	start := time.Now()
	if err := j.renderer.Render(ctx, pixels, w, h, j.plane); err != nil {
		return err
	}
	logger.Info("rendered",
		"width", w, "height", h,
		"workers", j.renderer.Workers,
		"bands", len(fractal.Bands(w, h, j.plane, j.renderer.Workers)),
		"elapsed", time.Since(start))

	img, err := sink.Gray(pixels, w, h)
	if err != nil {
		return err
	}
	if j.supersample > 1 {
		img = sink.Downscale(img, j.width, j.height)
	}
	return sink.WriteImage(j.path, j.format, j.compressed, img)
}
