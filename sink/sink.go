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

// Package sink stores finished grayscale pixel buffers as image files.
//
// Supported formats are PNG, TIFF, BMP, binary PGM and PDF.  Apart from PDF,
// every format can be wrapped in a zstd stream by appending ".zst" to the
// file name.
package sink

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format identifies an output file format.
type Format int

// These are the supported output formats.
const (
	PNG Format = iota
	TIFF
	BMP
	PGM
	PDF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	case PGM:
		return "pgm"
	case PDF:
		return "pdf"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	// ErrFormat indicates an unknown or unsupported output format.
	ErrFormat = errors.New("sink: unsupported format")

	// ErrSize indicates a buffer which does not match the image size.
	ErrSize = errors.New("sink: buffer size does not match image size")
)

// ParseFormat returns the format with the given name, ignoring case.
// "tif" is accepted as an alias for "tiff".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "pgm":
		return PGM, nil
	case "pdf":
		return PDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, name)
}

// FormatFromPath determines the output format from the file name extension.
// The second return value reports whether the file is zstd compressed.
func FormatFromPath(path string) (Format, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	compressed := ext == ".zst"
	if compressed {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	if ext == "" {
		return 0, false, fmt.Errorf("%w: no file extension in %q", ErrFormat, path)
	}
	f, err := ParseFormat(ext[1:])
	if err != nil {
		return 0, false, err
	}
	if f == PDF && compressed {
		return 0, false, fmt.Errorf("%w: compressed PDF", ErrFormat)
	}
	return f, compressed, nil
}

// Gray wraps a row-major pixel buffer as an image without copying.
func Gray(buf []byte, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 || len(buf) != width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrSize, len(buf), width, height)
	}
	return &image.Gray{
		Pix:    buf,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Write stores the width×height pixel buffer buf in the file path.
// The format is chosen by [FormatFromPath].
func Write(path string, buf []byte, width, height int) error {
	f, compressed, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := Gray(buf, width, height)
	if err != nil {
		return err
	}
	return WriteImage(path, f, compressed, img)
}

// WriteImage stores img in the file path, using the given format.
func WriteImage(path string, f Format, compressed bool, img *image.Gray) error {
	log := Logger()
	log.Debug("writing image", "path", path, "format", f,
		"zstd", compressed, "size", img.Rect.Size())

	if f == PDF {
		if compressed {
			return fmt.Errorf("%w: compressed PDF", ErrFormat)
		}
		return WritePDF(path, img)
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := &countingWriter{w: fd}
	err = encode(cw, f, compressed, img)
	if cerr := fd.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("image written", "path", path, "bytes", cw.n)
	return nil
}

func encode(w io.Writer, f Format, compressed bool, img *image.Gray) (err error) {
	if !compressed {
		return Encode(w, f, img)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	err = Encode(zw, f, img)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	return err
}

// Encode writes img to w in the given format.
// PDF output needs a file and is not supported here; use [WritePDF].
func Encode(w io.Writer, f Format, img *image.Gray) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case BMP:
		return bmp.Encode(w, img)
	case PGM:
		return EncodePGM(w, img)
	default:
		return fmt.Errorf("%w: cannot stream %s", ErrFormat, f)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
