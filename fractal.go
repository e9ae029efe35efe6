// Package fractal renders escape-time images of the Mandelbrot set into
// 8-bit grayscale pixel buffers.
//
// The image is split into horizontal bands of whole rows, one band per
// worker.  Each worker owns a disjoint sub-slice of the caller's buffer, so
// no locking is needed while rendering; [Renderer.Render] returns once every
// worker has finished.  Pixel coordinates are always mapped through the
// bounds of the full image, which makes the output independent of the number
// of workers.
package fractal

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genref
