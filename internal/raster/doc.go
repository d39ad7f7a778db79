// Package raster draws anti-aliased annotation shapes onto an RGBA
// pixel buffer using signed distance fields: each pixel's coverage is
// derived from its distance to the shape edge and smoothed with a
// Hermite step.
//
// The package is deliberately small: rectangles, ellipses, segments
// with round caps, and triangles cover every annotation variant.
package raster
