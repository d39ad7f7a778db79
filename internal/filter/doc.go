// Package filter provides the destructive redaction effects applied at
// export time: Gaussian blur and pixelation over a clamped region of an
// RGBA pixel buffer.
//
// Both filters are self-contained: they sample only pixels inside the
// target region, so content outside a redaction never leaks into it.
package filter
