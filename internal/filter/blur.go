package filter

import (
	"image"
	"sync"
)

// GaussianBlur applies a separable Gaussian blur to the region of the
// RGBA pixel buffer, in place. The separable algorithm processes
// horizontal and vertical passes independently, achieving
// O(w*h*r) complexity instead of O(w*h*r²).
//
// Sampling is clamped to the region itself (edge extension at the
// region border), so pixels outside the region neither change nor
// contribute.
func GaussianBlur(pix []uint8, width, height int, region image.Rectangle, radius float64) {
	region = region.Intersect(image.Rect(0, 0, width, height))
	if region.Empty() || radius <= 0 {
		return
	}

	rw := region.Dx()
	rh := region.Dy()

	kernel := CachedGaussianKernel(radius)

	// Get temporary buffer from pool
	temp := getTempBuffer(rw, rh)
	defer putTempBuffer(temp)

	// Pass 1: Horizontal blur (pix -> temp)
	blurHorizontal(pix, temp, width, region, kernel)

	// Pass 2: Vertical blur (temp -> pix)
	blurVertical(temp, pix, width, region, kernel)
}

// blurHorizontal applies 1D horizontal convolution.
// Reads from the source buffer, writes to the region-local temp buffer.
func blurHorizontal(pix []uint8, temp []float32, stride int, region image.Rectangle, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2
	rw := region.Dx()
	rh := region.Dy()

	for y := 0; y < rh; y++ {
		srcY := region.Min.Y + y

		for x := 0; x < rw; x++ {
			var r, g, b, a float32

			for k := 0; k < kernelSize; k++ {
				kx := x + k - halfKernel

				// Clamp to the region (edge extension)
				if kx < 0 {
					kx = 0
				} else if kx >= rw {
					kx = rw - 1
				}

				srcIdx := (srcY*stride + region.Min.X + kx) * 4
				weight := kernel[k]

				r += float32(pix[srcIdx+0]) * weight
				g += float32(pix[srcIdx+1]) * weight
				b += float32(pix[srcIdx+2]) * weight
				a += float32(pix[srcIdx+3]) * weight
			}

			tempIdx := (y*rw + x) * 4
			temp[tempIdx+0] = r
			temp[tempIdx+1] = g
			temp[tempIdx+2] = b
			temp[tempIdx+3] = a
		}
	}
}

// blurVertical applies 1D vertical convolution.
// Reads from the region-local temp buffer, writes back to the target.
func blurVertical(temp []float32, pix []uint8, stride int, region image.Rectangle, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2
	rw := region.Dx()
	rh := region.Dy()

	for y := 0; y < rh; y++ {
		dstY := region.Min.Y + y

		for x := 0; x < rw; x++ {
			var r, g, b, a float32

			for k := 0; k < kernelSize; k++ {
				ky := y + k - halfKernel

				// Clamp to the region (edge extension)
				if ky < 0 {
					ky = 0
				} else if ky >= rh {
					ky = rh - 1
				}

				tempIdx := (ky*rw + x) * 4
				weight := kernel[k]

				r += temp[tempIdx+0] * weight
				g += temp[tempIdx+1] * weight
				b += temp[tempIdx+2] * weight
				a += temp[tempIdx+3] * weight
			}

			dstIdx := (dstY*stride + region.Min.X + x) * 4
			pix[dstIdx+0] = clampUint8(r)
			pix[dstIdx+1] = clampUint8(g)
			pix[dstIdx+2] = clampUint8(b)
			pix[dstIdx+3] = clampUint8(a)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur operations.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// getTempBuffer retrieves a temporary buffer from the pool.
// The buffer is guaranteed to have at least width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		// Need larger buffer - return old one and allocate new
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
