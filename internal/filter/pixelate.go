package filter

import "image"

// Pixelate replaces each block-sized cell of the region with the cell's
// average color, in place. Cells at the region border shrink to fit, so
// pixels outside the region neither change nor contribute.
//
// A block size below 2 is an identity operation.
func Pixelate(pix []uint8, width, height int, region image.Rectangle, block int) {
	region = region.Intersect(image.Rect(0, 0, width, height))
	if region.Empty() || block < 2 {
		return
	}

	for by := region.Min.Y; by < region.Max.Y; by += block {
		maxY := by + block
		if maxY > region.Max.Y {
			maxY = region.Max.Y
		}
		for bx := region.Min.X; bx < region.Max.X; bx += block {
			maxX := bx + block
			if maxX > region.Max.X {
				maxX = region.Max.X
			}
			averageBlock(pix, width, bx, by, maxX, maxY)
		}
	}
}

// averageBlock computes the mean color of the cell and fills it.
func averageBlock(pix []uint8, stride, minX, minY, maxX, maxY int) {
	var r, g, b, a uint64
	count := uint64((maxX - minX) * (maxY - minY))
	if count == 0 {
		return
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			i := (y*stride + x) * 4
			r += uint64(pix[i+0])
			g += uint64(pix[i+1])
			b += uint64(pix[i+2])
			a += uint64(pix[i+3])
		}
	}

	// Round to nearest
	avgR := uint8((r + count/2) / count)
	avgG := uint8((g + count/2) / count)
	avgB := uint8((b + count/2) / count)
	avgA := uint8((a + count/2) / count)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			i := (y*stride + x) * 4
			pix[i+0] = avgR
			pix[i+1] = avgG
			pix[i+2] = avgB
			pix[i+3] = avgA
		}
	}
}
