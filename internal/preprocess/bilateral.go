// AngelaMos | 2026
// bilateral.go

package preprocess

import (
	"image"
	"math"
)

// bilateral smooths img with an edge-preserving filter over a circular
// window of the given diameter. Colour distance is the L1 distance over the
// three channels.
func bilateral(
	img *image.NRGBA,
	diameter int,
	sigmaColor, sigmaSpace float64,
) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	radius := diameter / 2
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)

	type tap struct {
		dx, dy int
		weight float64
	}
	var taps []tap
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if d2 > float64(radius*radius) {
				continue
			}
			taps = append(taps, tap{dx, dy, math.Exp(d2 * spaceCoeff)})
		}
	}

	var colorWeight [3*255 + 1]float64
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * colorCoeff)
	}

	at := func(x, y int) []uint8 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		off := y*img.Stride + x*4
		return img.Pix[off : off+4]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := at(x, y)

			var sum [3]float64
			var norm float64
			for _, t := range taps {
				px := at(x+t.dx, y+t.dy)
				dist := absDiff(px[0], center[0]) +
					absDiff(px[1], center[1]) +
					absDiff(px[2], center[2])
				wgt := t.weight * colorWeight[dist]

				sum[0] += wgt * float64(px[0])
				sum[1] += wgt * float64(px[1])
				sum[2] += wgt * float64(px[2])
				norm += wgt
			}

			off := y*dst.Stride + x*4
			dst.Pix[off] = clampByte(sum[0] / norm)
			dst.Pix[off+1] = clampByte(sum[1] / norm)
			dst.Pix[off+2] = clampByte(sum[2] / norm)
			dst.Pix[off+3] = center[3]
		}
	}

	return dst
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
