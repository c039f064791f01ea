// AngelaMos | 2026
// clahe.go

package preprocess

import (
	"image"
	"math"
)

// equalizeLuminance applies contrast limited adaptive histogram
// equalization to the Y channel of img in place, leaving chroma untouched.
func equalizeLuminance(img *image.NRGBA, clipLimit float64, grid int) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	luma := make([]float64, w*h)
	cb := make([]float64, w*h)
	cr := make([]float64, w*h)

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			r := float64(row[x*4])
			g := float64(row[x*4+1])
			b := float64(row[x*4+2])
			i := y*w + x
			luma[i] = 0.299*r + 0.587*g + 0.114*b
			cb[i] = 128 - 0.168736*r - 0.331264*g + 0.5*b
			cr[i] = 128 + 0.5*r - 0.418688*g - 0.081312*b
		}
	}

	gx, gy := min(grid, w), min(grid, h)
	luts := tileLUTs(luma, w, h, gx, gy, clipLimit)

	tileW := float64(w) / float64(gx)
	tileH := float64(h) / float64(gy)

	for y := 0; y < h; y++ {
		ty0, ty1, ay := neighbours(y, tileH, gy)
		row := img.Pix[y*img.Stride:]

		for x := 0; x < w; x++ {
			tx0, tx1, ax := neighbours(x, tileW, gx)
			i := y*w + x
			v := clampByte(luma[i])

			top := (1-ax)*luts[ty0*gx+tx0][v] + ax*luts[ty0*gx+tx1][v]
			bottom := (1-ax)*luts[ty1*gx+tx0][v] + ax*luts[ty1*gx+tx1][v]
			yy := (1-ay)*top + ay*bottom

			row[x*4] = clampByte(yy + 1.402*(cr[i]-128))
			row[x*4+1] = clampByte(yy - 0.344136*(cb[i]-128) - 0.714136*(cr[i]-128))
			row[x*4+2] = clampByte(yy + 1.772*(cb[i]-128))
		}
	}
}

func tileLUTs(
	luma []float64,
	w, h, gx, gy int,
	clipLimit float64,
) [][256]float64 {
	luts := make([][256]float64, gx*gy)

	for ty := 0; ty < gy; ty++ {
		y0, y1 := ty*h/gy, (ty+1)*h/gy
		for tx := 0; tx < gx; tx++ {
			x0, x1 := tx*w/gx, (tx+1)*w/gx

			var hist [256]int
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[clampByte(luma[y*w+x])]++
				}
			}

			area := (x1 - x0) * (y1 - y0)
			clip := max(1, int(clipLimit*float64(area)/256))

			excess := 0
			for i := range hist {
				if hist[i] > clip {
					excess += hist[i] - clip
					hist[i] = clip
				}
			}

			bonus, residual := excess/256, excess%256
			for i := range hist {
				hist[i] += bonus
			}
			if residual > 0 {
				step := max(1, 256/residual)
				for i := 0; i < 256 && residual > 0; i += step {
					hist[i]++
					residual--
				}
			}

			scale := 255 / float64(area)
			sum := 0
			lut := &luts[ty*gx+tx]
			for i := range hist {
				sum += hist[i]
				lut[i] = math.Min(255, float64(sum)*scale)
			}
		}
	}

	return luts
}

// neighbours returns the two tile indices whose centres bracket pos and the
// interpolation weight of the second.
func neighbours(pos int, tileSize float64, count int) (int, int, float64) {
	f := (float64(pos)+0.5)/tileSize - 0.5
	i0 := int(math.Floor(f))
	a := f - float64(i0)

	if i0 < 0 {
		return 0, 0, 0
	}
	if i0 >= count-1 {
		return count - 1, count - 1, 0
	}
	return i0, i0 + 1, a
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
