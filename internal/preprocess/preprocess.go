// AngelaMos | 2026
// preprocess.go

package preprocess

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var ErrShapeMismatch = errors.New("model input shape does not match preprocessor")

type Mode string

const (
	ModeBaseline Mode = "baseline"
	ModeMedical  Mode = "medical"
)

const (
	OrderRGB = "RGB"
	OrderBGR = "BGR"
)

const (
	claheClipLimit = 3.0
	claheGrid      = 8

	bilateralDiameter   = 9
	bilateralSigmaColor = 75.0
	bilateralSigmaSpace = 75.0
)

// ImageNet channel statistics, RGB order.
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

type Config struct {
	Width        int
	Height       int
	Mode         Mode
	ChannelOrder string
}

// Preprocessor turns an image into a NHWC float32 tensor of
// Width*Height*3 values. It holds no mutable state.
type Preprocessor struct {
	width  int
	height int
	mode   Mode
	bgr    bool
}

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeBaseline:
		return ModeBaseline, nil
	case ModeMedical:
		return ModeMedical, nil
	default:
		return "", fmt.Errorf("unknown preprocessing mode %q", s)
	}
}

func New(cfg Config) (*Preprocessor, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf(
			"invalid input size %dx%d",
			cfg.Width,
			cfg.Height,
		)
	}

	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}

	p := &Preprocessor{
		width:  cfg.Width,
		height: cfg.Height,
		mode:   mode,
	}

	switch strings.ToUpper(cfg.ChannelOrder) {
	case "", OrderRGB:
	case OrderBGR:
		p.bgr = true
	default:
		return nil, fmt.Errorf("unknown channel order %q", cfg.ChannelOrder)
	}

	return p, nil
}

func (p *Preprocessor) Mode() Mode {
	return p.mode
}

func (p *Preprocessor) InputLen() int {
	return p.width * p.height * 3
}

func (p *Preprocessor) Size() (width, height int) {
	return p.width, p.height
}

// Fit returns a preprocessor whose output matches a model input shape of
// [1, h, w, 3] or [h, w, 3]. p is returned unchanged when it already
// matches. Any other layout is accepted only if its element count equals
// InputLen.
func (p *Preprocessor) Fit(shape []int) (*Preprocessor, error) {
	dims := shape
	if len(dims) == 4 && dims[0] == 1 {
		dims = dims[1:]
	}

	if len(dims) == 3 && dims[2] == 3 && dims[0] > 0 && dims[1] > 0 {
		if dims[0] == p.height && dims[1] == p.width {
			return p, nil
		}
		fitted := *p
		fitted.height, fitted.width = dims[0], dims[1]
		return &fitted, nil
	}

	n := 1
	for _, d := range shape {
		n *= d
	}
	if len(shape) > 0 && n == p.InputLen() {
		return p, nil
	}

	return nil, fmt.Errorf(
		"%w: model input %v, preprocessor %dx%dx3",
		ErrShapeMismatch,
		shape,
		p.height,
		p.width,
	)
}

// Tensor decodes the image at path, honouring EXIF orientation.
func (p *Preprocessor) Tensor(path string) ([]float32, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return p.TensorFromImage(img), nil
}

func (p *Preprocessor) TensorFromImage(img image.Image) []float32 {
	src := imaging.Clone(img)

	if p.mode == ModeMedical {
		equalizeLuminance(src, claheClipLimit, claheGrid)
		src = bilateral(
			src,
			bilateralDiameter,
			bilateralSigmaColor,
			bilateralSigmaSpace,
		)
	}

	resized := imaging.Resize(src, p.width, p.height, imaging.Linear)

	out := make([]float32, 0, p.InputLen())
	for y := 0; y < p.height; y++ {
		row := resized.Pix[y*resized.Stride:]
		for x := 0; x < p.width; x++ {
			px := row[x*4 : x*4+3]

			var rgb [3]float32
			for c := 0; c < 3; c++ {
				v := float32(px[c]) / 255
				if p.mode == ModeMedical {
					v = (v - channelMean[c]) / channelStd[c]
				}
				rgb[c] = v
			}

			if p.bgr {
				out = append(out, rgb[2], rgb[1], rgb[0])
			} else {
				out = append(out, rgb[0], rgb[1], rgb[2])
			}
		}
	}

	return out
}
