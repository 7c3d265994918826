package format

import (
	"bytes"
	"context"
	"fmt"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"image"
	"math"
	"widescreen/converter"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

// entropySteps bounds how many window positions are scored along the cropped axis.
const entropySteps = 16

var anchors = map[converter.Anchor]imaging.Anchor{
	converter.AnchorCenter: imaging.Center,
	converter.AnchorTop:    imaging.Top,
	converter.AnchorBottom: imaging.Bottom,
}

// Native renders plans with pure Go codecs, without libvips.
type Native struct {
	jpeg   *Jpeg
	logger *zap.Logger
}

func MustNative(logger *zap.Logger) *Native {
	return &Native{jpeg: MustJpeg(logger), logger: logger}
}

func (n *Native) Process(ctx context.Context, buf []byte, plan converter.Plan) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, n.logger)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		logger.Error("Error reading image header", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}
	if err = checkPixels(converter.Dimensions{Width: cfg.Width, Height: cfg.Height}); err != nil {
		logger.Error("Rejecting image", zap.Error(err))
		return nil, err
	}

	src, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		logger.Error("Error decoding image", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}

	bounds := src.Bounds()
	layout := converter.Arrange(converter.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}, plan.Target, plan.Placement)
	logger.Debug(fmt.Sprintf("Placing %dx%d image: %+v", bounds.Dx(), bounds.Dy(), layout),
		zap.Stringer("fit", plan.Placement.Fit),
		zap.Stringer("anchor", plan.Placement.Anchor),
	)

	img := Apply(Place(src, layout, plan.Placement.Anchor), ToneTransforms(plan.Tone)...)

	return n.jpeg.Encode(ctx, img, plan.Quality)
}

// Place scales src and cuts the layout's crop window at anchor.
func Place(src image.Image, layout converter.Layout, anchor converter.Anchor) image.Image {
	img := src
	bounds := src.Bounds()
	if layout.Scaled.Width != bounds.Dx() || layout.Scaled.Height != bounds.Dy() {
		img = imaging.Resize(src, layout.Scaled.Width, layout.Scaled.Height, imaging.Lanczos)
	}

	if layout.Crop == layout.Scaled {
		return img
	}

	if anchor == converter.AnchorEntropy {
		return imaging.Crop(img, EntropyWindow(img, layout.Crop))
	}

	a, ok := anchors[anchor]
	if !ok {
		a = imaging.Center
	}
	return imaging.CropAnchor(img, layout.Crop.Width, layout.Crop.Height, a)
}

// EntropyWindow slides a window of size along the axis on which img overflows
// and returns the position whose luminance entropy is highest.
func EntropyWindow(img image.Image, size converter.Dimensions) image.Rectangle {
	bounds := img.Bounds()
	overflowX := max(0, bounds.Dx()-size.Width)
	overflowY := max(0, bounds.Dy()-size.Height)

	best := image.Rect(0, 0, size.Width, size.Height).Add(bounds.Min)
	bestScore := -1.0

	for step := 0; step <= entropySteps; step++ {
		offset := image.Pt(overflowX*step/entropySteps, overflowY*step/entropySteps)
		window := image.Rect(0, 0, size.Width, size.Height).Add(bounds.Min).Add(offset)

		score := entropy(imaging.Histogram(imaging.Crop(img, window)))
		if score > bestScore {
			best, bestScore = window, score
		}
		if overflowX == 0 && overflowY == 0 {
			break
		}
	}

	return best
}

func entropy(histogram [256]float64) float64 {
	var e float64
	for _, p := range histogram {
		if p > 0 {
			e -= p * math.Log2(p)
		}
	}
	return e
}
