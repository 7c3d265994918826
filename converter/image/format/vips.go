package format

import (
	"bytes"
	"context"
	"fmt"
	"github.com/h2non/bimg"
	"go.uber.org/zap"
	"image/png"
	"widescreen/converter"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

var gravities = map[converter.Anchor]bimg.Gravity{
	converter.AnchorCenter:  bimg.GravityCentre,
	converter.AnchorTop:     bimg.GravityNorth,
	converter.AnchorBottom:  bimg.GravitySouth,
	converter.AnchorEntropy: bimg.GravitySmart,
}

// Vips places images with libvips and hands the result to the shared tone
// pass and JPEG encoder.
type Vips struct {
	jpeg   *Jpeg
	logger *zap.Logger
}

func MustVips(logger *zap.Logger) *Vips {
	return &Vips{jpeg: MustJpeg(logger), logger: logger}
}

func (v *Vips) Process(ctx context.Context, buf []byte, plan converter.Plan) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, v.logger)

	img := bimg.NewImage(buf)
	size, err := img.Size()
	if err != nil {
		logger.Error("Error reading image size", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}
	if err = checkPixels(converter.Dimensions{Width: size.Width, Height: size.Height}); err != nil {
		logger.Error("Rejecting image", zap.Error(err))
		return nil, err
	}

	layout := converter.Arrange(converter.Dimensions{Width: size.Width, Height: size.Height}, plan.Target, plan.Placement)
	logger.Debug(fmt.Sprintf("Placing %dx%d image with vips: %+v", size.Width, size.Height, layout))

	// libvips reads pixel data lazily; Size only parsed the header, so broken
	// source pixels fail here.
	placed, err := img.Process(VipsOptions(layout, plan.Placement.Anchor))
	if err != nil {
		logger.Error("Error placing image with vips", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}

	decoded, err := png.Decode(bytes.NewReader(placed))
	if err != nil {
		logger.Error("Error reading vips output", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrDecode, err)
	}

	return v.jpeg.Encode(ctx, Apply(decoded, ToneTransforms(plan.Tone)...), plan.Quality)
}

// VipsOptions translates a layout into a single bimg operation. Cropped
// layouts rely on bimg scaling to cover the crop window, which matches
// Layout.Scaled by construction.
func VipsOptions(layout converter.Layout, anchor converter.Anchor) bimg.Options {
	opts := bimg.Options{
		Width:        layout.Crop.Width,
		Height:       layout.Crop.Height,
		Type:         bimg.PNG,
		NoAutoRotate: true,
	}

	if layout.Crop == layout.Scaled {
		opts.Force = true
		return opts
	}

	opts.Crop = true
	opts.Gravity = gravities[anchor]
	return opts
}
