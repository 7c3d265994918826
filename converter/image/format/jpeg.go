package format

import (
	"bytes"
	"context"
	"fmt"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"image"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

type Jpeg struct {
	logger *zap.Logger
}

func MustJpeg(logger *zap.Logger) *Jpeg {
	return &Jpeg{logger: logger}
}

func (w *Jpeg) Encode(ctx context.Context, img image.Image, quality int) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug(fmt.Sprintf("Converting image to jpeg with quality: %d", quality))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		logger.Error("Error converting image to jpeg", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrEncode, err)
	}

	return buf.Bytes(), nil
}
