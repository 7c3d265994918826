package image

import (
	"context"
	"fmt"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"widescreen/converter"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

const ContentType = "image/jpeg"

// Processor renders a plan: decode, place, tone and encode to JPEG.
type Processor interface {
	Process(ctx context.Context, buf []byte, plan converter.Plan) ([]byte, error)
}

type Transformer struct {
	processor Processor
	profile   converter.Profile

	logger *zap.Logger
}

func NewTransformer(processor Processor, profile converter.Profile, logger *zap.Logger) *Transformer {
	return &Transformer{processor: processor, profile: profile, logger: logger}
}

func (t *Transformer) Transform(ctx context.Context, buf []byte, option converter.Option) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, t.logger)

	if !filetype.IsImage(buf) {
		kind, _ := filetype.Match(buf)
		logger.Error("Source is not an image", zap.String("mime", kind.MIME.Value), zap.Int("bytes", len(buf)))
		return nil, fmt.Errorf("%w: unsupported content %q", errs.ErrDecode, kind.MIME.Value)
	}

	plan := t.profile.Plan(option)
	logger.Debug(fmt.Sprintf("Transforming image with plan: %+v", plan), zap.Stringer("option", option))

	return t.processor.Process(ctx, buf, plan)
}
