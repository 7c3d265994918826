package service

import (
	"bytes"
	"context"
	"go.uber.org/zap"
	"widescreen/api/model"
	"widescreen/converter"
	img "widescreen/converter/image"
	"widescreen/fetcher"
	"widescreen/shared/errs"
	"widescreen/shared/log"
	"widescreen/shared/metrics"
)

type Transformer interface {
	Transform(ctx context.Context, buf []byte, option converter.Option) ([]byte, error)
}

type ImageService struct {
	fetcher     fetcher.Fetcher
	transformer Transformer
	metrics     *metrics.Instance

	logger *zap.Logger
}

func NewImageService(f fetcher.Fetcher, t Transformer, m *metrics.Instance, logger *zap.Logger) *ImageService {
	return &ImageService{fetcher: f, transformer: t, metrics: m, logger: logger}
}

// Resize fetches the source image and renders it with the requested option.
// Unknown options render as converter.Fit.
func (i *ImageService) Resize(ctx context.Context, params model.ResizeRequest) (_ *model.ResizeResponse, err error) {
	logger := log.LoggerWithTrace(ctx, i.logger).With(zap.String("url", params.ImageURL))

	option, known := converter.Parse(params.Option)
	if !known {
		logger.Debug("Unknown option, falling back", zap.String("option", params.Option), zap.Stringer("fallback", option))
	}

	finish := i.metrics.StartRequest()
	defer func() {
		finish(errs.Kind(err))
	}()
	i.metrics.Option(option.String())

	done := i.metrics.Fetch()
	source, err := i.fetcher.Fetch(ctx, params.ImageURL)
	done()
	if err != nil {
		logger.Error("Error fetching image", zap.Error(err))
		return nil, err
	}
	i.metrics.BytesFetched(len(source))

	done = i.metrics.Transform()
	out, err := i.transformer.Transform(ctx, source, option)
	done()
	if err != nil {
		logger.Error("Error transforming image", zap.Error(err), zap.String("kind", errs.Kind(err)))
		return nil, err
	}
	i.metrics.BytesServed(len(out))

	logger.Debug("Resized image", zap.Stringer("option", option), zap.Int("in", len(source)), zap.Int("out", len(out)))

	return &model.ResizeResponse{
		Type:          img.ContentType,
		ContentLength: int64(len(out)),
		Body:          bytes.NewReader(out),
	}, nil
}
