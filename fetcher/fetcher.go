package fetcher

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"net/url"
	"strings"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

// Fetcher retrieves the raw bytes behind an absolute URL. Every failure wraps errs.ErrFetch.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Registry dispatches on the URL scheme.
type Registry struct {
	m map[string]Fetcher

	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{m: map[string]Fetcher{}, logger: logger}
}

func (r *Registry) Register(f Fetcher, schemes ...string) *Registry {
	for _, s := range schemes {
		r.m[strings.ToLower(s)] = f
	}
	return r
}

func (r *Registry) Fetch(ctx context.Context, raw string) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, r.logger)

	u, err := url.Parse(raw)
	if err != nil {
		logger.Error("Invalid image url", zap.String("url", raw), zap.Error(err))
		return nil, fmt.Errorf("%w: invalid url: %w", errs.ErrFetch, err)
	}
	if !u.IsAbs() || u.Host == "" {
		logger.Error("Image url is not absolute", zap.String("url", raw))
		return nil, fmt.Errorf("%w: url %q is not absolute", errs.ErrFetch, raw)
	}

	f, ok := r.m[strings.ToLower(u.Scheme)]
	if !ok {
		logger.Error("Unsupported image url scheme", zap.String("scheme", u.Scheme))
		return nil, fmt.Errorf("%w: unsupported scheme %q", errs.ErrFetch, u.Scheme)
	}

	return f.Fetch(ctx, raw)
}
