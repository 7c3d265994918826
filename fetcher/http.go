package fetcher

import (
	"context"
	"fmt"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"net"
	"time"
	"widescreen/shared/errs"
	"widescreen/shared/log"
)

const (
	maxRedirects   = 5
	defaultTimeout = 10 * time.Second
)

type HTTPConfig struct {
	Timeout     time.Duration
	MaxBodySize int
	UserAgent   string
}

type HTTP struct {
	client  *fasthttp.Client
	timeout time.Duration

	logger *zap.Logger
}

func NewHTTP(cfg HTTPConfig, logger *zap.Logger) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &HTTP{
		client: &fasthttp.Client{
			Name:                cfg.UserAgent,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxConnWaitTimeout:  cfg.Timeout,
			MaxResponseBodySize: cfg.MaxBodySize,
			Dial: func(addr string) (net.Conn, error) {
				return fasthttp.DialTimeout(addr, cfg.Timeout)
			},
		},
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (h *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, h.logger).With(zap.String("url", url))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := h.do(ctx, req, resp); err != nil {
		logger.Error("Error downloading image", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}

	if status := resp.StatusCode(); status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		logger.Error("Unexpected status code on download", zap.Int("status", status))
		return nil, fmt.Errorf("%w: unexpected status code %d", errs.ErrFetch, status)
	}

	body := append([]byte(nil), resp.Body()...)
	logger.Debug("Downloaded image", zap.Int("bytes", len(body)))

	return body, nil
}

// do follows redirects itself so that the whole chain shares one deadline.
func (h *HTTP) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline := time.Now().Add(h.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for redirects := 0; ; redirects++ {
		if err := h.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}

		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			return nil
		}
		if redirects >= maxRedirects {
			return fasthttp.ErrTooManyRedirects
		}

		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return fasthttp.ErrMissingLocation
		}
		req.URI().UpdateBytes(location)
	}
}
