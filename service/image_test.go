package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"widescreen/api/model"
	"widescreen/converter"
	img "widescreen/converter/image"
	"widescreen/converter/image/format"
	"widescreen/shared/errs"
	"widescreen/shared/metrics"
)

type stubFetcher struct {
	data []byte
	err  error
	urls []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.data, s.err
}

type optionRecorder struct {
	options []converter.Option
}

func (o *optionRecorder) Transform(_ context.Context, _ []byte, option converter.Option) ([]byte, error) {
	o.options = append(o.options, option)
	return []byte("jpeg"), nil
}

func sourceJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))
	return buf.Bytes()
}

func newService(f *stubFetcher) *ImageService {
	transformer := img.NewTransformer(format.MustNative(zap.NewNop()), converter.DefaultProfile, zap.NewNop())
	return NewImageService(f, transformer, metrics.New(nil), zap.NewNop())
}

func TestImageService_Resize(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		option string
		want   image.Point
	}{
		{name: "fill large source", width: 3000, height: 2000, option: "fill", want: image.Pt(1920, 1080)},
		{name: "fit small source", width: 800, height: 600, option: "fit", want: image.Pt(800, 600)},
		{name: "unknown option fits", width: 2000, height: 2000, option: "zoom", want: image.Pt(1080, 1080)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &stubFetcher{data: sourceJPEG(t, tc.width, tc.height)}

			resp, err := newService(f).Resize(t.Context(), model.ResizeRequest{ImageURL: "https://img.example/a.jpg", Option: tc.option})
			require.NoError(t, err)
			assert.Equal(t, "image/jpeg", resp.Type)
			assert.Equal(t, []string{"https://img.example/a.jpg"}, f.urls)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, resp.ContentLength, int64(len(body)))

			cfg, kind, err := image.DecodeConfig(bytes.NewReader(body))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", kind)
			assert.Equal(t, tc.want, image.Pt(cfg.Width, cfg.Height))
		})
	}
}

func TestImageService_Resize_ParsesOption(t *testing.T) {
	rec := &optionRecorder{}
	s := NewImageService(&stubFetcher{data: []byte("raw")}, rec, metrics.New(nil), zap.NewNop())

	for _, option := range []string{"fill", "top", "bottom", "fit", "", "nope"} {
		_, err := s.Resize(t.Context(), model.ResizeRequest{ImageURL: "http://x/y", Option: option})
		require.NoError(t, err)
	}

	assert.Equal(t, []converter.Option{
		converter.Fill, converter.Top, converter.Bottom, converter.Fit, converter.Fit, converter.Fit,
	}, rec.options)
}

func TestImageService_Resize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *stubFetcher
		want    error
	}{
		{
			name:    "fetch failure",
			fetcher: &stubFetcher{err: fmt.Errorf("%w: connection refused", errs.ErrFetch)},
			want:    errs.ErrFetch,
		},
		{
			name:    "not an image",
			fetcher: &stubFetcher{data: []byte("<html>hello</html>")},
			want:    errs.ErrDecode,
		},
		{
			name:    "truncated jpeg",
			fetcher: &stubFetcher{data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")},
			want:    errs.ErrDecode,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := newService(tc.fetcher).Resize(t.Context(), model.ResizeRequest{ImageURL: "http://x/y", Option: "fill"})
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
