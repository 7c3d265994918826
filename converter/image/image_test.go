package image

import (
	"bytes"
	"context"
	"errors"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"widescreen/converter"
	"widescreen/converter/image/format"
	"widescreen/shared/errs"
)

type recordingProcessor struct {
	plans []converter.Plan
	out   []byte
	err   error
}

func (r *recordingProcessor) Process(_ context.Context, _ []byte, plan converter.Plan) ([]byte, error) {
	r.plans = append(r.plans, plan)
	return r.out, r.err
}

func gradientJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestTransformer_PlansShareToneAndTarget(t *testing.T) {
	p := &recordingProcessor{out: []byte("ok")}
	tr := NewTransformer(p, converter.DefaultProfile, zap.NewNop())
	src := gradientJPEG(t, 64, 48)

	for _, option := range []converter.Option{converter.Fill, converter.Top, converter.Bottom, converter.Fit} {
		out, err := tr.Transform(t.Context(), src, option)
		require.NoError(t, err)
		assert.Equal(t, []byte("ok"), out)
	}

	require.Len(t, p.plans, 4)
	for _, plan := range p.plans {
		assert.Equal(t, 1.5, plan.Tone.Saturation)
		assert.Equal(t, 1.1, plan.Tone.Brightness)
		assert.Equal(t, float64(10), plan.Tone.Hue)
		assert.True(t, plan.Tone.Normalize)
		assert.Equal(t, converter.Dimensions{Width: 1920, Height: 1080}, plan.Target)
	}
}

func TestTransformer_NotAnImage(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty", buf: nil},
		{name: "html", buf: []byte("<!doctype html><html><body>nope</body></html>")},
		{name: "pdf", buf: []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &recordingProcessor{}
			_, err := NewTransformer(p, converter.DefaultProfile, zap.NewNop()).Transform(t.Context(), tc.buf, converter.Fit)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrDecode)
			assert.Empty(t, p.plans)
		})
	}
}

func TestTransformer_PropagatesProcessorError(t *testing.T) {
	failure := errors.New("vips exploded")
	p := &recordingProcessor{err: failure}

	_, err := NewTransformer(p, converter.DefaultProfile, zap.NewNop()).Transform(t.Context(), gradientJPEG(t, 16, 16), converter.Fill)
	assert.ErrorIs(t, err, failure)
}

func TestTransformer_UnknownOptionMatchesFit(t *testing.T) {
	tr := NewTransformer(format.MustNative(zap.NewNop()), converter.DefaultProfile, zap.NewNop())
	src := gradientJPEG(t, 2400, 1600)

	fit, err := tr.Transform(t.Context(), src, converter.Fit)
	require.NoError(t, err)

	for _, raw := range []string{"", "stretch", "FIT"} {
		out, err := tr.Transform(t.Context(), src, converter.MakeFromString(raw))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(fit, out), "option %q", raw)
	}

	out, err := tr.Transform(t.Context(), src, converter.Option{})
	require.NoError(t, err)
	assert.True(t, bytes.Equal(fit, out), "zero option")
}

func TestTransformer_RoundTrip(t *testing.T) {
	tr := NewTransformer(format.MustNative(zap.NewNop()), converter.DefaultProfile, zap.NewNop())

	out, err := tr.Transform(t.Context(), gradientJPEG(t, 3000, 2000), converter.Fill)
	require.NoError(t, err)

	cfg, kind, err := stdimage.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", kind)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
}

func TestMakeFromString(t *testing.T) {
	b, err := MakeFromString("vips")
	require.NoError(t, err)
	assert.Equal(t, VIPS, b)

	b, err = MakeFromString("native")
	require.NoError(t, err)
	assert.Equal(t, NATIVE, b)

	_, err = MakeFromString("imagemagick")
	assert.Error(t, err)
}

func TestStrategy_Apply(t *testing.T) {
	s := MustStrategy(zap.NewNop())
	assert.Same(t, s, MustStrategy(zap.NewNop()))

	assert.IsType(t, &format.Native{}, s.Apply(NATIVE))
	assert.IsType(t, &format.Vips{}, s.Apply(VIPS))
	assert.IsType(t, &format.Native{}, s.Apply(Backend{}))
}
