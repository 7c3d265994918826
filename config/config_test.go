package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PROCESSOR", "FETCH_TIMEOUT_IN_SEC", "FETCH_MAX_SIZE_IN_MB", "S3_ENDPOINT", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", conf.Port)
	assert.Equal(t, "native", conf.Processor)
	assert.Equal(t, 10*time.Second, conf.FetchTimeout())
	assert.Equal(t, 30*time.Second, conf.RequestTimeout())
	assert.Equal(t, 25<<20, conf.FetchMaxSize())
	assert.Equal(t, 5*time.Second, conf.RateLimitDuration())
	assert.True(t, conf.MetricsEnabled)
	assert.False(t, conf.S3Enabled())
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PROCESSOR", "vips")
	t.Setenv("FETCH_TIMEOUT_IN_SEC", "3")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")

	conf, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "vips", conf.Processor)
	assert.Equal(t, 3*time.Second, conf.FetchTimeout())
	assert.True(t, conf.S3Enabled())
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_IN_SEC", "soon")

	_, err := Parse()
	assert.Error(t, err)
	assert.Panics(t, func() { New() })
}
