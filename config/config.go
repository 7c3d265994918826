package config

import (
	"github.com/caarlos0/env/v8"
	"log/slog"
	"time"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"Widescreen image resizer"`
	Port     string `env:"PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	Processor string `env:"PROCESSOR" envDefault:"native"`

	RequestTimeoutInSec int `env:"REQUEST_TIMEOUT_IN_SEC" envDefault:"30"`
	FetchTimeoutInSec   int `env:"FETCH_TIMEOUT_IN_SEC" envDefault:"10"`
	FetchMaxSizeInMB    int `env:"FETCH_MAX_SIZE_IN_MB" envDefault:"25"`

	RateLimitMaxRequests   int `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitDurationInSec int `env:"RATE_LIMIT_DURATION_IN_SEC" envDefault:"5"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	TraceStdout    bool `env:"TRACE_STDOUT" envDefault:"false"`

	S3Region    string `env:"S3_REGION"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
}

func New() *Config {
	conf, err := Parse()
	if err != nil {
		slog.Error(err.Error())

		panic("Failed to parse config")
	}

	return conf
}

func Parse() (*Config, error) {
	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutInSec) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutInSec) * time.Second
}

func (c *Config) FetchMaxSize() int {
	return c.FetchMaxSizeInMB << 20
}

func (c *Config) RateLimitDuration() time.Duration {
	return time.Duration(c.RateLimitDurationInSec) * time.Second
}

func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != ""
}
