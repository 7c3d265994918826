package main

import (
	"context"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/hyperdxio/otel-config-go/otelconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"log/slog"
	"widescreen/api/rest"
	"widescreen/config"
	"widescreen/converter"
	img "widescreen/converter/image"
	"widescreen/fetcher"
	"widescreen/service"
	"widescreen/shared/log"
	"widescreen/shared/metrics"
	"widescreen/shared/trace"
)

//	@title			Widescreen image resizer
//	@version		1.0
//	@description	Fetches a remote image and returns it as a color boosted 1920x1080 JPEG

// @BasePath	/
func main() {
	serviceConfig := config.New()

	ctx := context.Background()

	tp := trace.InitTrace(serviceConfig.TraceStdout)
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		slog.Error("Error configuring OpenTelemetry", "error", err)
	} else {
		defer otelShutdown()
	}

	logger := log.InitLogger(ctx, serviceConfig.LogLevel)
	defer func() {
		if err = logger.Sync(); err != nil {
			slog.Error("Error syncing logger", "error", err)
		}
	}()

	backend, err := img.MakeFromString(serviceConfig.Processor)
	if err != nil {
		logger.Warn("Falling back to native processor", zap.Error(err))
		backend = img.NATIVE
	}

	processor := img.MustStrategy(logger).Apply(backend)
	transformer := img.NewTransformer(processor, converter.DefaultProfile, logger)

	imageFetcher := fetcher.NewRegistry(logger).Register(fetcher.NewHTTP(fetcher.HTTPConfig{
		Timeout:     serviceConfig.FetchTimeout(),
		MaxBodySize: serviceConfig.FetchMaxSize(),
		UserAgent:   serviceConfig.AppName,
	}, logger), "http", "https")

	if serviceConfig.S3Enabled() {
		awsSession, err := session.NewSession(&aws.Config{
			Region:           aws.String(serviceConfig.S3Region),
			Credentials:      credentials.NewStaticCredentials(serviceConfig.S3AccessKey, serviceConfig.S3SecretKey, ""),
			Endpoint:         aws.String(serviceConfig.S3Endpoint),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			logger.Error(err.Error())
			panic("Failed to create aws session")
		}

		imageFetcher.Register(fetcher.NewS3(s3.New(awsSession), int64(serviceConfig.FetchMaxSize()), logger), "s3")
	}

	resizeMetrics := metrics.New(prometheus.Labels{"processor": backend.String()})

	var registry *prometheus.Registry
	if serviceConfig.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		resizeMetrics.Register(registry)
	}

	app := fiber.New(fiber.Config{
		AppName:      serviceConfig.AppName,
		ErrorHandler: rest.ErrorHandler(logger),
	})
	app.Use(
		recover.New(),
		requestid.New(requestid.Config{Generator: uuid.NewString}),
		otelfiber.Middleware(),
		fiberzap.New(fiberzap.Config{Logger: logger}),
		etag.New(),
		limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.IP() == "127.0.0.1"
			},
			Max:        serviceConfig.RateLimitMaxRequests,
			Expiration: serviceConfig.RateLimitDuration(),
		}),
		swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Widescreen image resizer",
		}),
	)

	imageService := service.NewImageService(imageFetcher, transformer, resizeMetrics, logger)

	rest.NewImageController(app, serviceConfig, imageService, logger)
	rest.NewMonitoringController(app, registry)

	logger.Info("Starting server", zap.String("port", serviceConfig.Port), zap.String("processor", backend.String()))

	if err = app.Listen(":" + serviceConfig.Port); err != nil {
		logger.Panic(err.Error())
		return
	}
}
