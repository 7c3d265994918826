package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MonitoringController struct {
	registry *prometheus.Registry
}

// NewMonitoringController serves /healthz and, with a registry, /metrics.
func NewMonitoringController(app *fiber.App, registry *prometheus.Registry) *MonitoringController {
	m := &MonitoringController{registry: registry}

	app.Get("/healthz", m.Health)

	if registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			Registry:          registry,
			EnableOpenMetrics: true,
		})))
	}

	return m
}

// Health
//
//	@Summary	Liveness probe
//	@Tags		monitoring
//	@Produce	plain
//	@Success	200	{string}	string	"ok"
//	@Router		/healthz [get]
func (m *MonitoringController) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
