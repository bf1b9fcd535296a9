package handler

import (
	"net/http"

	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler used for liveness probes and the root endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Vendor Service API is running",
		"version": "1.0.0",
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
