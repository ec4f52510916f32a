package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/qcar/dispatch/internal/pkg/database"
	"github.com/qcar/dispatch/internal/pkg/nats"
)

// BuildInfo contains information about the running build
type BuildInfo struct {
	Version     string    `json:"version"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// ReadinessReport is the per-dependency readiness state
type ReadinessReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Checker probes the service's dependencies
type Checker struct {
	db          *sqlx.DB
	redisClient *database.RedisClient
	natsClient  *nats.Client
}

// NewChecker creates a dependency checker
func NewChecker(db *sqlx.DB, redisClient *database.RedisClient, natsClient *nats.Client) *Checker {
	return &Checker{db: db, redisClient: redisClient, natsClient: natsClient}
}

// RegisterEndpoints registers the health check endpoints
func RegisterEndpoints(e *echo.Echo, serviceName string, checker *Checker) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, BuildInfo{
			Version:     os.Getenv("VERSION"),
			ServiceName: serviceName,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now(),
		})
	})

	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		report := ReadinessReport{Status: "ok", Checks: map[string]string{}}
		code := http.StatusOK

		fail := func(name string, err error) {
			report.Checks[name] = err.Error()
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if err := checker.db.PingContext(ctx); err != nil {
			fail("postgres", err)
		} else {
			report.Checks["postgres"] = "ok"
		}

		if err := checker.redisClient.Ping(ctx); err != nil {
			fail("redis", err)
		} else {
			report.Checks["redis"] = "ok"
		}

		if !checker.natsClient.IsConnected() {
			report.Checks["nats"] = "disconnected"
			report.Status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			report.Checks["nats"] = "ok"
		}

		return c.JSON(code, report)
	})
}
