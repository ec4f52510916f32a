package main

import (
	"context"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qcar/dispatch/internal/pkg/config"
	"github.com/qcar/dispatch/internal/pkg/database"
	"github.com/qcar/dispatch/internal/pkg/fanout"
	"github.com/qcar/dispatch/internal/pkg/health"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/middleware"
	natspkg "github.com/qcar/dispatch/internal/pkg/nats"
	"github.com/qcar/dispatch/internal/pkg/server"

	dispatchgw "github.com/qcar/dispatch/services/dispatch/gateway"
	dispatchhttp "github.com/qcar/dispatch/services/dispatch/handler/http"
	dispatchnats "github.com/qcar/dispatch/services/dispatch/handler/nats"
	dispatchrepo "github.com/qcar/dispatch/services/dispatch/repository"
	dispatchuc "github.com/qcar/dispatch/services/dispatch/usecase"

	locationgw "github.com/qcar/dispatch/services/location/gateway"
	locationhttp "github.com/qcar/dispatch/services/location/handler/http"
	locationrepo "github.com/qcar/dispatch/services/location/repository"
	locationuc "github.com/qcar/dispatch/services/location/usecase"

	ordersgw "github.com/qcar/dispatch/services/orders/gateway"
	ordershttp "github.com/qcar/dispatch/services/orders/handler/http"
	ordersws "github.com/qcar/dispatch/services/orders/handler/websocket"
	ordersrepo "github.com/qcar/dispatch/services/orders/repository"
	ordersuc "github.com/qcar/dispatch/services/orders/usecase"
)

const serviceName = "qcar-dispatch"

func main() {
	cfg := config.InitConfig(".env")

	zapLogger, err := logger.NewZapLogger(cfg.Logger)
	if err != nil {
		os.Exit(1)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to postgres", logger.Err(err))
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", logger.Err(err))
	}

	natsClient, err := natspkg.NewClient(cfg.NATS.URL)
	if err != nil {
		logger.Fatal("failed to connect to nats", logger.Err(err))
	}

	// Repositories and gateways.
	orderRepo := ordersrepo.NewOrderRepo(cfg, db)
	driverRepo := dispatchrepo.NewDriverRepo(cfg, redisClient)
	profileRepo := dispatchrepo.NewProfileRepo(db)
	offerRepo := dispatchrepo.NewOfferRepo(redisClient)
	trackRepo := locationrepo.NewTrackRepo(db)

	orderGW := ordersgw.NewOrderGW(natsClient)
	dispatchGW := dispatchgw.NewDispatchGW(natsClient)
	locationGW := locationgw.NewLocationGW(natsClient)

	// Usecases.
	hub := fanout.NewHub()
	orderUC := ordersuc.NewOrderUC(cfg, orderRepo, orderGW, driverRepo, hub)
	dispatchUC := dispatchuc.NewDispatchUC(cfg, driverRepo, profileRepo, offerRepo, dispatchGW, orderUC, orderRepo)
	locationUC := locationuc.NewLocationUC(cfg, trackRepo, driverRepo, locationGW)

	// Event consumers.
	natsHandler := dispatchnats.NewHandler(dispatchUC, orderUC)
	if err := natsHandler.Start(natsClient); err != nil {
		logger.Fatal("failed to start nats consumers", logger.Err(err))
	}

	// HTTP surface.
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())

	ordershttp.RegisterRoutes(e, cfg.JWT,
		ordershttp.NewOrdersHandler(orderUC),
		ordersws.NewStreamHandler(orderUC, hub))
	dispatchhttp.RegisterRoutes(e, cfg.JWT, dispatchhttp.NewDispatchHandler(dispatchUC))
	locationhttp.RegisterRoutes(e, cfg.JWT, locationhttp.NewLocationHandler(locationUC))

	health.RegisterEndpoints(e, serviceName, health.NewChecker(db, redisClient, natsClient))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(context.Context) error {
		dispatchUC.Stop()
		return nil
	})
	shutdown.Register(func(context.Context) error {
		natsHandler.Stop()
		natsClient.Close()
		return nil
	})
	shutdown.Register(func(context.Context) error { return redisClient.Close() })
	shutdown.Register(func(context.Context) error { return db.Close() })

	srv := server.NewGracefulServer(e, zapLogger, cfg.Server.Port)
	if err := srv.Start(); err != nil {
		logger.Error("server stopped with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(ctx); err != nil {
		logger.Error("shutdown finished with errors", logger.Err(err))
	}
}
