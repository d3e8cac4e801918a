package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/market-stats/src/data"
	"github.com/jiaming2012/market-stats/src/handler"
	"github.com/jiaming2012/market-stats/src/logger"
	"github.com/jiaming2012/market-stats/src/telemetry"
	"github.com/jiaming2012/market-stats/src/utils"
)

const serviceName = "market-stats"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Main: %v", err)
	}
}

func run() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	goEnv := utils.GetEnvOrDefault("GO_ENV", "development")
	if err := utils.InitEnvironmentVariables(utils.EnvFilename(goEnv)); err != nil {
		return err
	}

	if err := logger.Setup(utils.GetEnvOrDefault("LOG_LEVEL", "info"), utils.GetEnvOrDefault("LOG_FORMAT", logger.FormatText)); err != nil {
		return err
	}

	log.Infof("Log level set to %v", log.GetLevel())

	if strings.ToLower(utils.GetEnvOrDefault("OTEL_ENABLED", "false")) == "true" {
		otelShutdown, setupErr := telemetry.SetupOTelSDK(ctx, telemetry.NewDefaultConfig(serviceName))
		if setupErr != nil {
			return fmt.Errorf("failed to setup otel sdk: %w", setupErr)
		}

		// Handle shutdown properly so nothing leaks.
		defer func() {
			err = errors.Join(err, otelShutdown(context.Background()))
		}()
	}

	// Load config
	configFile := utils.GetEnvOrDefault("SERVER_CONFIG_FILE", utils.DefaultServerConfigFile)
	config, err := utils.LoadServerConfig(configFile)
	if err != nil {
		return err
	}

	sources, err := config.SourceDirectories()
	if err != nil {
		return err
	}

	for _, source := range sources.Sources() {
		dir, _ := sources.Directory(source)
		log.WithField("source", source).Infof("serving %s", dir)
	}

	// Setup router
	router := mux.NewRouter()
	handler.SetupHandler(router, data.NewSeriesLoader(sources))

	if config.Debug {
		handler.SetupPprofHandler(router, "/debug/pprof")
	}

	srv := &http.Server{
		Handler:      otelhttp.NewHandler(router, serviceName),
		Addr:         fmt.Sprintf(":%s", config.Port),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Infof("listening on :%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Create channel for shutdown signals.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	log.Info("Main: init complete")

	select {
	case <-stop:
	case err := <-serverErr:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	log.Info("Main: gracefully stopped!")

	return nil
}
