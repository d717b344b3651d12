// Command example serves the hello routes over gin and chi.
//
//	AUTH_SECRET_TOKEN=s3cret go run ./cmd/example
//	curl -X POST localhost:8080/api/hello -H 'Authorization: Bearer s3cret' -d '{"name":"Ada"}'
//	curl 'localhost:8080/api/hello'
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/funcroute/config"
	"github.com/kbukum/funcroute/logger"
	"github.com/kbukum/funcroute/observability"
	"github.com/kbukum/funcroute/server"
	"github.com/kbukum/funcroute/util"
	"github.com/kbukum/funcroute/version"
)

const serviceName = "example"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(serviceName, &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Version != "" && version.Version == "dev" {
		version.Version = cfg.Version
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.Global()
	log.Info("Starting service", version.Get().Fields())
	log.Debug("Auth configured", map[string]any{
		"secret_token": util.MaskSecret(cfg.Auth.SecretToken, 2),
		"hashed":       cfg.Auth.SecretTokenHash != "",
		"jwt":          cfg.Auth.JWT.Secret != "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := initTelemetry(ctx, &cfg)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	metrics, err := observability.NewRouteMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name)
	if err := registerRoutes(srv, deps{cfg: &cfg, log: log, metrics: metrics, now: time.Now}); err != nil {
		return err
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Info("Received shutdown signal")

	return srv.Stop(context.Background())
}

// initTelemetry installs OTLP trace and metric providers when an endpoint
// is configured. The returned func flushes and shuts them down.
func initTelemetry(ctx context.Context, cfg *Config) (func(), error) {
	if cfg.Telemetry.Endpoint == "" {
		return func() {}, nil
	}

	tc := observability.DefaultTracerConfig(cfg.Name)
	tc.ServiceVersion = version.Short()
	tc.Environment = cfg.Environment
	tc.Export = cfg.Telemetry.Export
	tc.SampleRate = cfg.Telemetry.SampleRate
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return nil, err
	}

	mc := observability.DefaultMeterConfig(cfg.Name)
	mc.ServiceVersion = tc.ServiceVersion
	mc.Environment = cfg.Environment
	mc.Export = cfg.Telemetry.Export
	mp, err := observability.InitMeter(ctx, mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, shutdown := range []func(context.Context) error{mp.Shutdown, tp.Shutdown} {
			if err := shutdown(sctx); err != nil {
				logger.Warn("Telemetry shutdown failed", logger.ErrorFields("shutdown", err))
			}
		}
	}, nil
}
