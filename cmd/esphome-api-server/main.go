package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/esphome-native/api-server/internal/audit"
	"github.com/esphome-native/api-server/internal/config"
	"github.com/esphome-native/api-server/internal/entities"
	"github.com/esphome-native/api-server/internal/httpstatus"
	"github.com/esphome-native/api-server/internal/server"
	"github.com/esphome-native/api-server/pkg/conn"
	"github.com/esphome-native/api-server/pkg/schema"
)

var (
	configPath = flag.String("config", "", "path to a YAML configuration file")
	listen     = flag.String("listen", "", "override the native API listen address")
	name       = flag.String("name", "", "override the device name")
	password   = flag.String("password", "", "override the legacy plaintext password")
	encKey     = flag.String("encryption-key", "", "override the base64 Noise pre-shared key")
	logLevel   = flag.String("log-level", "", "override the log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	overrides := collectOverrides()
	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "esphome-api-server: %v\n", err)
		os.Exit(1)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	printBanner(cfg)

	var auditLog *audit.Log
	if cfg.AuditDBPath != "" {
		auditLog, err = audit.Open(cfg.AuditDBPath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open audit log")
		}
		defer auditLog.Close()
	}

	version := schema.V2025_12_1
	entityRegistry := defaultEntities()

	srv := server.New(cfg, version, entityRegistry, auditLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statusServer := httpstatus.NewServer(cfg.StatusListen, conn.BuildDeviceInfo(cfg, version), srv.Registry(), auditLog)

	metricsServer := &http.Server{Addr: cfg.MetricsListen, Handler: promhttp.Handler()}

	errCh := make(chan error, 3)
	go func() { errCh <- srv.Run(ctx) }()
	go func() { errCh <- statusServer.Start(ctx) }()
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics: listen: %w", err)
			return
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logrus.WithField("signal", sig).Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logrus.WithError(err).Error("server exited with error")
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsServer.Shutdown(shutdownCtx)
}

func collectOverrides() map[string]any {
	overrides := map[string]any{}
	if *listen != "" {
		overrides["listen"] = *listen
	}
	if *name != "" {
		overrides["name"] = *name
	}
	if *password != "" {
		overrides["password"] = *password
	}
	if *encKey != "" {
		overrides["encryption_key"] = *encKey
	}
	if *logLevel != "" {
		overrides["log_level"] = *logLevel
	}
	return overrides
}

func printBanner(cfg *config.Config) {
	fmt.Println("esphome-api-server")
	fmt.Printf("  device:  %s\n", cfg.Name)
	fmt.Printf("  listen:  %s\n", cfg.Listen)
	fmt.Printf("  status:  %s\n", cfg.StatusListen)
	fmt.Printf("  metrics: %s\n", cfg.MetricsListen)
}

// defaultEntities seeds a small, representative set of entities so the
// server has real ListEntities/State/Command traffic to carry even
// without an external application wired in.
func defaultEntities() *entities.Registry {
	reg := entities.NewRegistry()
	reg.AddSensor(entities.NewSensor("temperature", "Temperature", "°C", "mdi:thermometer", 1))
	reg.AddSwitch(entities.NewSwitch("relay", "Relay", "mdi:toggle-switch"))
	reg.AddButton(entities.NewButton("restart", "Restart", "mdi:restart"))
	return reg
}
