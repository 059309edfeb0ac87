// Package main implements the entry point for the graphql-api service.
// It exposes a GraphQL facade over the portal content catalog: items,
// users, groups, surveys and their relations resolved on demand against
// the portal's REST API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dbouwman/graphql-api/gateway/graphql"
	"github.com/dbouwman/graphql-api/metric"
	"github.com/dbouwman/graphql-api/portal"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "graphql-api"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("%s %s (build %s)\n", appName, Version, BuildTime)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	if err := validateFlags(cliCfg); err != nil {
		return err
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg, err := loadConfig(cliCfg.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	// Portal client shared by every resolver
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	client := portal.NewClient(cfg.PortalURL, httpClient, logger)

	// Metrics and the resolver stack; the recorder sees both GraphQL
	// operations and the backend calls they fan out into
	registry := metric.NewRegistry()
	recorder := graphql.NewRecorder(registry, logger)
	client.SetCallRecorder(recorder)
	resolver := graphql.NewResolver(client, cfg, logger, recorder)

	server, err := graphql.NewServer(cfg, resolver, registry, logger)
	if err != nil {
		return err
	}
	if err := server.Setup(); err != nil {
		return err
	}

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ready := make(chan struct{})
	go func() {
		<-ready
		logger.Info("GraphQL API ready",
			"address", cfg.BindAddress,
			"path", cfg.Path)
	}()

	if err := server.Start(ctx, ready); err != nil {
		return err
	}

	return server.Stop(cliCfg.ShutdownTimeout)
}
