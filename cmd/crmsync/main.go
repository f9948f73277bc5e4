package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/iudanet/crmsync/internal/auth"
	"github.com/iudanet/crmsync/internal/cli"
	"github.com/iudanet/crmsync/internal/cli/iocli"
	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/crm"
	"github.com/iudanet/crmsync/internal/gateway"
	"github.com/iudanet/crmsync/internal/models"
	"github.com/iudanet/crmsync/internal/ratelimit"
	"github.com/iudanet/crmsync/internal/storage/boltdb"
	"github.com/iudanet/crmsync/internal/storage/sqlite"
	syncengine "github.com/iudanet/crmsync/internal/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfgPath := flag.String("config", "crmsync.yaml", "Path to YAML configuration")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	stdio := iocli.NewStdio()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		os.Exit(1)
	}
	command := args[0]

	if command == "version" {
		printVersion()
		os.Exit(0)
	}

	if err := run(command, args[1:], *cfgPath, stdio); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, cfgPath string, stdio iocli.IO) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// Хранилище состояния синхронизации (BoltDB)
	state, err := boltdb.New(ctx, cfg.StateDB, cfg.StateSecret)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() {
		if err := state.Close(); err != nil {
			logger.Error("failed to close state database", "error", err)
		}
	}()

	// Локальное хранилище сущностей (SQLite)
	local, err := sqlite.New(ctx, cfg.LocalDB)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer func() {
		if err := local.Close(); err != nil {
			logger.Error("failed to close local database", "error", err)
		}
	}()

	tokens := crm.NewTokenClient(cfg.BaseURL, cfg.APIVersion, cfg.Timeout())
	mgr := auth.NewManager(tokens, state, cfg, logger)
	if err := mgr.LoadCached(ctx); err != nil {
		logger.Warn("failed to load cached credentials", "error", err)
	}

	if command == "login" {
		return cli.RunLogin(ctx, stdio, mgr, cfg)
	}

	limiter := ratelimit.New(cfg.RateLimitPerMinute, time.Minute)
	client := crm.NewClient(cfg.BaseURL, cfg.APIVersion, mgr, limiter,
		crm.DefaultRetryConfig(cfg.MaxRetries), cfg.Timeout(), logger)

	gateways := make(map[models.Family]gateway.Gateway)
	for _, family := range cfg.Families() {
		gw, err := gateway.ForFamily(client, family)
		if err != nil {
			return err
		}
		gateways[family] = gw
	}

	orch := syncengine.NewOrchestrator(cfg, local, state, gateways, logger)

	switch command {
	case "sync":
		return cli.RunSync(ctx, stdio, orch)
	case "auto":
		return cli.RunAuto(ctx, stdio, orch, cfg.SyncInterval())
	case "status":
		return cli.RunStatus(ctx, stdio, orch)
	case "history":
		return cli.RunHistory(ctx, stdio, orch, args)
	case "conflicts":
		return cli.RunConflicts(ctx, stdio, orch)
	case "resolve":
		return cli.RunResolve(ctx, stdio, orch, args)
	default:
		cli.PrintUsage(stdio)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printVersion() {
	fmt.Printf("crmsync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
