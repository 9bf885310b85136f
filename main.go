// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/db"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/redisstore"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/router"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "decide: %v\n", err)
		return middleware.ExitUsage
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		slog.Error("storage unavailable", "type", cfg.DatabaseType, "error", err)
		return middleware.ExitInternal
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.Error("close storage", "error", err)
		}
	}()
	slog.Debug("storage ready", "type", cfg.DatabaseType)

	clk := clock.System{}
	s := store.New(repo, clk, idgen.UUID{}, logger)
	r := router.NewRouter(s, cfg, clk, stdin)

	err = r.Dispatch(ctx, stdout, cfg.Args)
	if err != nil {
		if cfg.Output == cliparse.OutputJSON {
			middleware.ErrorResponse(stdout, err)
		} else {
			fmt.Fprintf(stderr, "decide: %v\n", err)
		}
	}
	return middleware.ExitCode(err)
}

// openRepository connects the configured backend and returns it with its
// close function.
func openRepository(ctx context.Context, cfg cliparse.Config) (store.Repository, func() error, error) {
	switch cfg.DatabaseType {
	case "memory":
		return store.NewMemoryRepository(), func() error { return nil }, nil

	case "redis":
		repo, err := redisstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	default:
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		// Create schema (tables)
		if err := db.CreateSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return db.NewSQLRepository(conn), conn.Close, nil
	}
}
