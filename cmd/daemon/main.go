package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/thenoetrevino/dealboard/internal/daemon"
	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	defaultDB, err := database.DefaultPath()
	if err != nil {
		defaultDB = "deals.db"
	}

	flags := pflag.NewFlagSet("dealboard-daemon", pflag.ExitOnError)
	addr := flags.String("addr", "127.0.0.1:7420", "listen address")
	dbPath := flags.String("db", defaultDB, "SQLite database path (\":memory:\" for a throwaway store)")
	token := flags.String("token", os.Getenv("DEALBOARD_TOKEN"), "require this bearer token (default $DEALBOARD_TOKEN)")
	seed := flags.Bool("seed", false, "load demo pipelines and deals into an empty store")
	debug := flags.Bool("debug", false, "log every request")
	_ = flags.Parse(os.Args[1:])

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logging.InitStderr(level)

	db, err := database.InitDB(ctx, *dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}
	}()

	repo := database.NewRepository(db)
	if *seed {
		if err := database.Seed(ctx, repo); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	var opts []daemon.Option
	if *token != "" {
		opts = append(opts, daemon.WithToken(*token))
	}

	server, err := daemon.NewServer(*addr, repo, opts...)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("dealboard daemon starting", "addr", server.Addr(), "db", *dbPath, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("dealboard daemon shut down gracefully")
}
