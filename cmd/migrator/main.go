package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/database"
	"github.com/vancomm/sanji/internal/repository"
	"github.com/vancomm/sanji/internal/wordbank"
)

func main() {
	seed := flag.Bool("seed", false, "replace the jukugo table with a word bank")
	words := flag.String("words", "", "CSV word bank to seed from (default: the embedded one)")
	flag.Parse()

	_ = godotenv.Load()

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, migrator, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		logger.Error("failed to connect to db", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
	} else {
		logger.Info("migration successful", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
		logger.Warn("failed to close migrator", slog.Any("source_error", srcErr), slog.Any("database_error", dbErr))
	}

	if !*seed {
		return
	}

	var bank wordbank.Bank
	if *words != "" {
		bank, err = wordbank.LoadFile(*words)
	} else {
		bank, err = wordbank.Default()
	}
	if err != nil {
		logger.Error("failed to load word bank", slog.Any("error", err))
		os.Exit(1)
	}

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		n, err := repository.New(tx).SeedWords(ctx, bank)
		if err != nil {
			return err
		}
		logger.Info("seeded word bank", slog.Int64("words", n))
		return nil
	})
	if err != nil {
		logger.Error("failed to seed word bank", slog.Any("error", err))
		os.Exit(1)
	}
}
