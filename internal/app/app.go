package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/database"
	"github.com/vancomm/sanji/internal/handlers"
	"github.com/vancomm/sanji/internal/middleware"
	"github.com/vancomm/sanji/internal/repository"
	"github.com/vancomm/sanji/internal/store"
	"github.com/vancomm/sanji/internal/wordbank"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	config     *config.App
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	players    handlers.PlayerRepo
	sessions   handlers.SessionStore
	bank       wordbank.Bank
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

type schemaMigrator interface {
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// finishMigration logs the schema version and releases the migrator's own
// connection.
func finishMigration(logger *slog.Logger, m schemaMigrator) {
	if version, dirty, err := m.Version(); err == nil {
		logger.Info("database migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Warn(
			"unable to close migrator",
			slog.Any("source_error", srcErr),
			slog.Any("database_error", dbErr),
		)
	}
}

// setup reads the configuration and opens every backing service. The returned
// func releases them.
func (a *App) setup(ctx context.Context) (func(), error) {
	var err error
	if a.config, err = config.NewApp(); err != nil {
		return nil, err
	}
	wordBankConfig, err := config.NewWordBank()
	if err != nil {
		return nil, err
	}

	pool, migrator, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to db: %w", err)
	}
	finishMigration(a.logger, migrator)
	repo := repository.New(pool)
	a.players = repo

	if a.jwt, err = config.NewJWT(); err != nil {
		pool.Close()
		return nil, err
	}
	if a.cookies, err = config.NewCookies(a.jwt); err != nil {
		pool.Close()
		return nil, err
	}
	if a.ws, err = config.NewWebSocket(); err != nil {
		pool.Close()
		return nil, err
	}

	if a.bank, err = wordbank.Load(ctx, wordBankConfig, repo); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to load word bank: %w", err)
	}
	a.logger.Info(
		"word bank loaded",
		slog.String("source", wordBankConfig.Source),
		slog.Int("words", len(a.bank)),
	)

	sessionDB, err := store.OpenMemory()
	if err != nil {
		pool.Close()
		return nil, err
	}
	sessionStore, err := store.NewStore(sessionDB, "sessions")
	if err != nil {
		sessionDB.Close()
		pool.Close()
		return nil, err
	}
	a.sessions = store.NewSessions(sessionStore)

	return func() {
		sessionDB.Close()
		pool.Close()
	}, nil
}

// handler is the router behind the middleware stack, mounted at the base path.
func (a *App) handler() http.Handler {
	var h http.Handler = a.router
	if base := a.config.BasePath; base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Auth(a.logger, a.cookies),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

func (a *App) Start(ctx context.Context) error {
	release, err := a.setup(ctx)
	if err != nil {
		return err
	}
	defer release()

	a.loadRoutes()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", a.config.Addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
