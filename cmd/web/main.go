package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/envstruct"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/logging"
	"github.com/myrjola/bayescalc/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	engine         *bayes.Engine
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	pages          *pageTemplates
	db             *sqlite.Database
	requestTimeout time.Duration
}

const (
	sessionStoreMemory = "memory"
	sessionStoreSQLite = "sqlite"
)

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"BAYESCALC_ADDR" envDefault:"localhost:4000"`
	// SessionStore is either memory or sqlite.
	SessionStore string `env:"BAYESCALC_SESSION_STORE" envDefault:"memory"`
	// SqliteURL is the database file of the sqlite session store. ":memory:" keeps it in memory.
	SqliteURL       string        `env:"BAYESCALC_SQLITE_URL" envDefault:":memory:"`
	SessionLifetime time.Duration `env:"BAYESCALC_SESSION_LIFETIME" envDefault:"12h"`
	// RequestTimeout bounds handler execution. PDF reports need a few seconds for the browser to start.
	RequestTimeout time.Duration `env:"BAYESCALC_REQUEST_TIMEOUT" envDefault:"15s"`
	// SecureCookies sets the Secure flag of the session and CSRF cookies.
	SecureCookies bool `env:"BAYESCALC_SECURE_COOKIES" envDefault:"true"`
}

type loggingConfig struct {
	LogLevel string `env:"BAYESCALC_LOG_LEVEL" envDefault:"info"`
}

func newSessionManager(ctx context.Context, cfg config, logger *slog.Logger) (*scs.SessionManager, *sqlite.Database, error) {
	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.HttpOnly = true

	switch cfg.SessionStore {
	case sessionStoreMemory:
		sessionManager.Store = memstore.New()
		return sessionManager, nil, nil
	case sessionStoreSQLite:
		db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open session database")
		}
		sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, time.Hour)
		return sessionManager, db, nil
	default:
		return nil, nil, errors.New("unknown session store", slog.String("store", cfg.SessionStore))
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	sessionManager, db, err := newSessionManager(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
			}
		}()
		go db.StartDatabaseOptimizer(ctx, time.Hour)
	}

	var pages *pageTemplates
	if pages, err = parsePageTemplates(); err != nil {
		return errors.Wrap(err, "parse page templates")
	}

	app := application{
		logger:         logger,
		engine:         bayes.NewEngine(logger),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		pages:          pages,
		db:             db,
		requestTimeout: cfg.RequestTimeout,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func newLogger(lookupEnv func(string) (string, bool)) (*slog.Logger, error) {
	var cfg loggingConfig
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate logging config")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	handler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}))
	return slog.New(handler), nil
}

func main() {
	ctx := context.Background()
	bootLogger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLogger.LogAttrs(ctx, slog.LevelError, "failure loading .env", errors.SlogError(err))
		os.Exit(1)
	}

	logger, err := newLogger(os.LookupEnv)
	if err != nil {
		bootLogger.LogAttrs(ctx, slog.LevelError, "failure configuring logger", errors.SlogError(err))
		os.Exit(1)
	}

	if err = run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
