// Package database opens the single PostgreSQL connection the storefront
// runs on and carries the schema the repository resets at startup.
//
// It handles:
//   - validating the connection URL from config
//   - connecting with pgx (one connection for the process lifetime, no pool)
//   - wiring statement tracing: New Relic (nrpgx5), local SQL logging
//     (pgx tracelog + pgx-zerolog) and slow statement warnings
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	loggerConfig "github.com/deppfellow/storefront/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgconn/ctxwatch"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// ErrInvalidConnectionURL is returned for connection strings that are not a
// usable postgres:// URL.
var ErrInvalidConnectionURL = errors.New("invalid database connection url")

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// Database owns the process-wide connection.
//
// *pgx.Conn is not safe for concurrent use; callers serialize access
// (see service.StoreService).
type Database struct {
	Conn *pgx.Conn
	log  *zerolog.Logger
}

// multiTracer fans pgx query events out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

type slowQueryStartKey struct{}

type slowQueryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer logs statements that take at least threshold at warn level.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
	now       func() time.Time
}

func newSlowQueryTracer(threshold time.Duration, log *zerolog.Logger) *slowQueryTracer {
	return &slowQueryTracer{threshold: threshold, log: log, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryStartKey{}, slowQueryStart{at: t.now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryStartKey{}).(slowQueryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}
	t.log.Warn().
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Str("sql", start.sql).
		Str("command_tag", data.CommandTag.String()).
		Err(data.Err).
		Msg("slow query")
}

// ParseConnectionURL validates the configured connection string and returns
// it as a pgx connection config. The database name is the URL path.
func ParseConnectionURL(raw string) (*pgx.ConnConfig, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionURL, err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidConnectionURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidConnectionURL)
	}
	if strings.Trim(u.Path, "/") == "" {
		return nil, fmt.Errorf("%w: missing database name", ErrInvalidConnectionURL)
	}

	connConfig, err := pgx.ParseConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionURL, err)
	}
	connConfig.BuildContextWatcherHandler = cancelRequestWatcher
	return connConfig, nil
}

// CancelRequestDeadlineDelay is how long the server gets to honour a cancel
// request before the connection is given up on.
const CancelRequestDeadlineDelay = 5 * time.Second

// cancelRequestWatcher makes an interrupted statement send a cancel request
// to the server instead of closing the connection, which is never reopened.
func cancelRequestWatcher(pgConn *pgconn.PgConn) ctxwatch.Handler {
	return &pgconn.CancelRequestContextWatcherHandler{
		Conn:          pgConn,
		DeadlineDelay: CancelRequestDeadlineDelay,
	}
}

// buildTracer assembles the statement tracers for the configured environment.
// It returns nil when nothing needs tracing.
func buildTracer(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Full SQL logging is noisy, so it only runs locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(cfg.Observability.Logging.SlowQueryThreshold, logger))
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return &multiTracer{tracers: tracers}
	}
}

// New connects to PostgreSQL and verifies the connection with a ping.
// Any failure here is meant to be fatal for the process.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	connConfig, err := ParseConnectionURL(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if tracer := buildTracer(cfg, logger, loggerService); tracer != nil {
		connConfig.Tracer = tracer
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{
		Conn: conn,
		log:  logger,
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout*time.Second)
	defer cancel()
	if err = conn.Ping(pingCtx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", connConfig.Host).
		Uint16("port", connConfig.Port).
		Str("database", connConfig.Database).
		Msg("connected to the database")

	return database, nil
}

// Ping checks the connection is still usable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Conn.Ping(ctx)
}

// Close closes the connection.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Conn.Close(ctx)
}
