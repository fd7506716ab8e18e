package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("record not found")

	// ErrUnexpectedColumns reports a result set whose shape differs from the
	// record it is mapped into.
	ErrUnexpectedColumns = errors.New("unexpected result columns")
)

// NotFoundError reports a single-row lookup that matched nothing.
//
// It matches ErrNotFound and unwraps to pgx.ErrNoRows, so callers can test
// for either.
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table:%s: id %d: %s", e.Table, e.ID, pgx.ErrNoRows.Error())
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return pgx.ErrNoRows
}

// TableName names the table the lookup ran against.
func (e *NotFoundError) TableName() string {
	return e.Table
}

// DBTX is the part of a pgx connection the repository uses. *pgx.Conn and
// pgx.Tx both satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository runs the storefront queries over one connection.
//
// It does not synchronize: the connection handle is not safe for concurrent
// use, so callers must keep one operation in flight at a time.
type Repository struct {
	db  DBTX
	log *zerolog.Logger
}

// New returns a Repository over db. A nil logger discards output.
func New(db DBTX, logger *zerolog.Logger) *Repository {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Repository{db: db, log: logger}
}

// Initialize drops and recreates the customers, products and orders tables.
// All stored data is lost. Running it twice leaves the same empty schema.
func (r *Repository) Initialize(ctx context.Context) error {
	statements, err := database.ResetStatements()
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}

	r.log.Info().Int("statements", len(statements)).Msg("schema initialized")
	return nil
}

// checkColumns rejects result sets that do not have exactly want columns.
func checkColumns(rows pgx.Rows, want int) error {
	if got := len(rows.FieldDescriptions()); got != want {
		return fmt.Errorf("%w: got %d, want %d", ErrUnexpectedColumns, got, want)
	}
	return nil
}

// collect maps every row with scan. rows is always closed.
func collect[T any](rows pgx.Rows, columns int, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	if err := checkColumns(rows, columns); err != nil {
		return nil, err
	}

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// exec runs a write statement; the connection autocommits it.
func (r *Repository) exec(ctx context.Context, op, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	r.log.Debug().Str("op", op).Int64("rows_affected", tag.RowsAffected()).Msg("statement executed")
	return nil
}
