package duckscope

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hugr-lab/criteria-go/filter"
)

// Table is a filter.Scope over one DuckDB table or view. It starts at all
// rows; Where and Or return new scopes and never modify the receiver.
type Table struct {
	db     *sql.DB
	name   string
	enc    *Encoder
	logger *slog.Logger
	pred   filter.Predicate
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithEncoderOptions sets column mapping for the table.
func WithEncoderOptions(opts EncoderOptions) TableOption {
	return func(t *Table) {
		t.enc = NewEncoder(&opts)
	}
}

// WithLogger sets the logger used for executed queries.
func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTable creates a scope over all rows of the named table.
// The name is quoted when needed; a qualified name may be given as "schema.table".
func NewTable(db *sql.DB, name string, opts ...TableOption) (*Table, error) {
	if db == nil {
		return nil, fmt.Errorf("duckscope: db is required")
	}
	if name == "" {
		return nil, ErrNoTable
	}
	t := &Table{
		db:     db,
		name:   name,
		enc:    NewEncoder(nil),
		logger: slog.Default(),
		pred:   filter.AllRows,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Where implements filter.Scope.
func (t *Table) Where(p filter.Predicate) filter.Scope {
	return t.with(filter.And(t.pred, p))
}

// Or implements filter.Scope.
func (t *Table) Or(p filter.Predicate) filter.Scope {
	return t.with(filter.Or(t.pred, p))
}

func (t *Table) with(p filter.Predicate) *Table {
	next := *t
	next.pred = p
	return &next
}

// Predicate returns the accumulated predicate.
func (t *Table) Predicate() filter.Predicate {
	return t.pred
}

// Condition returns the WHERE clause body and its parameters.
func (t *Table) Condition() (string, []any, error) {
	return t.enc.Encode(t.pred)
}

// SQL returns a SELECT statement for the scope and its parameters.
// With no columns, all columns are selected.
func (t *Table) SQL(columns ...string) (string, []any, error) {
	cond, args, err := t.Condition()
	if err != nil {
		return "", nil, err
	}

	sel := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = quoteIdentifier(c)
		}
		sel = strings.Join(quoted, ", ")
	}
	return "SELECT " + sel + " FROM " + t.tableName() + " WHERE " + cond, args, nil
}

// Query runs the scope's SELECT.
func (t *Table) Query(ctx context.Context, columns ...string) (*sql.Rows, error) {
	query, args, err := t.SQL(columns...)
	if err != nil {
		return nil, err
	}
	t.logger.DebugContext(ctx, "duckscope query", "sql", query, "args", len(args))

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("duckscope: query %s: %w", t.name, err)
	}
	return rows, nil
}

// Count returns the number of rows in the scope.
func (t *Table) Count(ctx context.Context) (int64, error) {
	cond, args, err := t.Condition()
	if err != nil {
		return 0, err
	}
	query := "SELECT count(*) FROM " + t.tableName() + " WHERE " + cond
	t.logger.DebugContext(ctx, "duckscope count", "sql", query, "args", len(args))

	var n int64
	if err := t.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("duckscope: count %s: %w", t.name, err)
	}
	return n, nil
}

func (t *Table) tableName() string {
	parts := strings.Split(t.name, ".")
	for i, p := range parts {
		parts[i] = quoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
