package criteria

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hugr-lab/criteria-go/filter"
	"github.com/hugr-lab/criteria-go/internal/recovery"
)

// Engine turns raw client criteria into predicates for one relation.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	columns     filter.ColumnResolver
	logger      *slog.Logger
	parallelism int
}

// New creates an Engine.
//
// Returns error if config is invalid (e.g., nil Columns).
//
// Example:
//
//	engine, err := criteria.New(criteria.Config{
//	    Columns: filter.Columns{
//	        "age":  filter.TypeNumeric,
//	        "name": filter.TypeString,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pred, err := engine.Compile(req.Criteria)
func New(config Config) (*Engine, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Engine{
		columns:     config.Columns,
		logger:      config.logger(),
		parallelism: config.parallelism(),
	}, nil
}

// Build resolves criteria against the engine's columns and returns an
// unvalidated filter set. Unknown columns are reported together; a panic
// in the column resolver is returned as an internal error.
func (e *Engine) Build(criteria []filter.Criterion) (*filter.FilterSet, error) {
	specs, err := recovery.Value(e.logger, "ResolveCriteria", func() ([]filter.FilterSpec, error) {
		return filter.ResolveCriteria(criteria, e.columns)
	})
	if err != nil {
		return nil, err
	}
	return filter.BuildFilterSet(specs, filter.WithLogger(e.logger))
}

// Compile validates criteria and returns the folded predicate.
// Invalid criteria yield a *filter.ValidationError listing every problem.
func (e *Engine) Compile(criteria []filter.Criterion) (filter.Predicate, error) {
	set, err := e.Build(criteria)
	if err != nil {
		return nil, err
	}
	return set.Predicate()
}

// CompileJSON parses a JSON array of criteria and compiles it.
func (e *Engine) CompileJSON(data []byte) (filter.Predicate, error) {
	criteria, err := filter.ParseCriteria(data)
	if err != nil {
		return nil, err
	}
	return e.Compile(criteria)
}

// CompileToken decodes a criteria token and compiles it.
func (e *Engine) CompileToken(token string) (filter.Predicate, error) {
	criteria, err := filter.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	return e.Compile(criteria)
}

// Apply validates criteria and folds them into scope, calling Where for
// AND filters and Or for OR filters in input order. A panic in the scope
// is returned as an internal error.
func (e *Engine) Apply(criteria []filter.Criterion, scope filter.Scope) (filter.Scope, error) {
	set, err := e.Build(criteria)
	if err != nil {
		return nil, err
	}
	return recovery.Value(e.logger, "Apply", func() (filter.Scope, error) {
		return set.Apply(scope)
	})
}

// BatchResult is the outcome of one request in CompileBatch.
type BatchResult struct {
	Predicate filter.Predicate
	Err       error
}

// CompileBatch compiles independent requests in parallel, bounded by
// Config.MaxParallelism. Results are returned in request order and each
// carries its own predicate or error. The returned error is non-nil only
// if ctx is done before every request was compiled.
func (e *Engine) CompileBatch(ctx context.Context, requests [][]filter.Criterion) ([]BatchResult, error) {
	results := make([]BatchResult, len(requests))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.parallelism)
	for i, req := range requests {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			pred, err := e.Compile(req)
			results[i] = BatchResult{Predicate: pred, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("criteria batch compiled", "requests", len(requests))
	return results, nil
}
