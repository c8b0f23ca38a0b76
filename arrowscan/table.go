package arrowscan

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/criteria-go/filter"
)

// Table is an in-memory filter.Scope over Arrow record batches.
// It starts at all rows; Where and Or return new scopes and never modify
// the receiver. The batches are retained until Release.
type Table struct {
	schema  *arrow.Schema
	records []arrow.RecordBatch
	alloc   memory.Allocator
	pred    filter.Predicate
}

// NewTable creates a scope over records, which must all have schema.
func NewTable(schema *arrow.Schema, records ...arrow.RecordBatch) (*Table, error) {
	if schema == nil {
		return nil, errors.New("arrowscan: schema is required")
	}
	for i, r := range records {
		if !r.Schema().Equal(schema) {
			return nil, fmt.Errorf("arrowscan: record %d does not match the table schema", i)
		}
	}
	for _, r := range records {
		r.Retain()
	}
	return &Table{
		schema:  schema,
		records: records,
		alloc:   memory.DefaultAllocator,
		pred:    filter.AllRows,
	}, nil
}

// WithAllocator returns a copy of t that allocates filter masks from alloc.
func (t *Table) WithAllocator(alloc memory.Allocator) *Table {
	next := t.with(t.pred)
	next.alloc = alloc
	return next
}

// Release releases the batches retained by NewTable. Scopes derived from
// t share them and must not be scanned afterwards.
func (t *Table) Release() {
	for _, r := range t.records {
		r.Release()
	}
}

// Schema returns the table schema.
func (t *Table) Schema() *arrow.Schema { return t.schema }

// Columns returns a resolver over the filterable columns of the table.
func (t *Table) Columns() filter.Columns { return SchemaColumns(t.schema) }

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
func (t *Table) Predicate() filter.Predicate { return t.pred }

// Scan evaluates the scope's predicate over every batch and returns the
// matching rows. The caller must release the reader.
func (t *Table) Scan(ctx context.Context) (array.RecordReader, error) {
	out := make([]arrow.RecordBatch, 0, len(t.records))
	defer func() {
		for _, r := range out {
			r.Release()
		}
	}()

	for _, batch := range t.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		filtered, err := t.filterBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		out = append(out, filtered)
	}
	return array.NewRecordReader(t.schema, out)
}

// Count returns the number of rows matching the scope's predicate.
func (t *Table) Count(ctx context.Context) (int64, error) {
	var n int64
	for _, batch := range t.records {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		mask, err := Evaluate(t.pred, batch)
		if err != nil {
			return 0, err
		}
		for _, ok := range mask {
			if ok {
				n++
			}
		}
	}
	return n, nil
}

func (t *Table) filterBatch(ctx context.Context, batch arrow.RecordBatch) (arrow.RecordBatch, error) {
	mask, err := Evaluate(t.pred, batch)
	if err != nil {
		return nil, err
	}

	b := array.NewBooleanBuilder(t.alloc)
	defer b.Release()
	b.AppendValues(mask, nil)
	arr := b.NewArray()
	defer arr.Release()

	filtered, err := compute.FilterRecordBatch(compute.WithAllocator(ctx, t.alloc), batch, arr, compute.DefaultFilterOptions())
	if err != nil {
		return nil, fmt.Errorf("arrowscan: filter batch: %w", err)
	}
	return filtered, nil
}
