package criteria

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/criteria-go/arrowscan"
	"github.com/hugr-lab/criteria-go/duckscope"
	"github.com/hugr-lab/criteria-go/filter"
)

type person struct {
	name   string
	age    int64
	minAge int64
	active bool
	born   time.Time
}

var people = []person{
	{"Alice", 30, 18, true, time.Date(1994, 5, 1, 0, 0, 0, 0, time.UTC)},
	{"Bob", 17, 18, false, time.Date(2007, 3, 10, 0, 0, 0, 0, time.UTC)},
	{"Alan", 15, 12, true, time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)},
	{"Carol", 45, 45, true, time.Date(1979, 12, 24, 0, 0, 0, 0, time.UTC)},
	{"Dave", 61, 18, false, time.Date(1963, 7, 4, 0, 0, 0, 0, time.UTC)},
}

func peopleArrow(t *testing.T) *arrowscan.Table {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
		{Name: "min_age", Type: arrow.PrimitiveTypes.Int64},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
		{Name: "born", Type: arrow.FixedWidthTypes.Date32},
	}, nil)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	for _, p := range people {
		builder.Field(0).(*array.StringBuilder).Append(p.name)
		builder.Field(1).(*array.Int64Builder).Append(p.age)
		builder.Field(2).(*array.Int64Builder).Append(p.minAge)
		builder.Field(3).(*array.BooleanBuilder).Append(p.active)
		builder.Field(4).(*array.Date32Builder).Append(arrow.Date32FromTime(p.born))
	}
	rec := builder.NewRecordBatch()
	defer rec.Release()

	tbl, err := arrowscan.NewTable(schema, rec)
	if err != nil {
		t.Fatalf("arrowscan.NewTable failed: %v", err)
	}
	t.Cleanup(tbl.Release)
	return tbl
}

func peopleDuck(t *testing.T) *duckscope.Table {
	t.Helper()

	db, err := duckscope.Open("")
	if err != nil {
		t.Fatalf("DuckDB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE people (name VARCHAR, age BIGINT, min_age BIGINT, active BOOLEAN, born DATE)`); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for _, p := range people {
		query := fmt.Sprintf("INSERT INTO people VALUES ('%s', %d, %d, %t, DATE '%s')",
			p.name, p.age, p.minAge, p.active, p.born.Format("2006-01-02"))
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	tbl, err := duckscope.NewTable(db, "people")
	if err != nil {
		t.Fatalf("duckscope.NewTable failed: %v", err)
	}
	return tbl
}

// counter is implemented by both adapter tables.
type counter interface {
	Count(ctx context.Context) (int64, error)
}

func TestAdaptersAgree(t *testing.T) {
	arrowTbl := peopleArrow(t)
	duckTbl := peopleDuck(t)

	engine, err := New(Config{Columns: arrowTbl.Columns()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name     string
		criteria *Builder
		expected int64
	}{
		{"none", NewBuilder(), 5},
		{"adult or like", NewBuilder().Where("age", filter.GreaterThan, "18").Or("name", filter.Like, "%Al%"), 4},
		{"and chain", NewBuilder().Where("age", filter.GreaterThan, "16").Where("active", filter.With, "f"), 4},
		{"with true", NewBuilder().With("active", true), 3},
		{"column equal", NewBuilder().WhereColumn("age", filter.Equal, "min_age"), 1},
		{"not like", NewBuilder().Where("name", filter.NotLike, "%a%"), 2},
		{"in", NewBuilder().In("age", "17", "61", "99"), 2},
		{"empty in or", NewBuilder().In("name").Or("name", filter.Equal, "Dave"), 1},
		{"born before", NewBuilder().Where("born", filter.LessThan, "1990-01-01"), 2},
		{"or then and", NewBuilder().Where("age", filter.LessThan, "18").Or("age", filter.GreaterThan, "60").Where("active", filter.With, "true"), 1},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crit := tt.criteria.Criteria()
			for name, base := range map[string]filter.Scope{"arrow": arrowTbl, "duckdb": duckTbl} {
				scope, err := engine.Apply(crit, base)
				if err != nil {
					t.Fatalf("%s: Apply failed: %v", name, err)
				}
				n, err := scope.(counter).Count(ctx)
				if err != nil {
					t.Fatalf("%s: Count failed: %v", name, err)
				}
				if n != tt.expected {
					t.Errorf("%s: expected %d rows, got %d", name, tt.expected, n)
				}
			}
		})
	}
}
