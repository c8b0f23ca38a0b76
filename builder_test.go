package criteria

import (
	"testing"

	"github.com/hugr-lab/criteria-go/filter"
)

func TestBuilderCriteria(t *testing.T) {
	b := NewBuilder().
		Where("age", filter.GreaterThan, "18").
		Or("name", filter.Like, "%Al%").
		In("id").
		OrIn("name", "Bob", "Carol").
		WhereColumn("age", filter.Equal, "min_age").
		With("active", false)

	crit := b.Criteria()
	if len(crit) != 6 {
		t.Fatalf("expected 6 criteria, got %d", len(crit))
	}

	if crit[0].IsOr || crit[0].Operation != "GREATER_THAN" || *crit[0].Value != "18" {
		t.Errorf("unexpected first criterion %+v", crit[0])
	}
	if !crit[1].IsOr {
		t.Error("expected second criterion to be OR'ed")
	}
	if crit[2].ArrayValues == nil || len(crit[2].ArrayValues) != 0 {
		t.Errorf("expected present empty list, got %#v", crit[2].ArrayValues)
	}
	if !crit[3].IsOr || len(crit[3].ArrayValues) != 2 {
		t.Errorf("unexpected OR IN criterion %+v", crit[3])
	}
	if crit[4].ColumnValue == nil || *crit[4].ColumnValue != "min_age" || crit[4].Value != nil {
		t.Errorf("unexpected column criterion %+v", crit[4])
	}
	if crit[5].Operation != "WITH" || *crit[5].Value != "false" {
		t.Errorf("unexpected WITH criterion %+v", crit[5])
	}

	// Criteria returns a copy.
	crit[0].Field = "changed"
	if b.Criteria()[0].Field != "age" {
		t.Error("expected builder to be unaffected by changes to the returned slice")
	}
}

func TestBuilderJSON(t *testing.T) {
	data, err := NewBuilder().
		Where("age", filter.GreaterThan, "18").
		OrIn("name", "Bob").
		JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	crit, err := filter.ParseCriteria(data)
	if err != nil {
		t.Fatalf("ParseCriteria failed: %v", err)
	}
	if len(crit) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(crit))
	}
	if crit[0].Field != "age" || *crit[0].Value != "18" || crit[0].ArrayValues != nil {
		t.Errorf("unexpected first criterion %+v", crit[0])
	}
	if !crit[1].IsOr || len(crit[1].ArrayValues) != 1 || crit[1].ArrayValues[0] != "Bob" {
		t.Errorf("unexpected second criterion %+v", crit[1])
	}
}
