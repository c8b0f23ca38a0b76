package filter

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var testColumns = Columns{
	"age":    "INTEGER",
	"limit":  "DECIMAL(10, 2)",
	"name":   "VARCHAR",
	"active": "BOOLEAN",
	"born":   "DATE",
}

func TestParseCriteriaEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		criteria, err := ParseCriteria(data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(criteria) != 0 {
			t.Errorf("expected 0 criteria, got %d", len(criteria))
		}
	}
}

func TestParseCriteria(t *testing.T) {
	data := []byte(`[
		{"field": "age", "operation": "GREATER_THAN", "value": "18"},
		{"field": "name", "operation": "LIKE", "value": "%Al%", "isOr": true},
		{"field": "age", "operation": "IN", "arrayValues": []},
		{"field": "age", "operation": "EQUAL", "columnValue": "limit"}
	]`)

	criteria, err := ParseCriteria(data)
	if err != nil {
		t.Fatalf("ParseCriteria failed: %v", err)
	}
	if len(criteria) != 4 {
		t.Fatalf("expected 4 criteria, got %d", len(criteria))
	}

	if criteria[0].Value == nil || *criteria[0].Value != "18" {
		t.Errorf("expected value 18, got %v", criteria[0].Value)
	}
	if criteria[0].ArrayValues != nil {
		t.Errorf("expected absent arrayValues, got %v", criteria[0].ArrayValues)
	}
	if !criteria[1].IsOr {
		t.Error("expected isOr on second criterion")
	}
	if criteria[2].ArrayValues == nil || len(criteria[2].ArrayValues) != 0 {
		t.Errorf("expected present empty arrayValues, got %#v", criteria[2].ArrayValues)
	}
	if criteria[3].ColumnValue == nil || *criteria[3].ColumnValue != "limit" {
		t.Errorf("expected columnValue limit, got %v", criteria[3].ColumnValue)
	}
}

func TestParseCriteriaInvalid(t *testing.T) {
	_, err := ParseCriteria([]byte(`{"field": "age"}`))
	if err == nil {
		t.Fatal("expected error for non-array JSON")
	}
	if !strings.Contains(err.Error(), "invalid criteria JSON") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestResolveCriteria(t *testing.T) {
	criteria := []Criterion{
		{Field: "age", Operation: "greater than", Value: str("18")},
		{Field: "age", Operation: "EQUAL", ColumnValue: str("limit")},
		{Field: "born", Operation: "between", Value: str("2000-01-01"), IsOr: true},
	}

	specs, err := ResolveCriteria(criteria, testColumns)
	if err != nil {
		t.Fatalf("ResolveCriteria failed: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("expected 3 specs, got %d", len(specs))
	}

	if specs[0].Field != (Column{Name: "age", Type: TypeNumeric}) {
		t.Errorf("unexpected field %#v", specs[0].Field)
	}
	if specs[0].Operation != GreaterThan {
		t.Errorf("expected GREATER_THAN, got %s", specs[0].Operation)
	}
	if specs[1].ColumnValue == nil || *specs[1].ColumnValue != (Column{Name: "limit", Type: TypeNumeric}) {
		t.Errorf("unexpected column value %#v", specs[1].ColumnValue)
	}

	// Unknown operations are carried through and rejected by validation.
	if specs[2].Operation != "BETWEEN" || specs[2].Operation.Known() {
		t.Errorf("expected unknown BETWEEN, got %s", specs[2].Operation)
	}
	if !specs[2].IsOr {
		t.Error("expected isOr carried through")
	}

	f := MustNewFilter(specs[2])
	expected := `born (type: date, operation: between, value: "2000-01-01"): operation must be one of: greater than, less than, with`
	if got := f.Message(); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestResolveCriteriaUnknownColumns(t *testing.T) {
	criteria := []Criterion{
		{Field: "height", Operation: "EQUAL", Value: str("1")},
		{Field: "age", Operation: "EQUAL", Value: str("1")},
		{Field: "age", Operation: "EQUAL", ColumnValue: str("width")},
	}

	_, err := ResolveCriteria(criteria, testColumns)
	if err == nil {
		t.Fatal("expected error for unknown columns")
	}

	var uerr *UnknownColumnError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *UnknownColumnError, got %T", err)
	}
	if uerr.Name != "height" {
		t.Errorf("expected first unknown column height, got %s", uerr.Name)
	}
	if !strings.Contains(err.Error(), `unknown column "width"`) {
		t.Errorf("expected width to be reported, got %v", err)
	}

	if _, err := ResolveCriteria(criteria, nil); err == nil {
		t.Error("expected error for nil resolver")
	}
}

func TestCriteriaMsgpackRoundTrip(t *testing.T) {
	criteria := []Criterion{
		{Field: "age", Operation: "IN", ArrayValues: []string{"1", "2"}},
		{Field: "name", Operation: "LIKE", Value: str("%Al%"), IsOr: true},
		{Field: "age", Operation: "EQUAL", ColumnValue: str("limit")},
	}

	data, err := EncodeCriteria(criteria)
	if err != nil {
		t.Fatalf("EncodeCriteria failed: %v", err)
	}
	got, err := DecodeCriteria(data)
	if err != nil {
		t.Fatalf("DecodeCriteria failed: %v", err)
	}
	if !reflect.DeepEqual(got, criteria) {
		t.Errorf("expected %#v, got %#v", criteria, got)
	}

	if _, err := DecodeCriteria([]byte{0xc1}); err == nil {
		t.Error("expected error for invalid msgpack")
	}
}
