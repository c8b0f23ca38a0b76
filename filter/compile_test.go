package filter

import (
	"reflect"
	"testing"
)

func TestCompileLeaves(t *testing.T) {
	limit := Column{Name: "limit", Type: TypeNumeric}
	tests := []struct {
		name     string
		spec     FilterSpec
		expected string
	}{
		{"equal", FilterSpec{Field: ageCol, Operation: Equal, Value: str("42")}, "age = 42"},
		{"equal column", FilterSpec{Field: ageCol, Operation: Equal, ColumnValue: &limit}, "age = limit"},
		{"equal prefers value", FilterSpec{Field: ageCol, Operation: Equal, Value: str("1"), ColumnValue: &limit}, "age = 1"},
		{"not equal", FilterSpec{Field: nameCol, Operation: NotEqual, Value: str("O'Brien")}, "name <> 'O''Brien'"},
		{"not equal column", FilterSpec{Field: ageCol, Operation: NotEqual, ColumnValue: &limit}, "age <> limit"},
		{"greater than", FilterSpec{Field: ageCol, Operation: GreaterThan, Value: str("-3.5")}, "age > -3.5"},
		{"less than date", FilterSpec{Field: bornCol, Operation: LessThan, Value: str("2000-01-01")}, "born < '2000-01-01'"},
		{"like", FilterSpec{Field: nameCol, Operation: Like, Value: str("%Al%")}, "name LIKE '%Al%'"},
		{"not like", FilterSpec{Field: bioCol, Operation: NotLike, Value: str("a_c")}, "bio NOT LIKE 'a_c'"},
		{"in", FilterSpec{Field: ageCol, Operation: In, ArrayValues: []string{"1", "2"}}, "age IN (1, 2)"},
		{"in empty", FilterSpec{Field: nameCol, Operation: In, ArrayValues: []string{}}, "name IN ()"},
		{"with true", FilterSpec{Field: activeCol, Operation: With, Value: str("T")}, "active = true"},
		{"with true word", FilterSpec{Field: activeCol, Operation: With, Value: str("TRUE")}, "active = true"},
		{"with false", FilterSpec{Field: activeCol, Operation: With, Value: str("f")}, "active = true OR active = false"},
		{"with false word", FilterSpec{Field: activeCol, Operation: With, Value: str("False")}, "active = true OR active = false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustNewFilter(tt.spec)
			if v := f.Validate(); len(v) != 0 {
				t.Fatalf("expected valid filter, got %v", kinds(v))
			}
			got := Format(compile(f))
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestCompileDeterministic(t *testing.T) {
	f := MustNewFilter(FilterSpec{Field: ageCol, Operation: In, ArrayValues: []string{"1", "2"}})
	a := compile(f)
	b := compile(f)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical predicates, got %#v and %#v", a, b)
	}
}

func TestCompileLiteralTypes(t *testing.T) {
	f := MustNewFilter(FilterSpec{Field: idCol, Operation: Equal, Value: str("00000000-0000-0000-0000-000000000001")})
	cmp, ok := compile(f).(*ComparisonPredicate)
	if !ok {
		t.Fatalf("expected *ComparisonPredicate, got %T", compile(f))
	}
	lit, ok := cmp.Right.(Literal)
	if !ok {
		t.Fatalf("expected Literal operand, got %T", cmp.Right)
	}
	if lit.Type != TypeUUID {
		t.Errorf("expected uuid literal, got %s", lit.Type)
	}
	u, err := lit.UUID()
	if err != nil {
		t.Fatalf("UUID failed: %v", err)
	}
	if u[15] != 1 {
		t.Errorf("unexpected uuid %s", u)
	}
}

func TestLiteralAccessors(t *testing.T) {
	if f, err := (Literal{Type: TypeNumeric, Text: "-3.5"}).Float(); err != nil || f != -3.5 {
		t.Errorf("expected -3.5, got %v, %v", f, err)
	}
	if _, err := (Literal{Type: TypeNumeric, Text: "abc"}).Float(); err == nil {
		t.Error("expected error for non-numeric literal")
	}

	tm, err := (Literal{Type: TypeDate, Text: "2024-01-15"}).Time()
	if err != nil {
		t.Fatalf("Time failed: %v", err)
	}
	if tm.Year() != 2024 || tm.Month() != 1 || tm.Day() != 15 {
		t.Errorf("unexpected time %v", tm)
	}

	for tok, want := range map[string]bool{"t": true, "TRUE": true, "F": false, "false": false} {
		got, err := (Literal{Type: TypeBoolean, Text: tok}).Bool()
		if err != nil || got != want {
			t.Errorf("%q: expected %v, got %v, %v", tok, want, got, err)
		}
	}
	if _, err := (Literal{Type: TypeBoolean, Text: "yes"}).Bool(); err == nil {
		t.Error("expected error for non-token")
	}

	if _, err := (Literal{Type: TypeUUID, Text: "{00000000-0000-0000-0000-000000000000}"}).UUID(); err == nil {
		t.Error("expected error for braced uuid")
	}
}
