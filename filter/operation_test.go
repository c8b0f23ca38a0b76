package filter

import "testing"

func TestParseOperation(t *testing.T) {
	tests := []struct {
		input    string
		expected Operation
		known    bool
	}{
		{"EQUAL", Equal, true},
		{"not_equal", NotEqual, true},
		{"Greater Than", GreaterThan, true},
		{" less_than ", LessThan, true},
		{"like", Like, true},
		{"NOT LIKE", NotLike, true},
		{"in", In, true},
		{"With", With, true},
		{"between", "BETWEEN", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, ok := ParseOperation(tt.input)
			if op != tt.expected || ok != tt.known {
				t.Errorf("expected (%s, %v), got (%s, %v)", tt.expected, tt.known, op, ok)
			}
		})
	}
}

func TestOperationDisplayName(t *testing.T) {
	if got := GreaterThan.DisplayName(); got != "greater than" {
		t.Errorf("expected 'greater than', got '%s'", got)
	}
	if got := Operation("STARTS_WITH").DisplayName(); got != "starts with" {
		t.Errorf("expected 'starts with', got '%s'", got)
	}
	if Operation("STARTS_WITH").Known() {
		t.Error("expected unknown operation")
	}
}

func TestSemanticTypeNormalize(t *testing.T) {
	tests := []struct {
		input    SemanticType
		expected SemanticType
	}{
		{"INTEGER", TypeNumeric},
		{"DECIMAL(18, 3)", TypeNumeric},
		{"double precision", TypeNumeric},
		{"VARCHAR(255)", TypeString},
		{"TEXT", TypeText},
		{"TIMESTAMP WITH TIME ZONE", TypeDatetime},
		{"Date", TypeDate},
		{"bool", TypeBoolean},
		{"UUID", TypeUUID},
		{"GEOMETRY", "geometry"},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := tt.input.Normalize(); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}

	if !TypeDate.IsTemporal() || TypeNumeric.IsTemporal() {
		t.Error("unexpected IsTemporal result")
	}
	if !TypeText.IsString() || TypeUUID.IsString() {
		t.Error("unexpected IsString result")
	}
}
