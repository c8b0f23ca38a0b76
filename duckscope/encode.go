package duckscope

import (
	"strings"

	"github.com/hugr-lab/criteria-go/filter"
)

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps filter column names to table column names.
	// Columns not in the map use their original names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column names to SQL expressions.
	// Takes precedence over ColumnMapping.
	ColumnExpressions map[string]string
}

// Encoder renders predicate trees as DuckDB SQL conditions with positional
// "?" parameters. Literal values are always bound, never inlined.
type Encoder struct {
	opts EncoderOptions
}

// NewEncoder creates a DuckDB encoder. If opts is nil, default options are used.
func NewEncoder(opts *EncoderOptions) *Encoder {
	e := &Encoder{}
	if opts != nil {
		e.opts = *opts
	}
	return e
}

// Encode converts p to a condition without the WHERE keyword, and returns
// the parameter values in placeholder order.
func (e *Encoder) Encode(p filter.Predicate) (string, []any, error) {
	var b builder
	if err := e.encode(&b, p); err != nil {
		return "", nil, err
	}
	return b.sb.String(), b.args, nil
}

type builder struct {
	sb   strings.Builder
	args []any
}

func (b *builder) write(s ...string) {
	for _, v := range s {
		b.sb.WriteString(v)
	}
}

func (e *Encoder) encode(b *builder, p filter.Predicate) error {
	switch pr := p.(type) {
	case *filter.AllRowsPredicate:
		b.write("TRUE")
	case *filter.ComparisonPredicate:
		return e.encodeComparison(b, pr)
	case *filter.MatchPredicate:
		b.write(e.column(pr.Column))
		if pr.Negated {
			b.write(" NOT LIKE ?")
		} else {
			b.write(" LIKE ?")
		}
		b.args = append(b.args, pr.Pattern)
	case *filter.InPredicate:
		return e.encodeIn(b, pr)
	case *filter.ConjunctionPredicate:
		b.write("(")
		if err := e.encode(b, pr.Left); err != nil {
			return err
		}
		b.write(") ", string(pr.Type), " (")
		if err := e.encode(b, pr.Right); err != nil {
			return err
		}
		b.write(")")
	default:
		return &UnsupportedPredicateError{Predicate: p}
	}
	return nil
}

func (e *Encoder) encodeComparison(b *builder, c *filter.ComparisonPredicate) error {
	left := e.column(c.Column)
	if c.Column.Type == filter.TypeUUID {
		left = "CAST(" + left + " AS VARCHAR)"
	}
	b.write(left, " ", string(c.Comparator), " ")

	switch r := c.Right.(type) {
	case filter.ColumnRef:
		right := e.column(r.Column)
		if r.Column.Type == filter.TypeUUID {
			right = "CAST(" + right + " AS VARCHAR)"
		}
		b.write(right)
		return nil
	case filter.Literal:
		return e.encodeLiteral(b, r)
	default:
		return &UnsupportedPredicateError{Predicate: c}
	}
}

func (e *Encoder) encodeIn(b *builder, in *filter.InPredicate) error {
	// An empty list matches nothing; "x IN ()" is not valid SQL.
	if len(in.Values) == 0 {
		b.write("FALSE")
		return nil
	}

	left := e.column(in.Column)
	if in.Column.Type == filter.TypeUUID {
		left = "CAST(" + left + " AS VARCHAR)"
	}
	b.write(left, " IN (")
	for i, v := range in.Values {
		if i > 0 {
			b.write(", ")
		}
		if err := e.encodeLiteral(b, v); err != nil {
			return err
		}
	}
	b.write(")")
	return nil
}

// encodeLiteral writes a placeholder for l and binds its typed value.
// Numeric values are compared as DOUBLE so that fractional bounds are not
// rounded to an integer column's type.
func (e *Encoder) encodeLiteral(b *builder, l filter.Literal) error {
	switch l.Type {
	case filter.TypeNumeric:
		f, err := l.Float()
		if err != nil {
			return err
		}
		b.write("CAST(? AS DOUBLE)")
		b.args = append(b.args, f)
	case filter.TypeDate, filter.TypeDatetime:
		t, err := l.Time()
		if err != nil {
			return err
		}
		b.write("CAST(? AS TIMESTAMP)")
		b.args = append(b.args, t.UTC())
	case filter.TypeBoolean:
		v, err := l.Bool()
		if err != nil {
			return err
		}
		b.write("?")
		b.args = append(b.args, v)
	case filter.TypeUUID:
		u, err := l.UUID()
		if err != nil {
			return err
		}
		b.write("?")
		b.args = append(b.args, u.String())
	default:
		b.write("?")
		b.args = append(b.args, l.Text)
	}
	return nil
}

// column returns the SQL expression for a filter column.
func (e *Encoder) column(c filter.Column) string {
	if expr, ok := e.opts.ColumnExpressions[c.Name]; ok {
		return expr
	}
	if mapped, ok := e.opts.ColumnMapping[c.Name]; ok {
		return quoteIdentifier(mapped)
	}
	return quoteIdentifier(c.Name)
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	return reservedWords[strings.ToUpper(name)]
}

// reservedWords is a simplified list of DuckDB keywords.
var reservedWords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"NOT": true, "NULL": true, "TRUE": true, "FALSE": true, "TABLE": true,
	"JOIN": true, "ON": true, "AS": true, "IN": true, "IS": true,
	"LIKE": true, "BETWEEN": true, "CASE": true, "WHEN": true, "THEN": true,
	"ELSE": true, "END": true, "ORDER": true, "BY": true, "GROUP": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "UNION": true, "ALL": true,
	"DISTINCT": true, "CAST": true, "DATE": true, "TIME": true, "TIMESTAMP": true,
	"USER": true, "DEFAULT": true, "CHECK": true, "UNIQUE": true, "PRIMARY": true,
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
