package posts

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnType is the semantic type a CSV column is parsed into.
type ColumnType int

const (
	Text ColumnType = iota
	Int64
	Category
)

func (c ColumnType) String() string {
	switch c {
	case Int64:
		return "int64"
	case Category:
		return "category"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(c))
	}
}

// ParseColumnType accepts the names used in config files.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int64", "integer", "int":
		return Int64, nil
	case "category", "categorical":
		return Category, nil
	case "text", "string", "str":
		return Text, nil
	}
	return Text, fmt.Errorf("%w: unknown column type %q", ErrMalformedInput, s)
}

// Schema maps a column name to the type its cells must parse as.
type Schema map[string]ColumnType

var required = Schema{
	ColPostID:   Int64,
	ColPostType: Category,
	ColComments: Int64,
	ColLikes:    Int64,
}

// DefaultSchema returns the contracted column types of the posts CSV.
func DefaultSchema() Schema {
	s := make(Schema, len(required))
	for k, v := range required {
		s[k] = v
	}
	return s
}

// Validate checks that every required column is declared with its
// contracted type. Extra columns are allowed.
func (s Schema) Validate() error {
	for _, name := range s.Required() {
		want := required[name]
		got, ok := s[name]
		if !ok {
			return fmt.Errorf("%w: schema does not declare column %q", ErrMalformedInput, name)
		}
		if got != want {
			return fmt.Errorf("%w: schema declares %q as %s, must be %s", ErrMalformedInput, name, got, want)
		}
	}
	return nil
}

// Required lists the required column names in header order.
func (s Schema) Required() []string {
	return []string{ColPostID, ColPostType, ColComments, ColLikes}
}

// Extra lists declared columns that are not required, sorted.
func (s Schema) Extra() []string {
	var out []string
	for name := range s {
		if _, ok := required[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ParseSchema builds a Schema from a column name to type name mapping, as
// found in config files. An empty mapping yields nil.
func ParseSchema(m map[string]string) (Schema, error) {
	if len(m) == 0 {
		return nil, nil
	}
	s := make(Schema, len(m))
	for name, typ := range m {
		ct, err := ParseColumnType(typ)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		s[name] = ct
	}
	return s, s.Validate()
}
