// Package queryfile loads a declarative YAML description of a query and
// applies it to a filter builder. It exists for the CLI; programs normally
// use the builder directly.
package queryfile

import (
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"

	qerrors "github.com/shyam-dasgupta/mongo-query-builder/internal/errors"
	"github.com/shyam-dasgupta/mongo-query-builder/pkg/mongoquery"
)

// Query is the YAML schema. Field clauses are AND-ed; each entry in Or is
// an independent OR group whose members are themselves ANDs of clauses.
type Query struct {
	Fields []FieldClause  `yaml:"fields"`
	Search []SearchClause `yaml:"search"`
	Or     []OrGroup      `yaml:"or"`
}

// FieldClause describes comparisons for one field. Absent keys are skipped;
// an explicit null is indistinguishable from absent and also skipped.
type FieldClause struct {
	Field        string `yaml:"field"`
	Equals       any    `yaml:"equals"`
	NotEquals    any    `yaml:"not_equals"`
	Gt           any    `yaml:"gt"`
	Gte          any    `yaml:"gte"`
	Lt           any    `yaml:"lt"`
	Lte          any    `yaml:"lte"`
	In           []any  `yaml:"in"`
	Regex        string `yaml:"regex"`
	RegexOptions string `yaml:"regex_options"`
}

// SearchClause describes one full-text search over one or more fields.
type SearchClause struct {
	Text        string   `yaml:"text"`
	Fields      []string `yaml:"fields"`
	Mode        string   `yaml:"mode"` // "all" (default) or "any"
	WithinWords bool     `yaml:"within_words"`
}

// OrGroup is one disjunction; each member is a list of field clauses
// combined with AND.
type OrGroup struct {
	Members [][]FieldClause `yaml:"members"`
}

// Load reads and parses a query file.
func Load(path string) (*Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qerrors.QueryFileError(fmt.Sprintf("cannot read %s", path), err)
	}
	return Parse(data)
}

// Parse parses YAML into a validated Query.
func Parse(data []byte) (*Query, error) {
	var q Query
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, qerrors.QueryFileError("cannot parse query file", err)
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (q *Query) validate() error {
	for _, f := range q.Fields {
		if f.Field == "" {
			return qerrors.QueryFileError("field clause without a field name", nil)
		}
	}
	for _, s := range q.Search {
		if len(s.Fields) == 0 {
			return qerrors.QueryFileError(
				fmt.Sprintf("search %q without target fields", s.Text), nil)
		}
		switch s.Mode {
		case "", "all", "any":
		default:
			return qerrors.QueryFileError(
				fmt.Sprintf("unknown search mode %q", s.Mode), nil).
				WithDetail("mode", s.Mode)
		}
	}
	for _, g := range q.Or {
		for _, member := range g.Members {
			for _, f := range member {
				if f.Field == "" {
					return qerrors.QueryFileError("or member clause without a field name", nil)
				}
			}
		}
	}
	return nil
}

// Apply replays the description onto a builder.
func (q *Query) Apply(b *mongoquery.Builder) {
	for _, f := range q.Fields {
		applyClause(b, f)
	}
	for _, s := range q.Search {
		sb := b.Search(s.Text)
		if s.WithinWords {
			sb.WithinWords()
		}
		if s.Mode == "any" {
			sb.AnyWordIn(s.Fields...)
		} else {
			sb.AllWordsIn(s.Fields...)
		}
	}
	for _, g := range q.Or {
		b.Either()
		for i, member := range g.Members {
			if i > 0 {
				b.Or()
			}
			for _, f := range member {
				applyClause(b, f)
			}
		}
	}
}

// Build applies the description to a fresh builder and finishes it.
func (q *Query) Build() (bson.M, error) {
	b := mongoquery.New()
	q.Apply(b)
	return b.Build()
}

func applyClause(b *mongoquery.Builder, f FieldClause) {
	fld := b.Field(f.Field)
	if f.Equals != nil {
		fld.Equals(f.Equals)
	}
	if f.NotEquals != nil {
		fld.NotEquals(f.NotEquals)
	}
	if f.Gt != nil {
		fld.GreaterThan(f.Gt)
	}
	if f.Gte != nil {
		fld.GreaterOrEquals(f.Gte)
	}
	if f.Lt != nil {
		fld.LessThan(f.Lt)
	}
	if f.Lte != nil {
		fld.LessOrEquals(f.Lte)
	}
	if len(f.In) > 0 {
		fld.In(f.In...)
	}
	if f.Regex != "" {
		fld.Regex(f.Regex, f.RegexOptions)
	}
}
