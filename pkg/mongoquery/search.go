package mongoquery

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	qerrors "github.com/shyam-dasgupta/mongo-query-builder/internal/errors"
	"github.com/shyam-dasgupta/mongo-query-builder/internal/filter"
)

// Search is the full-text chain for one search text. Terminals compile the
// text into regex patterns and apply them to document fields as $regex
// constraints. Text that yields no tokens contributes nothing to the filter.
type Search struct {
	b           *Builder
	text        string
	withinWords bool
}

// WithinWords lets tokens match inside words instead of only at word
// beginnings (so "pot" also matches "teapot").
func (s *Search) WithinWords() *Search {
	s.withinWords = true
	return s
}

// AllWordsIn requires every search token to appear in at least one of the
// given fields. With several fields, the per-field constraints are OR-ed.
func (s *Search) AllWordsIn(fields ...string) *Search {
	return s.emit(fields, true)
}

// AnyWordIn requires at least one search token to appear in one of the
// given fields.
func (s *Search) AnyWordIn(fields ...string) *Search {
	return s.emit(fields, false)
}

func (s *Search) emit(fields []string, all bool) *Search {
	b := s.b
	if b.frozen() {
		return s
	}
	if len(fields) == 0 {
		b.fail(qerrors.InvalidArgumentError("fields", fields))
		return s
	}
	for _, fld := range fields {
		if strings.TrimSpace(fld) == "" {
			b.fail(qerrors.InvalidArgumentError("field", fld))
			return s
		}
	}

	pat, err := b.compiler.Compile(s.text, s.withinWords)
	if err != nil {
		b.fail(qerrors.New(qerrors.ErrCodeInternal, "cannot compile search pattern", err))
		return s
	}
	if pat == nil {
		// No tokens, no filter contribution.
		return s
	}

	src := pat.AnySource
	if all {
		src = pat.AllSource
	}
	rx := primitive.Regex{Pattern: src, Options: "i"}

	if len(fields) == 1 {
		if err := b.composer().Compare(fields[0], filter.OpRegex, rx); err != nil {
			b.fail(err)
		}
		return s
	}
	exprs := make([]*filter.Expr, 0, len(fields))
	for _, fld := range fields {
		exprs = append(exprs, filter.FieldExpr(fld, filter.Clause(filter.OpRegex, rx)))
	}
	b.composer().OrFold(exprs...)
	return s
}

// Chaining continuations back to the builder.

// Field starts a comparison chain.
func (s *Search) Field(name string) *Field { return s.b.Field(name) }

// AndField continues with another field.
func (s *Search) AndField(name string) *Field { return s.b.AndField(name) }

// AndSearch continues with the same text and mode.
func (s *Search) AndSearch() *Search { return s.b.AndSearch() }

// Either opens an OR group.
func (s *Search) Either() *Builder { return s.b.Either() }

// Or finalizes the current OR group member.
func (s *Search) Or() *Builder { return s.b.Or() }

// Build finishes the filter.
func (s *Search) Build() (bson.M, error) { return s.b.Build() }
