package mongoquery

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shyam-dasgupta/mongo-query-builder/internal/filter"
)

// Field is the comparison chain for one field. Every comparison returns the
// same Field so constraints can be stacked (GreaterThan then LessThan ends
// up as one {$gt, $lt} predicate, not two conflicting clauses).
type Field struct {
	b    *Builder
	name string
}

// Equals adds a literal equality constraint.
func (f *Field) Equals(v any) *Field {
	return f.matchAll(v)
}

// NotEquals adds a $ne constraint.
func (f *Field) NotEquals(v any) *Field {
	return f.compare(filter.OpNe, v)
}

// GreaterThan adds a $gt constraint.
func (f *Field) GreaterThan(v any) *Field {
	return f.compare(filter.OpGt, v)
}

// GreaterOrEquals adds a $gte constraint.
func (f *Field) GreaterOrEquals(v any) *Field {
	return f.compare(filter.OpGte, v)
}

// LessThan adds a $lt constraint.
func (f *Field) LessThan(v any) *Field {
	return f.compare(filter.OpLt, v)
}

// LessOrEquals adds a $lte constraint.
func (f *Field) LessOrEquals(v any) *Field {
	return f.compare(filter.OpLte, v)
}

// Regex adds a $regex constraint with the given options string.
func (f *Field) Regex(pattern, options string) *Field {
	return f.compare(filter.OpRegex, primitive.Regex{Pattern: pattern, Options: options})
}

// MatchesAll requires the field to satisfy every given value simultaneously.
func (f *Field) MatchesAll(values ...any) *Field {
	if f.b.frozen() {
		return f
	}
	if err := f.b.composer().MatchesAll(f.name, values...); err != nil {
		f.b.fail(err)
	}
	return f
}

// In requires the field to equal one of the given values. A single value is
// normalized to a plain equality rather than a degenerate $in.
func (f *Field) In(values ...any) *Field {
	return f.matchAny(values, false)
}

// AlsoIn extends any $in already present for the field with the given
// values; the lists are unioned without duplicates.
func (f *Field) AlsoIn(values ...any) *Field {
	return f.matchAny(values, true)
}

func (f *Field) matchAll(v any) *Field {
	if f.b.frozen() {
		return f
	}
	if err := f.b.composer().MatchesAll(f.name, v); err != nil {
		f.b.fail(err)
	}
	return f
}

func (f *Field) matchAny(values []any, addToExistingOr bool) *Field {
	if f.b.frozen() {
		return f
	}
	if err := f.b.composer().MatchesAny(f.name, values, addToExistingOr); err != nil {
		f.b.fail(err)
	}
	return f
}

func (f *Field) compare(op filter.Operator, v any) *Field {
	if f.b.frozen() {
		return f
	}
	if err := f.b.composer().Compare(f.name, op, v); err != nil {
		f.b.fail(err)
	}
	return f
}

// Chaining continuations back to the builder.

// AndField continues with another field.
func (f *Field) AndField(name string) *Field { return f.b.AndField(name) }

// Search starts a full-text search chain.
func (f *Field) Search(text string) *Search { return f.b.Search(text) }

// AndSearch continues the previous search.
func (f *Field) AndSearch() *Search { return f.b.AndSearch() }

// Either opens an OR group.
func (f *Field) Either() *Builder { return f.b.Either() }

// Or finalizes the current OR group member.
func (f *Field) Or() *Builder { return f.b.Or() }

// Build finishes the filter.
func (f *Field) Build() (bson.M, error) { return f.b.Build() }
