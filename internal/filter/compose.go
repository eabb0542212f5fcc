package filter

import (
	"log/slog"

	qerrors "github.com/shyam-dasgupta/mongo-query-builder/internal/errors"
)

// Composer owns a growing filter expression and applies AND/OR folds plus
// field-comparison primitives to it. A Composer is single-owner state; it
// is not safe for concurrent use and does not need to be.
type Composer struct {
	q   *Expr
	log *slog.Logger
}

// NewComposer returns a composer over an empty expression.
func NewComposer() *Composer {
	return &Composer{q: New()}
}

// SetLogger enables debug tracing of folds. A nil logger disables it.
func (c *Composer) SetLogger(log *slog.Logger) {
	c.log = log
}

// Query returns the current expression. The composer retains ownership;
// callers must treat it as read-only.
func (c *Composer) Query() *Expr { return c.q }

// Empty reports whether nothing has been composed yet.
func (c *Composer) Empty() bool { return c.q.Empty() }

// AndFold combines the current expression, its existing $and members, and
// the given expressions into one deduplicated list, merges the list down to
// a canonical head, and keeps the irreconcilable remainders as the new $and.
func (c *Composer) AndFold(exprs ...*Expr) {
	var list []*Expr
	if !c.q.Empty() {
		base := c.q
		existing := base.and
		base.and = nil
		if !base.Empty() {
			list = appendUnique(list, base)
		}
		list = appendUnique(list, existing...)
	}
	for _, e := range exprs {
		if !e.Empty() {
			list = appendUnique(list, e)
		}
	}
	if len(list) == 0 {
		return
	}
	reduced := MergeAll(list)
	q := reduced[0]
	q.and = appendUnique(q.and, reduced[1:]...)
	c.q = q
	if c.log != nil {
		c.log.Debug("and fold", "clauses", len(list), "residues", len(reduced)-1)
	}
}

// OrFold sets the given expressions as the $or branch. A single member is
// folded as a plain AND instead; an empty list is a no-op. When an OR group
// is already present, the old and new groups are demoted into the $and
// branch as separate {$or: …} wrappers, since two independent disjunctions
// cannot be merged without a cross-product.
func (c *Composer) OrFold(exprs ...*Expr) {
	var members []*Expr
	for _, e := range exprs {
		if !e.Empty() {
			members = appendUnique(members, e)
		}
	}
	switch {
	case len(members) == 0:
		return
	case len(members) == 1:
		c.AndFold(members[0])
	case len(c.q.or) > 0:
		prev := c.q.or
		c.q.or = nil
		c.q.and = appendUnique(c.q.and, Or(prev...), Or(members...))
		if c.log != nil {
			c.log.Debug("or fold demoted", "members", len(members))
		}
	default:
		c.q.or = members
		if c.log != nil {
			c.log.Debug("or fold", "members", len(members))
		}
	}
}

// MatchesAll AND-folds one single-field expression per value. Values may be
// literals or *Predicate operator clauses, so multiple simultaneous
// constraints on one field (say $gt and $lt) combine on one predicate.
func (c *Composer) MatchesAll(field string, values ...any) error {
	if !validStr(field) {
		return qerrors.InvalidArgumentError("field", field)
	}
	var exprs []*Expr
	for _, v := range values {
		exprs = appendUnique(exprs, FieldExpr(field, asPredicate(v)))
	}
	c.AndFold(exprs...)
	return nil
}

// MatchesAny applies a $in constraint for the field. A single value with no
// append request is just an equality and delegates to MatchesAll. Any $in
// list already present for the field is collected (and, when
// addToExistingOr is set, removed from the tree first), unioned with the
// new values, and re-applied through Compare.
func (c *Composer) MatchesAny(field string, values []any, addToExistingOr bool) error {
	if !validStr(field) {
		return qerrors.InvalidArgumentError("field", field)
	}
	if len(values) == 1 && !addToExistingOr {
		return c.MatchesAll(field, values[0])
	}
	var existing []any
	if p, ok := c.q.Field(field); ok {
		if v, ok := p.Op(OpIn); ok {
			if list, isList := v.([]any); isList {
				existing = list
				if addToExistingOr {
					p.deleteOp(OpIn)
					if len(p.ops) == 0 {
						c.q.deleteField(field)
					}
				}
			}
		}
	}
	return c.Compare(field, OpIn, unionValues(existing, values))
}

// Compare wraps {operator: value} as a predicate and AND-folds it, so raw
// comparator clauses re-enter the same merge and dedup path as everything
// else.
func (c *Composer) Compare(field string, op Operator, value any) error {
	if !validStr(field) {
		return qerrors.InvalidArgumentError("field", field)
	}
	if !validStr(string(op)) {
		return qerrors.InvalidArgumentError("operator", string(op))
	}
	return c.MatchesAll(field, Clause(op, value))
}

func asPredicate(v any) *Predicate {
	if p, ok := v.(*Predicate); ok {
		return p
	}
	return Equals(v)
}
