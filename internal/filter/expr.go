// Package filter implements the boolean composition core: a typed filter
// expression tree in the MongoDB dialect, structural equality over it, and
// the merge machinery that keeps composed expressions minimal and canonical.
package filter

import (
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Operator is a MongoDB comparison operator key.
type Operator string

const (
	OpGt    Operator = "$gt"
	OpGte   Operator = "$gte"
	OpLt    Operator = "$lt"
	OpLte   Operator = "$lte"
	OpNe    Operator = "$ne"
	OpIn    Operator = "$in"
	OpRegex Operator = "$regex"
)

// Predicate constrains a single field. It is either a literal equality
// value or a set of operator clauses, never both.
type Predicate struct {
	literal   any
	isLiteral bool
	ops       map[Operator]any
}

// Equals returns a literal equality predicate.
func Equals(v any) *Predicate {
	return &Predicate{literal: v, isLiteral: true}
}

// Clause returns a single-operator predicate, e.g. {$gt: 21}.
func Clause(op Operator, v any) *Predicate {
	return &Predicate{ops: map[Operator]any{op: v}}
}

// IsLiteral reports whether p is a plain equality value.
func (p *Predicate) IsLiteral() bool { return p.isLiteral }

// Literal returns the equality value. Only meaningful when IsLiteral.
func (p *Predicate) Literal() any { return p.literal }

// Op returns the operand for op, if present.
func (p *Predicate) Op(op Operator) (any, bool) {
	if p.isLiteral {
		return nil, false
	}
	v, ok := p.ops[op]
	return v, ok
}

func (p *Predicate) deleteOp(op Operator) {
	delete(p.ops, op)
}

// Equal reports structural equality. Operator keys are compared without
// regard to insertion order; operand arrays are order-sensitive.
func (p *Predicate) Equal(q *Predicate) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.isLiteral != q.isLiteral {
		return false
	}
	if p.isLiteral {
		return valueEqual(p.literal, q.literal)
	}
	if len(p.ops) != len(q.ops) {
		return false
	}
	for op, v := range p.ops {
		w, ok := q.ops[op]
		if !ok || !valueEqual(v, w) {
			return false
		}
	}
	return true
}

func (p *Predicate) bson() any {
	if p.isLiteral {
		return p.literal
	}
	doc := bson.M{}
	for op, v := range p.ops {
		if list, ok := v.([]any); ok && op == OpIn {
			doc[string(op)] = bson.A(list)
			continue
		}
		doc[string(op)] = v
	}
	return doc
}

// Expr is a filter expression: per-field predicates plus optional $and/$or
// branches. The zero value is an empty filter matching everything.
type Expr struct {
	fields map[string]*Predicate
	and    []*Expr
	or     []*Expr
}

// New returns an empty expression.
func New() *Expr { return &Expr{} }

// FieldExpr returns a single-field expression {field: predicate}.
func FieldExpr(field string, p *Predicate) *Expr {
	e := New()
	e.SetField(field, p)
	return e
}

// Or wraps members as a {$or: members} expression.
func Or(members ...*Expr) *Expr {
	return &Expr{or: members}
}

// And wraps members as a {$and: members} expression.
func And(members ...*Expr) *Expr {
	return &Expr{and: members}
}

// Empty reports whether e constrains nothing.
func (e *Expr) Empty() bool {
	return e == nil || (len(e.fields) == 0 && len(e.and) == 0 && len(e.or) == 0)
}

// Field returns the predicate for a field, if present.
func (e *Expr) Field(name string) (*Predicate, bool) {
	p, ok := e.fields[name]
	return p, ok
}

// SetField sets the predicate for a field, replacing any existing one.
func (e *Expr) SetField(name string, p *Predicate) {
	if e.fields == nil {
		e.fields = make(map[string]*Predicate)
	}
	e.fields[name] = p
}

func (e *Expr) deleteField(name string) {
	delete(e.fields, name)
}

// Equal reports structural equality: field keys compared without regard to
// order, $and/$or member lists compared element-wise in order.
func (e *Expr) Equal(o *Expr) bool {
	if e == nil || o == nil {
		return e == o
	}
	if len(e.fields) != len(o.fields) {
		return false
	}
	for k, p := range e.fields {
		q, ok := o.fields[k]
		if !ok || !p.Equal(q) {
			return false
		}
	}
	return exprListEqual(e.and, o.and) && exprListEqual(e.or, o.or)
}

// ToBSON renders the expression as a driver-ready document.
func (e *Expr) ToBSON() bson.M {
	doc := bson.M{}
	if e == nil {
		return doc
	}
	for k, p := range e.fields {
		doc[k] = p.bson()
	}
	if len(e.and) > 0 {
		doc["$and"] = exprsToBSON(e.and)
	}
	if len(e.or) > 0 {
		doc["$or"] = exprsToBSON(e.or)
	}
	return doc
}

func exprsToBSON(list []*Expr) bson.A {
	out := make(bson.A, 0, len(list))
	for _, e := range list {
		out = append(out, e.ToBSON())
	}
	return out
}

func exprListEqual(a, b []*Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// containsExpr reports whether list already holds a structurally equal
// expression.
func containsExpr(list []*Expr, e *Expr) bool {
	for _, x := range list {
		if x.Equal(e) {
			return true
		}
	}
	return false
}

// appendUnique appends each expression not already present, preserving
// first-occurrence order.
func appendUnique(list []*Expr, exprs ...*Expr) []*Expr {
	for _, e := range exprs {
		if !containsExpr(list, e) {
			list = append(list, e)
		}
	}
	return list
}

func valueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// containsValue reports whether list holds a deep-equal value.
func containsValue(list []any, v any) bool {
	for _, x := range list {
		if valueEqual(x, v) {
			return true
		}
	}
	return false
}

// validStr reports whether s is usable as a field or operator name.
func validStr(s string) bool {
	return strings.TrimSpace(s) != ""
}
