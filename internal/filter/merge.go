package filter

// Merge reconciles two expressions into a merged expression and a residue
// holding whatever could not be reconciled. Structurally equal operands
// collapse to one. A key present on both sides with equal predicates is kept
// once; with different predicates the predicates are merged and any
// irreconcilable remainder lands in the residue under the same key. Keys
// unique to either side pass through to the merged expression unchanged.
// The residue is nil when everything reconciled.
func Merge(a, b *Expr) (*Expr, *Expr) {
	if a.Equal(b) {
		return a, nil
	}
	merged, residue := New(), New()
	for k, pa := range a.fields {
		pb, ok := b.fields[k]
		if !ok {
			merged.SetField(k, pa)
			continue
		}
		if pa.Equal(pb) {
			merged.SetField(k, pa)
			continue
		}
		m, r := mergePredicates(pa, pb)
		merged.SetField(k, m)
		if r != nil {
			residue.SetField(k, r)
		}
	}
	for k, pb := range b.fields {
		if _, ok := a.fields[k]; !ok {
			merged.SetField(k, pb)
		}
	}
	merged.and, residue.and = mergeBranch(a.and, b.and)
	merged.or, residue.or = mergeBranch(a.or, b.or)
	if residue.Empty() {
		return merged, nil
	}
	return merged, residue
}

// mergeBranch reconciles $and/$or member lists. Lists are atomic: equal
// lists collapse, different lists split into merged and residue.
func mergeBranch(a, b []*Expr) (m, r []*Expr) {
	switch {
	case len(a) == 0:
		return b, nil
	case len(b) == 0:
		return a, nil
	case exprListEqual(a, b):
		return a, nil
	default:
		return a, b
	}
}

// mergePredicates reconciles two differing predicates for the same field.
// A literal paired with an operator map puts the map in the merged slot and
// the literal in the residue; two differing literals are an irreducible
// pair. When both sides carry $in, the value lists are unioned rather than
// split, so repeated set-membership constraints never produce residue.
func mergePredicates(a, b *Predicate) (*Predicate, *Predicate) {
	if a.Equal(b) {
		return a, nil
	}
	if a.isLiteral && b.isLiteral {
		return a, b
	}
	if a.isLiteral {
		return b, a
	}
	if b.isLiteral {
		return a, b
	}

	merged := &Predicate{ops: make(map[Operator]any)}
	residue := &Predicate{ops: make(map[Operator]any)}

	ina, aok := a.ops[OpIn].([]any)
	inb, bok := b.ops[OpIn].([]any)
	unionedIn := aok && bok
	if unionedIn {
		merged.ops[OpIn] = unionValues(ina, inb)
	}

	for op, va := range a.ops {
		if op == OpIn && unionedIn {
			continue
		}
		vb, ok := b.ops[op]
		if !ok || valueEqual(va, vb) {
			merged.ops[op] = va
			continue
		}
		merged.ops[op] = va
		residue.ops[op] = vb
	}
	for op, vb := range b.ops {
		if op == OpIn && unionedIn {
			continue
		}
		if _, ok := a.ops[op]; !ok {
			merged.ops[op] = vb
		}
	}

	if len(residue.ops) == 0 {
		return merged, nil
	}
	return merged, residue
}

// unionValues merges two value lists, deduplicated by deep equality,
// preserving order of first occurrence.
func unionValues(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	for _, v := range a {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	for _, v := range b {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// MergeAll folds the expressions pairwise left to right, accumulating the
// residues each step produces, then recursively reduces the residues the
// same way. The head of the result is the fully merged expression; the tail
// is the smallest set of mutually irreconcilable remainders.
func MergeAll(exprs []*Expr) []*Expr {
	if len(exprs) == 0 {
		return nil
	}
	acc := exprs[0]
	var residues []*Expr
	for _, e := range exprs[1:] {
		m, r := Merge(acc, e)
		acc = m
		if r != nil {
			residues = appendUnique(residues, r)
		}
	}
	if len(residues) == 0 {
		return []*Expr{acc}
	}
	return append([]*Expr{acc}, MergeAll(residues)...)
}
