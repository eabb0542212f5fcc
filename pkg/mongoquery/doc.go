// Package mongoquery provides a chaining builder for MongoDB filter
// documents. Calls describe a query incrementally; the builder maintains a
// minimal, deduplicated filter tree instead of a naive accumulation of
// redundant clauses.
//
// Basic usage:
//
//	q, err := mongoquery.New().
//		Field("age").GreaterThan(21).LessOrEquals(65).
//		AndField("status").In("active", "pending").
//		Search(`hello wor*d "exact phrase"`).AllWordsIn("title").
//		Build()
//
// Build returns a bson.M ready for a collection Find call. OR groups are
// composed with Either/Or:
//
//	q, err := mongoquery.New().
//		Either().Field("role").Equals("admin").
//		Or().Field("owner").Equals(true).
//		Build()
//
// A builder is single-owner mutable state: share the built bson.M, not the
// builder. The first contract violation (empty field name, continuation
// before its initiator) freezes the builder; later calls are no-ops and
// Build returns the recorded error.
package mongoquery
