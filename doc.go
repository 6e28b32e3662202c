package csvbind

// Package csvbind maps rows of a delimited text file onto caller-declared
// typed objects, without reflection: each output type states its ordered
// field-kind signature and constructor through a Schema.
//
// - Delimiter and header inference over a fixed candidate list, anchored
//   on column-count agreement between two consecutive rows
// - Quote-aware tokenization: string cells may embed the delimiter
//   literally between framing quotes
// - Kind-directed cell decoding with documented zero-value recovery
// - Result containers: sequence, value-ordered set, identity-keyed map,
//   plus shared-handle variants
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put the tokenizer and the
//   inference pass under internal/engine.
// - The CLI lives under cmd/csvbind.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := csvbind.Positional([]csvbind.Kind{csvbind.KindInt, csvbind.KindString}, func(r csvbind.Row) User {
//		return User{ID: r.Int(0), Name: r.String(1)}
//	})
//	p, err := csvbind.New(schema, csvbind.WithDelimiter(','))
//	users, err := p.Parse("users.csv")
