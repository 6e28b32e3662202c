package csvbind

import "fmt"

// MaxArity bounds the arity a Uniform schema may declare. It mirrors the
// deepest constructor shape the engine is willing to drive.
const MaxArity = 40

// Schema describes how one output value T is built from an ordered list of
// typed fields. It replaces runtime reflection: the caller states the
// field-kind signature up front and supplies the constructor.
//
// Build one with Positional, Uniform, or SliceOf.
type Schema[T any] struct {
	kinds []Kind
	bind  func(Row) T
	// flexible schemas take their arity from the finalized header
	// (slice targets); kinds then holds the single element kind.
	flexible bool
}

// Positional declares an ordered field-kind signature. bind receives the
// decoded values in declared order: value i is always passed at position
// i. A signature of one kind behaves like Uniform at arity one.
func Positional[T any](kinds []Kind, bind func(Row) T) Schema[T] {
	return Schema[T]{kinds: kinds, bind: bind}
}

// Uniform declares arity fields that all share one kind.
func Uniform[T any](kind Kind, arity int, bind func(Row) T) Schema[T] {
	kinds := make([]Kind, 0, max(arity, 0))
	for i := 0; i < arity; i++ {
		kinds = append(kinds, kind)
	}
	return Schema[T]{kinds: kinds, bind: bind}
}

// SliceOf declares that the output is itself a sequence of the uniform
// kind: no constructor runs and each decoded row is the container element
// directly. The arity follows the header, so any column count is accepted.
// E must be the Go type the kind materializes as (see Kind docs).
func SliceOf[E any](kind Kind) Schema[[]E] {
	return Schema[[]E]{
		kinds:    []Kind{kind},
		flexible: true,
		bind: func(r Row) []E {
			out := make([]E, 0, r.Len())
			for i := 0; i < r.Len(); i++ {
				e, _ := r.Value(i).(E)
				out = append(out, e)
			}
			return out
		},
	}
}

// Arity is the resolved number of fields, or 0 while it still follows the
// header (SliceOf before a parse).
func (s Schema[T]) Arity() int {
	if s.flexible {
		return 0
	}
	return len(s.kinds)
}

// Kinds returns a copy of the declared field-kind signature.
func (s Schema[T]) Kinds() []Kind {
	out := make([]Kind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// validate rejects schemas the parse driver cannot run. Checked once at
// parser construction, never per row.
func (s Schema[T]) validate() error {
	if s.bind == nil {
		return singleIssue(CodeArityMismatch, "schema has no constructor")
	}
	if s.flexible {
		return nil
	}
	n := len(s.kinds)
	if n < 1 {
		return singleIssue(CodeArityMismatch, "schema declares no fields")
	}
	if n > MaxArity {
		return singleIssue(CodeArityMismatch,
			fmt.Sprintf("schema declares %d fields, limit is %d", n, MaxArity))
	}
	return nil
}

// uniform reports whether every declared kind is the same. Positional
// schemas of one repeated kind behave identically to Uniform ones.
func (s Schema[T]) uniform() bool {
	for _, k := range s.kinds[1:] {
		if k != s.kinds[0] {
			return false
		}
	}
	return true
}

// Row holds one row's decoded values in declared field order.
type Row struct {
	vals []any
}

// Len is the number of decoded values.
func (r Row) Len() int { return len(r.vals) }

// Value returns the decoded value at position i, or nil out of range.
func (r Row) Value(i int) any {
	if i < 0 || i >= len(r.vals) {
		return nil
	}
	return r.vals[i]
}

// String returns the value at i when it decoded as KindString.
func (r Row) String(i int) string { v, _ := r.Value(i).(string); return v }

// Bool returns the value at i when it decoded as KindBool.
func (r Row) Bool(i int) bool { v, _ := r.Value(i).(bool); return v }

// Int returns the value at i when it decoded as KindInt.
func (r Row) Int(i int) int { v, _ := r.Value(i).(int); return v }

// Int64 returns the value at i when it decoded as KindInt64.
func (r Row) Int64(i int) int64 { v, _ := r.Value(i).(int64); return v }

// Uint64 returns the value at i when it decoded as KindUint64.
func (r Row) Uint64(i int) uint64 { v, _ := r.Value(i).(uint64); return v }

// Float64 returns the value at i when it decoded as KindFloat64.
func (r Row) Float64(i int) float64 { v, _ := r.Value(i).(float64); return v }
