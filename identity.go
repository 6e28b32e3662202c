package csvbind

import (
	"fmt"
	"sync/atomic"
)

// Keyer exposes an object's identity for map materialization.
type Keyer[K comparable] interface {
	Key() K
}

// syntheticID hands out fallback map keys for element types that carry no
// identity of their own. It is process-wide and only ever increments, so
// keys stay unique across every parse call in the process lifetime.
var syntheticID atomic.Int64

func nextSyntheticID() int64 {
	return syntheticID.Add(1)
}

// keyFunc resolves, once per parse call, how map keys are produced for T.
// Preference order: T implements Keyer[K], *T implements Keyer[K],
// synthetic ids (K must be int or int64).
func keyFunc[K comparable, T any]() (func(T) K, error) {
	var probe T
	if _, ok := any(probe).(Keyer[K]); ok {
		return func(v T) K { return any(v).(Keyer[K]).Key() }, nil
	}
	if _, ok := any(&probe).(Keyer[K]); ok {
		return func(v T) K { return any(&v).(Keyer[K]).Key() }, nil
	}
	var zeroKey K
	switch any(zeroKey).(type) {
	case int:
		return func(T) K { return any(int(nextSyntheticID())).(K) }, nil
	case int64:
		return func(T) K { return any(nextSyntheticID()).(K) }, nil
	}
	return nil, Issues{{
		Path:    "/",
		Code:    CodeArityMismatch,
		Message: fmt.Sprintf("%T has no Key() %T accessor and synthetic ids require an int or int64 key", probe, zeroKey),
	}}
}
