package csvbind

import (
	"fmt"
	"sort"
	"strings"
)

// Parse reads the file at path into an ordered sequence. Duplicates are
// kept in input order.
func (p *Parser[T]) Parse(path string) ([]T, error) {
	var out []T
	err := p.drive(path, func(v T) { out = append(out, v) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseFrom is Parse over an already-opened line source. The source is
// closed before ParseFrom returns, on every path.
func (p *Parser[T]) ParseFrom(src LineSource, name string) ([]T, error) {
	var out []T
	err := p.driveSource(src, name, func(v T) { out = append(out, v) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParsePtr is Parse returning shared handles to the constructed objects.
func (p *Parser[T]) ParsePtr(path string) ([]*T, error) {
	var out []*T
	err := p.drive(path, func(v T) {
		obj := v
		out = append(out, &obj)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Lesser is the strict weak ordering a set container element must supply.
// Two elements a, b are equal when neither a.Less(b) nor b.Less(a).
type Lesser[T any] interface {
	Less(other T) bool
}

// ParseSet reads the file into a value-ordered, deduplicated sequence.
// A row producing a value equal to one already present is dropped.
func ParseSet[T Lesser[T]](p *Parser[T], path string) ([]T, error) {
	var out []T
	err := p.drive(path, func(v T) {
		out = insertOrdered(out, v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseSetPtr is ParseSet returning shared handles; deduplication still
// runs on values, not on handle identity.
func ParseSetPtr[T Lesser[T]](p *Parser[T], path string) ([]*T, error) {
	set, err := ParseSet(p, path)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(set))
	for i := range set {
		out = append(out, &set[i])
	}
	return out, nil
}

func insertOrdered[T Lesser[T]](out []T, v T) []T {
	idx := sort.Search(len(out), func(i int) bool { return !out[i].Less(v) })
	if idx < len(out) && !v.Less(out[idx]) {
		// neither orders before the other: equal, deduplicate
		return out
	}
	out = append(out, v)
	copy(out[idx+1:], out[idx:])
	out[idx] = v
	return out
}

// ParseMap reads the file into an identity-keyed map. The key comes from
// the element's Key accessor when T (or *T) implements Keyer[K]; otherwise
// successive synthetic ids are assigned, which requires K to be int or
// int64. Last write wins on key collision.
func ParseMap[K comparable, T any](p *Parser[T], path string) (map[K]T, error) {
	keyOf, err := keyFunc[K, T]()
	if err != nil {
		return nil, err
	}
	out := make(map[K]T)
	if err := p.drive(path, func(v T) { out[keyOf(v)] = v }); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseMapPtr is ParseMap returning shared handles.
func ParseMapPtr[K comparable, T any](p *Parser[T], path string) (map[K]*T, error) {
	keyOf, err := keyFunc[K, T]()
	if err != nil {
		return nil, err
	}
	out := make(map[K]*T)
	err = p.drive(path, func(v T) {
		obj := v
		out[keyOf(obj)] = &obj
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// drive opens path and funnels every constructed object into emit.
func (p *Parser[T]) drive(path string, emit func(T)) error {
	src, err := FileLines(path)
	if err != nil {
		return err
	}
	return p.driveSource(src, path, emit)
}

// driveSource is the materializer: it resolves (delimiter, header) once,
// then walks the remaining lines, skipping blanks, building one object per
// row. Unclassified failures from a constructor are caught here and
// reported as CodeParseError rather than crashing the call.
func (p *Parser[T]) driveSource(src LineSource, name string, emit func(T)) (err error) {
	defer src.Close()
	defer func() {
		if r := recover(); r != nil {
			err = Issues{{
				Path:    "/",
				Code:    CodeParseError,
				Message: fmt.Sprintf("unexpected failure during materialization: %v", r),
			}}
		}
	}()

	// Rows strictly before the header row are read and discarded.
	for skip := 1; skip < p.headerRow; skip++ {
		if _, ok, err := src.Next(); err != nil {
			return readIssue(err)
		} else if !ok {
			return singleIssue(CodeHeaderAmbiguous, "input ended before the header row")
		}
	}
	headerLine, ok, err := src.Next()
	if err != nil {
		return readIssue(err)
	}
	if !ok {
		return singleIssue(CodeHeaderAmbiguous, "input has no header row")
	}

	// Inference may peek one data line; it must still be parsed as data.
	var peeked *string
	if err := p.resolve(headerLine, func() (string, bool) {
		line, ok, nerr := src.Next()
		if nerr != nil || !ok {
			return "", false
		}
		peeked = &line
		return line, true
	}); err != nil {
		return err
	}
	p.logStats(name)

	rowNum := p.headerRow
	handle := func(line string) error {
		rowNum++
		if strings.TrimSpace(line) == "" {
			return nil
		}
		obj, iss := p.buildRow(line, rowNum)
		if len(iss) > 0 {
			return iss
		}
		emit(obj)
		return nil
	}

	if peeked != nil {
		if err := handle(*peeked); err != nil {
			return err
		}
	}
	for {
		line, ok, nerr := src.Next()
		if nerr != nil {
			return readIssue(nerr)
		}
		if !ok {
			return nil
		}
		if err := handle(line); err != nil {
			return err
		}
	}
}

func readIssue(err error) Issues {
	return Issues{{Path: "/", Code: CodeReadFailure, Message: "read failure", Cause: err}}
}
