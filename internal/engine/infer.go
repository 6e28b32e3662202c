package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Candidates is the fixed, ordered delimiter candidate list tried when the
// caller did not set a delimiter.
var Candidates = []byte{',', '\t', ';', '|', ':', ' ', '~'}

// Config carries the caller-side state Infer needs to resolve one
// (delimiter, header) pair.
type Config struct {
	Delimiter  byte     // zero when unset
	Quote      byte     // zero disables quoted cells
	UserHeader []string // nil when the caller supplied no header
	Arity      int      // resolved field arity; <= 0 means the arity follows the header
	HeaderRow  int      // 1-based physical row of the header, for diagnostics
}

// Result is the resolved pair. CustomHeader records whether the caller's
// header was kept over the file-derived one.
type Result struct {
	Delimiter    byte
	Header       []string
	CustomHeader bool
}

// CandidateSplit records what one candidate delimiter made of the header
// row, for diagnostics on ambiguous input.
type CandidateSplit struct {
	Size  int
	Cells []string
	// DataSize is the first data row's column count under the same
	// candidate, -1 when that row was never consulted.
	DataSize int
}

// HeaderSizeMismatchError reports a fixed delimiter splitting the header
// row into a different number of columns than the user header carries.
type HeaderSizeMismatchError struct {
	Detected  int
	Expected  int
	Delimiter byte
	Row       int
}

func (e *HeaderSizeMismatchError) Error() string {
	return fmt.Sprintf(
		"engine: header of size %d split by %q on row %d does not match user header of size %d",
		e.Detected, printableDelim(e.Delimiter), e.Row, e.Expected)
}

// HeaderAmbiguousError reports that no candidate delimiter produced an
// acceptable header. Splits holds every candidate's outcome.
type HeaderAmbiguousError struct {
	Splits   map[byte]CandidateSplit
	Expected int
	Row      int
}

func (e *HeaderAmbiguousError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "engine: no delimiter candidate matched on row %d (expected size %d):", e.Row, e.Expected)
	delims := make([]byte, 0, len(e.Splits))
	for d := range e.Splits {
		delims = append(delims, d)
	}
	sort.Slice(delims, func(i, j int) bool { return delims[i] < delims[j] })
	for _, d := range delims {
		sp := e.Splits[d]
		fmt.Fprintf(b, " %q->%d", printableDelim(d), sp.Size)
		if sp.DataSize >= 0 {
			fmt.Fprintf(b, "/%d", sp.DataSize)
		}
	}
	return b.String()
}

func printableDelim(d byte) string {
	if d == '\t' {
		return "\\t"
	}
	return string(d)
}

// Infer resolves exactly one (delimiter, header) pair from the header line,
// consulting nextLine for the first data row only when both the delimiter
// and the header are unset. Four cases, per the caller-visible contract:
//
//  1. delimiter set, no user header: the split is the header.
//  2. delimiter set, user header: split length must equal the user
//     header's length, which is then kept.
//  3. delimiter unset, user header: first candidate whose split length
//     equals the user header's length wins.
//  4. delimiter unset, no user header: the candidate whose header-row and
//     data-row column counts agree, are non-zero, and fit the declared
//     arity wins; its header-row split becomes the header.
//
// A single row's column count cannot tell a correct delimiter from a wrong
// one that happens to split into plausible pieces, so case 4 anchors on
// agreement between two consecutive rows.
func Infer(headerLine string, nextLine func() (string, bool), cfg Config) (Result, error) {
	if cfg.Delimiter != 0 {
		cells := SplitQuoted(headerLine, cfg.Delimiter, cfg.Quote)
		if cfg.UserHeader == nil {
			return Result{Delimiter: cfg.Delimiter, Header: cells}, nil
		}
		if len(cells) == len(cfg.UserHeader) {
			return Result{Delimiter: cfg.Delimiter, Header: cfg.UserHeader, CustomHeader: true}, nil
		}
		return Result{}, &HeaderSizeMismatchError{
			Detected:  len(cells),
			Expected:  len(cfg.UserHeader),
			Delimiter: cfg.Delimiter,
			Row:       cfg.HeaderRow,
		}
	}

	splits := make(map[byte]CandidateSplit, len(Candidates))
	for _, d := range Candidates {
		cells := SplitQuoted(headerLine, d, cfg.Quote)
		if cfg.UserHeader != nil && len(cells) == len(cfg.UserHeader) {
			return Result{Delimiter: d, Header: cfg.UserHeader, CustomHeader: true}, nil
		}
		splits[d] = CandidateSplit{Size: len(cells), Cells: cells, DataSize: -1}
	}

	if cfg.UserHeader == nil {
		dataLine, ok := nextLine()
		if ok {
			for _, d := range Candidates {
				n := len(SplitRaw(dataLine, d))
				sp := splits[d]
				sp.DataSize = n
				splits[d] = sp
				if n > 0 && n == sp.Size && arityCompatible(n, cfg.Arity) {
					return Result{Delimiter: d, Header: sp.Cells}, nil
				}
			}
		}
	}

	return Result{}, &HeaderAmbiguousError{
		Splits:   splits,
		Expected: len(cfg.UserHeader),
		Row:      cfg.HeaderRow,
	}
}

func arityCompatible(n, arity int) bool {
	if arity <= 0 {
		return true
	}
	return n == arity
}
