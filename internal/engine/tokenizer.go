// Package engine holds the row-level machinery behind csvbind: the
// quote-aware cell tokenizer and the header/delimiter inference pass.
// Only the root package is expected to import it.
package engine

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote reports a quoted cell whose closing quote was never
// found before the row ran out. Callers recover locally: the value returned
// alongside it is the best-effort literal remainder of the row.
var ErrUnterminatedQuote = errors.New("engine: unterminated quoted field")

// Scanner walks one logical row and yields delimiter-separated segments.
// Segment extraction follows getline semantics: a trailing delimiter does
// not produce an extra empty segment, while a leading one does.
type Scanner struct {
	row   string
	pos   int
	delim byte
	quote byte
}

// NewScanner returns a Scanner over row. quote may be zero to disable
// quoted-cell handling in NextQuoted.
func NewScanner(row string, delim, quote byte) *Scanner {
	return &Scanner{row: row, delim: delim, quote: quote}
}

// Next yields the next raw segment. ok is false once the row is exhausted.
func (s *Scanner) Next() (seg string, ok bool) {
	if s.pos >= len(s.row) {
		if s.pos == len(s.row) {
			// Position exactly at end: either the row was empty or the
			// previous segment consumed a trailing delimiter. Both read as
			// end-of-row.
			s.pos++
		}
		return "", false
	}
	if idx := strings.IndexByte(s.row[s.pos:], s.delim); idx >= 0 {
		seg = s.row[s.pos : s.pos+idx]
		s.pos += idx + 1
		return seg, true
	}
	seg = s.row[s.pos:]
	s.pos = len(s.row) + 1
	return seg, true
}

// NextQuoted yields the next cell as a string value. A cell whose first
// character is the quote character keeps consuming segments, re-inserting
// the delimiter literally, until a segment ends with the quote character.
// Both framing quotes are stripped. Exhausting the row first returns the
// accumulated literal together with ErrUnterminatedQuote.
func (s *Scanner) NextQuoted() (val string, ok bool, err error) {
	cell, ok := s.Next()
	if !ok {
		return "", false, nil
	}
	if cell == "" || s.quote == 0 || cell[0] != s.quote {
		return cell, true, nil
	}
	cell = cell[1:]
	if cell != "" && cell[len(cell)-1] == s.quote {
		return cell[:len(cell)-1], true, nil
	}
	for {
		seg, more := s.Next()
		if !more {
			return cell, true, ErrUnterminatedQuote
		}
		cell += string(s.delim) + seg
		if cell[len(cell)-1] == s.quote {
			return cell[:len(cell)-1], true, nil
		}
	}
}

// SplitQuoted splits row into dequoted cells. Unterminated quotes degrade
// to the literal remainder; SplitQuoted is used for header rows where local
// recovery is the right policy.
func SplitQuoted(row string, delim, quote byte) []string {
	sc := NewScanner(row, delim, quote)
	var cells []string
	for {
		cell, ok, _ := sc.NextQuoted()
		if !ok {
			return cells
		}
		cells = append(cells, cell)
	}
}

// SplitRaw splits row on every occurrence of delim with no quote handling.
// Used by inference when only the column count matters.
func SplitRaw(row string, delim byte) []string {
	sc := NewScanner(row, delim, 0)
	var cells []string
	for {
		cell, ok := sc.Next()
		if !ok {
			return cells
		}
		cells = append(cells, cell)
	}
}
