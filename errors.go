package csvbind

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeFileOpen reports a line source that could not be opened. Fatal.
	CodeFileOpen = "file_open"
	// CodeReadFailure reports an I/O failure on an already-open line
	// source, mid-parse. Fatal.
	CodeReadFailure = "read_failure"
	// CodeHeaderMismatch reports a fixed delimiter splitting the header row
	// into a different column count than the user-supplied header. Fatal.
	CodeHeaderMismatch = "header_mismatch"
	// CodeHeaderAmbiguous reports that no delimiter candidate could be
	// trusted. Params carry the per-candidate diagnostic splits. Fatal.
	CodeHeaderAmbiguous = "header_ambiguous"
	// CodeArityMismatch reports a finalized header whose length differs
	// from the schema's field arity. A caller programming error. Fatal.
	CodeArityMismatch = "arity_mismatch"
	// CodeUnterminatedQuote reports a quoted cell with no closing quote.
	// Recovered locally; surfaces only in strict mode.
	CodeUnterminatedQuote = "unterminated_quote"
	// CodeCellDecode reports a cell that could not be decoded as its
	// declared kind. Recovered by zero substitution; surfaces only in
	// strict mode.
	CodeCellDecode = "cell_decode"
	// CodeDisplayUnsupported reports an element type without a display
	// representation during inspection. Does not affect parsing.
	CodeDisplayUnsupported = "display_unsupported"
	// CodeParseError reports an unclassified failure caught at the parse
	// call boundary.
	CodeParseError = "parse_error"
)

// Issue represents a single parse error or recovered defect.
type Issue struct {
	Path    string // Slash-separated location (for example: /row/12/cell/3).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., candidate split sizes)
	// for diagnostics and observability.
	Params map[string]any
}

// Issues is a collection of parse errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first underlying cause so Issues participates in
// errors.Is/errors.As chains.
func (iss Issues) Unwrap() error {
	for _, it := range iss {
		if it.Cause != nil {
			return it.Cause
		}
	}
	return nil
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(code, msg string) Issues {
	return Issues{{Path: "/", Code: code, Message: msg}}
}
