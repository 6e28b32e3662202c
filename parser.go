package csvbind

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vlaxcs/csvbind/internal/engine"
)

// DefaultQuote is the quote character a new Parser starts with.
const DefaultQuote byte = '"'

// Parser binds rows of one delimited file to values of T. A Parser is not
// safe for concurrent use; configuration may mutate between parse calls
// but never during one.
type Parser[T any] struct {
	schema Schema[T]

	userHeader []string
	delimiter  byte // zero until set or inferred
	quote      byte // zero when disabled
	headerRow  int
	strict     bool
	logger     *slog.Logger

	// resolved per parse call
	header       []string
	customHeader bool
}

// New constructs a Parser for schema. Schema validation and the
// header-vs-arity check run here: a parser that would fail on every file
// is never handed back.
func New[T any](schema Schema[T], opts ...Option) (*Parser[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	cfg := config{quote: DefaultQuote, headerRow: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.header != nil && !schema.flexible && len(cfg.header) != len(schema.kinds) {
		return nil, arityIssue(len(cfg.header), len(schema.kinds), cfg.header)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.headerRow < 1 {
		logger.Warn("rejected header row, index starts from 1", "row", cfg.headerRow)
		cfg.headerRow = 1
	}
	return &Parser[T]{
		schema:     schema,
		userHeader: cfg.header,
		delimiter:  cfg.delimiter,
		quote:      cfg.quote,
		headerRow:  cfg.headerRow,
		strict:     cfg.strict,
		logger:     logger,
	}, nil
}

// MustNew is New for static schemas where a construction error is a
// programming bug.
func MustNew[T any](schema Schema[T], opts ...Option) *Parser[T] {
	p, err := New(schema, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// SetDelimiter fixes the field delimiter for subsequent parse calls.
func (p *Parser[T]) SetDelimiter(d byte) { p.delimiter = d }

// SetQuote sets the quote character; zero disables quoted cells.
func (p *Parser[T]) SetQuote(q byte) { p.quote = q }

// SetHeaderRow selects the 1-based header row. Values below 1 are rejected
// with a logged warning and no state change.
func (p *Parser[T]) SetHeaderRow(row int) {
	if row < 1 {
		p.logger.Warn("rejected header row, index starts from 1", "row", row)
		return
	}
	p.headerRow = row
}

// SetHeader replaces the user-supplied header. Length must equal the
// schema's arity unless the schema is flexible.
func (p *Parser[T]) SetHeader(columns []string) error {
	if !p.schema.flexible && len(columns) != len(p.schema.kinds) {
		return arityIssue(len(columns), len(p.schema.kinds), columns)
	}
	p.userHeader = columns
	return nil
}

// Header returns the header finalized by the most recent parse call, or
// the user-supplied header before any parse.
func (p *Parser[T]) Header() []string {
	if p.header != nil {
		return p.header
	}
	return p.userHeader
}

// Delimiter returns the active delimiter, zero while still unset.
func (p *Parser[T]) Delimiter() byte { return p.delimiter }

func arityIssue(got, want int, header []string) Issues {
	return Issues{{
		Path:    "/header",
		Code:    CodeArityMismatch,
		Message: fmt.Sprintf("header length %d does not match field arity %d", got, want),
		Params:  map[string]any{"header": header, "arity": want},
	}}
}

// resolve runs header/delimiter inference against the header line and, for
// the two-row case, a peek at the first data line. On success the parser's
// header and delimiter are finalized for this call.
func (p *Parser[T]) resolve(headerLine string, nextLine func() (string, bool)) error {
	res, err := engine.Infer(headerLine, nextLine, engine.Config{
		Delimiter:  p.delimiter,
		Quote:      p.quote,
		UserHeader: p.userHeader,
		Arity:      p.schema.Arity(),
		HeaderRow:  p.headerRow,
	})
	if err != nil {
		return inferIssue(err)
	}
	if !p.schema.flexible && len(res.Header) != len(p.schema.kinds) {
		return arityIssue(len(res.Header), len(p.schema.kinds), res.Header)
	}
	p.delimiter = res.Delimiter
	p.header = res.Header
	p.customHeader = res.CustomHeader
	return nil
}

func inferIssue(err error) Issues {
	switch e := err.(type) {
	case *engine.HeaderSizeMismatchError:
		return Issues{{
			Path:    "/header",
			Code:    CodeHeaderMismatch,
			Message: e.Error(),
			Cause:   e,
			Params: map[string]any{
				"detected": e.Detected,
				"expected": e.Expected,
				"row":      e.Row,
			},
		}}
	case *engine.HeaderAmbiguousError:
		splits := make(map[string]any, len(e.Splits))
		for d, sp := range e.Splits {
			splits[string(d)] = map[string]any{
				"size":     sp.Size,
				"cells":    sp.Cells,
				"dataSize": sp.DataSize,
			}
		}
		return Issues{{
			Path:    "/header",
			Code:    CodeHeaderAmbiguous,
			Message: e.Error(),
			Cause:   e,
			Params:  map[string]any{"candidates": splits, "row": e.Row},
		}}
	}
	return Issues{{Path: "/header", Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// buildRow tokenizes and decodes one data row into a value of T.
//
// Uniform path: up to header-length cells are read and decoded as the
// single kind; failed cells degrade to the kind's zero value. Flexible
// schemas hand the whole decoded list to bind; fixed ones require at
// least arity cells.
//
// Positional path: one cell is consumed per declared kind, in order;
// missing trailing cells decode as empty (zero value).
func (p *Parser[T]) buildRow(line string, rowNum int) (T, Issues) {
	var zero T
	sc := engine.NewScanner(line, p.delimiter, p.quote)

	if p.schema.flexible || p.schema.uniform() {
		kind := p.schema.kinds[0]
		limit := len(p.header)
		vals := make([]any, 0, limit)
		var recovered Issues
		for i := 0; i < limit; i++ {
			cell, ok, iss := p.nextCell(sc, kind, rowNum, i)
			if !ok {
				break
			}
			recovered = AppendIssues(recovered, iss...)
			vals = append(vals, cell)
		}
		if p.strict && len(recovered) > 0 {
			return zero, recovered
		}
		if !p.schema.flexible && len(vals) < len(p.schema.kinds) {
			return zero, Issues{{
				Path:    fmt.Sprintf("/row/%d", rowNum),
				Code:    CodeParseError,
				Message: fmt.Sprintf("row has %d cells, schema needs %d", len(vals), len(p.schema.kinds)),
			}}
		}
		return p.schema.bind(Row{vals: vals}), nil
	}

	vals := make([]any, 0, len(p.schema.kinds))
	var recovered Issues
	for i, kind := range p.schema.kinds {
		cell, ok, iss := p.nextCell(sc, kind, rowNum, i)
		if !ok {
			// Row ran out of segments; remaining fields decode as empty.
			vals = append(vals, zeroOf(kind))
			continue
		}
		recovered = AppendIssues(recovered, iss...)
		vals = append(vals, cell)
	}
	if p.strict && len(recovered) > 0 {
		return zero, recovered
	}
	return p.schema.bind(Row{vals: vals}), nil
}

// nextCell consumes one cell and decodes it as kind. Decode failures and
// unterminated quotes are recovered in place: the returned value is then
// the zero value or the best-effort literal, and the defect is reported
// through the issue list.
func (p *Parser[T]) nextCell(sc *engine.Scanner, kind Kind, rowNum, col int) (any, bool, Issues) {
	path := fmt.Sprintf("/row/%d/cell/%d", rowNum, col)
	if kind == KindString {
		cell, ok, err := sc.NextQuoted()
		if !ok {
			return nil, false, nil
		}
		if err != nil {
			return cell, true, Issues{{
				Path:    path,
				Code:    CodeUnterminatedQuote,
				Message: "quoted cell never closed; kept literal remainder",
				Cause:   err,
			}}
		}
		return cell, true, nil
	}
	cell, ok := sc.Next()
	if !ok {
		return nil, false, nil
	}
	v, err := decodeCell(cell, kind)
	if err != nil {
		iss, _ := AsIssues(err)
		for i := range iss {
			iss[i].Path = path
		}
		return zeroOf(kind), true, iss
	}
	return v, true, nil
}

// logStats mirrors the finalized configuration once per parse call.
func (p *Parser[T]) logStats(name string) {
	delim := string(p.delimiter)
	if p.delimiter == '\t' {
		delim = "\\t"
	}
	p.logger.Info("fetching rows",
		"source", name,
		"columns", len(p.header),
		"delimiter", delim,
		"quote", string(p.quote),
		"headerRow", p.headerRow,
		"customHeader", p.customHeader,
	)
}
