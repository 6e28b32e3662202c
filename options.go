package csvbind

import "log/slog"

// Option configures a Parser at construction time. The same knobs are
// available as setters for mutation between parse calls.
type Option func(*config)

type config struct {
	header    []string
	delimiter byte
	quote     byte
	headerRow int
	strict    bool
	logger    *slog.Logger
}

// WithHeader supplies the header up front instead of deriving it from the
// file. Its length must equal the schema's field arity.
func WithHeader(columns ...string) Option {
	return func(c *config) { c.header = columns }
}

// WithDelimiter fixes the field delimiter instead of inferring it.
func WithDelimiter(d byte) Option {
	return func(c *config) { c.delimiter = d }
}

// WithQuote sets the quote character for string cells. Default is '"'.
func WithQuote(q byte) Option {
	return func(c *config) { c.quote = q }
}

// WithoutQuote disables quoted-cell handling entirely.
func WithoutQuote() Option {
	return func(c *config) { c.quote = 0 }
}

// WithHeaderRow selects the 1-based physical row holding the header. Rows
// before it are skipped entirely. Default is 1. A value below 1 is
// rejected at construction with a logged warning, like SetHeaderRow.
func WithHeaderRow(row int) Option {
	return func(c *config) { c.headerRow = row }
}

// WithStrict turns locally recovered defects (cell decode failures,
// unterminated quotes) into parse-call failures instead of silent zero
// substitution.
func WithStrict() Option {
	return func(c *config) { c.strict = true }
}

// WithLogger routes parse diagnostics to logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
