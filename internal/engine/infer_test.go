package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noNextLine() (string, bool) { return "", false }

func nextLineOf(s string) func() (string, bool) {
	return func() (string, bool) { return s, true }
}

func TestInferFixedDelimiterFileHeader(t *testing.T) {
	res, err := Infer("id,name,score", noNextLine, Config{Delimiter: ',', Quote: '"', Arity: 3, HeaderRow: 1})
	require.NoError(t, err)
	assert.Equal(t, byte(','), res.Delimiter)
	assert.Equal(t, []string{"id", "name", "score"}, res.Header)
	assert.False(t, res.CustomHeader)
}

func TestInferFixedDelimiterUserHeaderKept(t *testing.T) {
	res, err := Infer("a;b;c", noNextLine, Config{
		Delimiter:  ';',
		Quote:      '"',
		UserHeader: []string{"x", "y", "z"},
		Arity:      3,
		HeaderRow:  1,
	})
	require.NoError(t, err)
	assert.True(t, res.CustomHeader)
	assert.Equal(t, []string{"x", "y", "z"}, res.Header)
}

func TestInferFixedDelimiterSizeMismatch(t *testing.T) {
	_, err := Infer("a;b", noNextLine, Config{
		Delimiter:  ';',
		Quote:      '"',
		UserHeader: []string{"x", "y", "z"},
		Arity:      3,
		HeaderRow:  4,
	})
	var mismatch *HeaderSizeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Detected)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, byte(';'), mismatch.Delimiter)
	assert.Equal(t, 4, mismatch.Row)
}

func TestInferCandidateAgainstUserHeader(t *testing.T) {
	res, err := Infer("a|b|c", noNextLine, Config{
		Quote:      '"',
		UserHeader: []string{"x", "y", "z"},
		Arity:      3,
		HeaderRow:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, byte('|'), res.Delimiter)
	assert.True(t, res.CustomHeader)
	assert.Equal(t, []string{"x", "y", "z"}, res.Header)
}

func TestInferCandidateUserHeaderNoMatch(t *testing.T) {
	_, err := Infer("a|b|c", noNextLine, Config{
		Quote:      '"',
		UserHeader: []string{"x", "y"},
		Arity:      2,
		HeaderRow:  1,
	})
	var ambiguous *HeaderAmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Splits, len(Candidates))
	assert.Equal(t, 3, ambiguous.Splits['|'].Size)
	assert.Equal(t, []string{"a", "b", "c"}, ambiguous.Splits['|'].Cells)
}

func TestInferTwoRowAgreement(t *testing.T) {
	res, err := Infer("c1,c2,c3", nextLineOf("Data Structures,C.Smith,demo.com/ds"), Config{
		Quote:     '"',
		Arity:     3,
		HeaderRow: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, byte(','), res.Delimiter)
	assert.Equal(t, []string{"c1", "c2", "c3"}, res.Header)
	assert.False(t, res.CustomHeader)
}

func TestInferDisagreeingDataRow(t *testing.T) {
	// Every candidate that splits the header into three columns splits the
	// data row differently, so no candidate can be trusted.
	_, err := Infer("a,b,c", nextLineOf("x,y"), Config{Quote: '"', Arity: 3, HeaderRow: 1})
	var ambiguous *HeaderAmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 3, ambiguous.Splits[','].Size)
	assert.Equal(t, 2, ambiguous.Splits[','].DataSize)
}

func TestInferArityFilter(t *testing.T) {
	// Both rows agree under ',' with three columns, but the declared arity
	// is two, so the candidate is rejected.
	_, err := Infer("a,b,c", nextLineOf("x,y,z"), Config{Quote: '"', Arity: 2, HeaderRow: 1})
	var ambiguous *HeaderAmbiguousError
	require.ErrorAs(t, err, &ambiguous)
}

func TestInferFlexibleArity(t *testing.T) {
	// Arity <= 0 accepts any agreeing column count (slice targets).
	res, err := Infer("a,b,c,d", nextLineOf("1,2,3,4"), Config{Quote: '"', Arity: 0, HeaderRow: 1})
	require.NoError(t, err)
	assert.Equal(t, byte(','), res.Delimiter)
	assert.Len(t, res.Header, 4)
}

func TestInferCandidateOrderWins(t *testing.T) {
	// "a,b" agrees under ',' and under no other candidate; "a b" would also
	// agree under space for a space-separated file. When several candidates
	// agree, the fixed order picks the earliest.
	res, err := Infer("a,b c,d", nextLineOf("1,2 3,4"), Config{Quote: '"', Arity: 3, HeaderRow: 1})
	require.NoError(t, err)
	assert.Equal(t, byte(','), res.Delimiter)
}
