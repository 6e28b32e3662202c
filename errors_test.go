package csvbind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlaxcs/csvbind"
)

func TestAppendIssuesInitializesNilDestination(t *testing.T) {
	var iss csvbind.Issues
	iss = csvbind.AppendIssues(iss, csvbind.Issue{Code: csvbind.CodeCellDecode, Path: "/row/2/cell/0"})
	iss = csvbind.AppendIssues(iss, csvbind.Issue{Code: csvbind.CodeUnterminatedQuote, Path: "/row/3/cell/1"})
	require.Len(t, iss, 2)
	assert.Equal(t, csvbind.CodeCellDecode, iss[0].Code)
	assert.Equal(t, csvbind.CodeUnterminatedQuote, iss[1].Code)
}

func TestStrictModeCollectsEveryRecoveredDefect(t *testing.T) {
	// Both bad cells of the row surface, not just the first.
	path := writeFile(t, "id:address:terrain\nnope:somewhere:abc\n")
	p, err := csvbind.New(propertySchema(), csvbind.WithDelimiter(':'), csvbind.WithStrict())
	require.NoError(t, err)

	_, err = p.Parse(path)
	iss, ok := csvbind.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, "/row/2/cell/0", iss[0].Path)
	assert.Equal(t, "/row/2/cell/2", iss[1].Path)
}
