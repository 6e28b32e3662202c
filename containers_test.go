package csvbind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlaxcs/csvbind"
)

// point has value ordering but no identity accessor.
type point struct {
	X, Y int
}

func (p point) Less(other point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func pointSchema() csvbind.Schema[point] {
	return csvbind.Uniform(csvbind.KindInt, 2, func(r csvbind.Row) point {
		return point{X: r.Int(0), Y: r.Int(1)}
	})
}

func TestSequenceKeepsDuplicates(t *testing.T) {
	path := writeFile(t, "x,y\n1,2\n1,2\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	got, err := p.Parse(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSetDeduplicatesByValue(t *testing.T) {
	path := writeFile(t, "x,y\n3,4\n1,2\n3,4\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	got, err := csvbind.ParseSet(p, path)
	require.NoError(t, err)
	// Deduplicated and ordered by value, not by input order.
	assert.Equal(t, []point{{1, 2}, {3, 4}}, got)
}

func TestMapKeyedByIdentityAccessorLastWins(t *testing.T) {
	path := writeFile(t, "id:address:terrain\n4:first:1\n4:second:2\n")
	p, err := csvbind.New(propertySchema(), csvbind.WithDelimiter(':'))
	require.NoError(t, err)

	got, err := csvbind.ParseMap[int](p, path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, property{ID: 4, Address: "second", Terrain: 2}, got[4])
}

func TestMapSyntheticIDsAreSuccessive(t *testing.T) {
	path := writeFile(t, "x,y\n1,2\n3,4\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	got, err := csvbind.ParseMap[int64](p, path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	var lo, hi int64
	first := true
	for k := range got {
		if first {
			lo, hi = k, k
			first = false
			continue
		}
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	assert.Equal(t, int64(1), hi-lo)
	assert.Equal(t, point{1, 2}, got[lo])
	assert.Equal(t, point{3, 4}, got[hi])
}

func TestMapSyntheticIDsNeverReset(t *testing.T) {
	path := writeFile(t, "x,y\n1,2\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	first, err := csvbind.ParseMap[int64](p, path)
	require.NoError(t, err)
	second, err := csvbind.ParseMap[int64](p, path)
	require.NoError(t, err)

	for k1 := range first {
		for k2 := range second {
			assert.Greater(t, k2, k1)
		}
	}
}

func TestMapSyntheticIDsRequireIntKey(t *testing.T) {
	path := writeFile(t, "x,y\n1,2\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	_, err = csvbind.ParseMap[string](p, path)
	iss, ok := csvbind.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, csvbind.CodeArityMismatch, iss[0].Code)
}

// tagged exposes its identity through a pointer receiver.
type tagged struct {
	Tag  string
	Note string
}

func (tg *tagged) Key() string { return tg.Tag }

func TestMapKeyerOnPointerReceiver(t *testing.T) {
	schema := csvbind.Positional([]csvbind.Kind{csvbind.KindString, csvbind.KindString}, func(r csvbind.Row) tagged {
		return tagged{Tag: r.String(0), Note: r.String(1)}
	})
	p, err := csvbind.New(schema, csvbind.WithDelimiter(','))
	require.NoError(t, err)

	path := writeFile(t, "tag,note\nalpha,first\nbeta,second\n")
	got, err := csvbind.ParseMap[string](p, path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got["alpha"].Note)
	assert.Equal(t, "second", got["beta"].Note)
}

func TestParsePtrSharesConstructedValues(t *testing.T) {
	path := writeFile(t, "id:address:terrain\n1:a:2\n3:b:4\n")
	p, err := csvbind.New(propertySchema(), csvbind.WithDelimiter(':'))
	require.NoError(t, err)

	got, err := p.ParsePtr(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, property{ID: 1, Address: "a", Terrain: 2}, *got[0])
	assert.Equal(t, property{ID: 3, Address: "b", Terrain: 4}, *got[1])
}

func TestParseSetPtrDeduplicatesByValue(t *testing.T) {
	path := writeFile(t, "x,y\n5,6\n5,6\n1,1\n")
	p, err := csvbind.New(pointSchema(), csvbind.WithDelimiter(','))
	require.NoError(t, err)

	got, err := csvbind.ParseSetPtr(p, path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, point{1, 1}, *got[0])
	assert.Equal(t, point{5, 6}, *got[1])
}

func TestParseMapPtr(t *testing.T) {
	path := writeFile(t, "id:address:terrain\n8:addr:3\n")
	p, err := csvbind.New(propertySchema(), csvbind.WithDelimiter(':'))
	require.NoError(t, err)

	got, err := csvbind.ParseMapPtr[int](p, path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, property{ID: 8, Address: "addr", Terrain: 3}, *got[8])
}
