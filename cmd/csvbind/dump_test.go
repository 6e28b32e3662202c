package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlaxcs/csvbind"
)

func TestBuildSchemaPositional(t *testing.T) {
	schema, err := buildSchema(schemaDoc{Fields: []string{"int", "string", "float64"}})
	require.NoError(t, err)
	assert.Equal(t, []csvbind.Kind{csvbind.KindInt, csvbind.KindString, csvbind.KindFloat64}, schema.Kinds())
	assert.Equal(t, 3, schema.Arity())
}

func TestBuildSchemaRejectsMixedModes(t *testing.T) {
	_, err := buildSchema(schemaDoc{Fields: []string{"int"}, Slice: "string"})
	assert.Error(t, err)
	_, err = buildSchema(schemaDoc{})
	assert.Error(t, err)
}

func TestBuildSchemaUnknownKind(t *testing.T) {
	_, err := buildSchema(schemaDoc{Fields: []string{"decimal"}})
	assert.Error(t, err)
}

func TestBuildOptionsDelimiter(t *testing.T) {
	opts, err := buildOptions(schemaDoc{Delimiter: ";", Quote: "'", HeaderRow: 2})
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	_, err = buildOptions(schemaDoc{Delimiter: "||"})
	assert.Error(t, err)

	opts, err = buildOptions(schemaDoc{Delimiter: "\\t"})
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
