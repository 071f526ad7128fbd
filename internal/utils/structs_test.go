package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRow struct {
	ID       int64  `db:"id"`
	Nombre   string `db:"nombre"`
	Ignored  string `db:"-"`
	Untagged string
	hidden   string `db:"hidden"`
}

func TestStructTagValues(t *testing.T) {
	cols := StructTagValues(taggedRow{})
	assert.Equal(t, []string{"id", "nombre"}, cols)
}

func TestStructTagValuesPointer(t *testing.T) {
	cols := StructTagValues(&taggedRow{})
	assert.Equal(t, []string{"id", "nombre"}, cols)
}

func TestStructToMap(t *testing.T) {
	row := taggedRow{ID: 3, Nombre: "Salud", Ignored: "x", Untagged: "y", hidden: "z"}

	m := StructToMap(&row)
	assert.Equal(t, map[string]any{
		"id":     int64(3),
		"nombre": "Salud",
	}, m)
}

func TestErrorWrapOrNil(t *testing.T) {
	assert.NoError(t, ErrorWrapOrNil(nil, "context"))

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "failed to do thing")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "failed to do thing: boom", wrapped.Error())

	assert.Equal(t, base, ErrorWrapOrNil(base, ""))
}
