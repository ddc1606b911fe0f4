package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/daolite/schema"
)

func TestCapFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Note", schema.CapFirst("note"))
	assert.Equal(t, "Note", schema.CapFirst("Note"))
	assert.Equal(t, "A", schema.CapFirst("a"))
	assert.Equal(t, "", schema.CapFirst(""))
}

func TestUncapFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "note", schema.UncapFirst("Note"))
	assert.Equal(t, "note", schema.UncapFirst("note"))
	assert.Equal(t, "a", schema.UncapFirst("A"))
	assert.Equal(t, "", schema.UncapFirst(""))
}

func TestDBName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"id", "ID"},
		{"text", "TEXT"},
		{"creationDate", "CREATION_DATE"},
		{"orderItemCount", "ORDER_ITEM_COUNT"},
		{"Note", "NOTE"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, schema.DBName(tt.in))
		})
	}
}
