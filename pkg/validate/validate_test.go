package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int64  `validate:"gt=0"`
	Email string `validate:"required,email"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{ID: 1, Email: "ann@example.com"}))

	err := Struct(sample{ID: 0, Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID must satisfy gt=0")
	assert.Contains(t, err.Error(), "Email must satisfy email")
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ann@example.com"))
	assert.False(t, Email(""))
	assert.False(t, Email("ann.example.com"))
}
