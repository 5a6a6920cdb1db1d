package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "[INPUT_ERROR] bad cycle", Input("bad cycle").Error())
	assert.Equal(t, "[PARSING_ERROR] bad file: file does not exist",
		Parsing("bad file", fs.ErrNotExist).Error())
	assert.Equal(t, "[NOT_FOUND] service not found: dns", NotFound("service", "dns").Error())
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading: %w", Catalog("invalid", nil))

	assert.True(t, IsType(err, TypeCatalog))
	assert.False(t, IsType(err, TypeConfig))
	assert.False(t, IsType(fs.ErrNotExist, TypeCatalog))
	assert.ErrorIs(t, Wrap(TypeInternal, "read", fs.ErrNotExist), fs.ErrNotExist)
}

func TestAsAndContext(t *testing.T) {
	err := fmt.Errorf("outer: %w", Newf(TypeInput, "cycle %d", 5).WithContext("allowed", []int{1, 3}))

	e, ok := As(err)
	require.True(t, ok)
	assert.True(t, e.HasType(TypeInput))
	assert.Equal(t, "cycle 5", e.Message)
	assert.Equal(t, []int{1, 3}, e.Context["allowed"])

	_, ok = As(fs.ErrClosed)
	assert.False(t, ok)
}
