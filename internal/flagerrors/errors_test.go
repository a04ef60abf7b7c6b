package flagerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInvalidErrorUnwrap(t *testing.T) {
	underlying := errors.New("duplicate alias")
	err := NewConfigInvalidError("aliases must be disjoint", underlying)

	require.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "aliases must be disjoint")
}

func TestParseFailedErrorMessage(t *testing.T) {
	err := NewParseFailedError("src/Foo.java", errors.New("unexpected token"))
	assert.Contains(t, err.Error(), "src/Foo.java")
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestOverlappingEditsErrorMessage(t *testing.T) {
	err := NewOverlappingEditsError("src/Foo.java", Edit{Offset: 10, Length: 5}, Edit{Offset: 12, Length: 5})
	assert.Contains(t, err.Error(), "[10,15)")
	assert.Contains(t, err.Error(), "[12,17)")
}

func TestMultiErrorFiltersNil(t *testing.T) {
	me := NewMultiError([]error{nil, errors.New("a"), nil, errors.New("b")})
	assert.Len(t, me.Errors, 2)
	assert.Equal(t, "2 errors: [a b]", me.Error())
}

func TestMultiErrorSingle(t *testing.T) {
	me := NewMultiError([]error{errors.New("only")})
	assert.Equal(t, "only", me.Error())
}

func TestMultiErrorEmpty(t *testing.T) {
	me := NewMultiError(nil)
	assert.Equal(t, "no errors", me.Error())
}
