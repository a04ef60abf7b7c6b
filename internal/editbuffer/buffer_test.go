package editbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/flagprune/internal/types"
)

func TestApplyNoEditsReturnsSource(t *testing.T) {
	out, err := Apply("hello world", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestApplySingleReplacement(t *testing.T) {
	src := "if (flag) { doNew(); } else { doOld(); }"
	// Replace the whole thing with "doNew();"
	edits := []types.Edit{{Offset: 0, Length: len(src), Replacement: "doNew();"}}
	out, err := Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "doNew();", out)
}

func TestApplyMultipleNonOverlappingEditsAreOrderIndependent(t *testing.T) {
	src := "aaa bbb ccc"
	edits := []types.Edit{
		{Offset: 0, Length: 3, Replacement: "X"},
		{Offset: 8, Length: 3, Replacement: "Z"},
		{Offset: 4, Length: 3, Replacement: "Y"},
	}
	out, err := Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "X Y Z", out)
}

func TestApplyRejectsOverlappingEdits(t *testing.T) {
	src := "0123456789"
	edits := []types.Edit{
		{Offset: 0, Length: 5, Replacement: "A"},
		{Offset: 3, Length: 5, Replacement: "B"},
	}
	_, err := Apply(src, edits)
	require.Error(t, err)
	var target *ErrOverlappingEdits
	assert.ErrorAs(t, err, &target)
}

func TestApplyRejectsInvalidRange(t *testing.T) {
	src := "short"
	edits := []types.Edit{{Offset: 2, Length: 10, Replacement: "x"}}
	_, err := Apply(src, edits)
	require.Error(t, err)
	var target *ErrInvalidRange
	assert.ErrorAs(t, err, &target)
}

func TestApplyRejectsNegativeOffset(t *testing.T) {
	src := "short"
	edits := []types.Edit{{Offset: -1, Length: 1, Replacement: "x"}}
	_, err := Apply(src, edits)
	require.Error(t, err)
}

func TestApplyIsPureFunctionOfInputs(t *testing.T) {
	src := "aaa bbb ccc"
	edits := []types.Edit{{Offset: 4, Length: 3, Replacement: "YYY"}}

	out1, err1 := Apply(src, edits)
	require.NoError(t, err1)
	out2, err2 := Apply(src, edits)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
	// original slices untouched
	assert.Equal(t, "aaa bbb ccc", src)
}
