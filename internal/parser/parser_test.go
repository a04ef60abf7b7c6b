package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/flagprune/internal/langprofile"
)

func TestParseJavaSource(t *testing.T) {
	p := New(langprofile.Default())

	src := []byte(`class Foo {
  void bar() {
    if (FeatureFlagService.isEnabled("new_feature")) {
      doNew();
    } else {
      doOld();
    }
  }
}`)

	unit, err := p.Parse("Foo.java", src)
	require.NoError(t, err)
	require.NotNil(t, unit.Tree)
	assert.Equal(t, "java", unit.Language)
	assert.False(t, unit.Tree.RootNode().HasError())
	unit.Close()
}

func TestParseUnsupportedExtension(t *testing.T) {
	p := New(langprofile.Default())

	_, err := p.Parse("script.py", []byte("if True: pass"))
	require.Error(t, err)
	var target *ErrUnsupportedExtension
	assert.ErrorAs(t, err, &target)
}

func TestParserReusesPooledParserAcrossCalls(t *testing.T) {
	p := New(langprofile.Default())

	_, err := p.Parse("A.java", []byte("class A {}"))
	require.NoError(t, err)
	_, err = p.Parse("B.java", []byte("class B {}"))
	require.NoError(t, err)

	assert.Len(t, p.pooledParsers, 1)
}
