package langprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryResolvesExtensions(t *testing.T) {
	reg := Default()

	cases := map[string]string{
		".java": "java",
		".js":   "javascript",
		".ts":   "typescript",
		".cs":   "csharp",
		".php":  "php",
		".go":   "go",
		".cpp":  "cpp",
		".rs":   "rust",
	}
	for ext, wantName := range cases {
		p, ok := reg.ForExtension(ext)
		require.True(t, ok, "extension %s should resolve", ext)
		assert.Equal(t, wantName, p.Name())
	}

	_, ok := reg.ForExtension(".py")
	assert.False(t, ok, "python is not a wired profile")
}

func TestGoAndRustHaveNoTernary(t *testing.T) {
	reg := Default()

	for _, name := range []string{"go", "rust"} {
		p, ok := reg.ForName(name)
		require.True(t, ok)
		assert.False(t, p.SupportsTernary())
		assert.Empty(t, p.TernaryKinds())
	}
}

func TestOnlyCSharpTreatsBareImportsAsNamespaces(t *testing.T) {
	reg := Default()

	cs, ok := reg.ForName("csharp")
	require.True(t, ok)
	assert.True(t, cs.ImportsAreNamespaces())

	for _, name := range []string{"java", "javascript", "typescript", "php", "go", "cpp", "rust"} {
		p, ok := reg.ForName(name)
		require.True(t, ok)
		assert.False(t, p.ImportsAreNamespaces(), "%s", name)
	}
}

func TestJavaScriptHasNoEnumButTypeScriptDoes(t *testing.T) {
	reg := Default()

	js, ok := reg.ForName("javascript")
	require.True(t, ok)
	assert.Empty(t, js.EnumConstantKinds())

	ts, ok := reg.ForName("typescript")
	require.True(t, ok)
	assert.NotEmpty(t, ts.EnumConstantKinds())
	assert.Equal(t, "typescript", ts.Name())
	assert.Equal(t, []string{".ts", ".tsx"}, ts.Extensions())
}
