package patternmatcher

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/parser"
)

func parseJava(t *testing.T, src string) (*tree_sitter.Node, []byte) {
	t.Helper()
	p := parser.New(langprofile.Default())
	unit, err := p.Parse("Scratch.java", []byte(src))
	require.NoError(t, err)
	return unit.Tree.RootNode(), unit.Source
}

func findFirstCall(node *tree_sitter.Node, profile langprofile.Profile) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	for _, k := range profile.CallExpressionKinds() {
		if node.Kind() == k {
			return node
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := findFirstCall(node.Child(i), profile); found != nil {
			return found
		}
	}
	return nil
}

func TestParsePatternsDefaultsToBareNames(t *testing.T) {
	patterns := ParsePatterns(nil)
	require.Len(t, patterns, 3)
	for _, p := range patterns {
		assert.Equal(t, KindBareMethod, p.Kind)
	}
}

func TestParsePatternsAllShapes(t *testing.T) {
	patterns := ParsePatterns([]string{
		"FeatureFlagService.isEnabled",
		"*.isEnabled",
		"isEnabled",
		"registry.read(flagProvider",
	})
	require.Len(t, patterns, 4)
	assert.Equal(t, Pattern{Kind: KindClassMethod, Class: "FeatureFlagService", Method: "isEnabled"}, patterns[0])
	assert.Equal(t, Pattern{Kind: KindAnyReceiverMethod, Class: "", Method: "isEnabled"}, patterns[1])
	assert.Equal(t, Pattern{Kind: KindBareMethod, Method: "isEnabled"}, patterns[2])
	assert.Equal(t, Pattern{Kind: KindNestedCall, Class: "registry", Method: "read", InnerMethod: "flagProvider"}, patterns[3])
}

func TestMatchCallClassMethod(t *testing.T) {
	root, src := parseJava(t, `class C { void m() { FeatureFlagService.isEnabled("new_feature"); } }`)
	profile, _ := langprofile.Default().ForName("java")
	call := findFirstCall(root, profile)
	require.NotNil(t, call)

	patterns := ParsePatterns([]string{"FeatureFlagService.isEnabled"})
	match, ok := MatchCall(call, profile, src, patterns)
	require.True(t, ok)

	key, ok := ExtractFlagKey(match.FlagKeyNode, src)
	require.True(t, ok)
	assert.Equal(t, "new_feature", key)
}

func TestMatchCallBareMethodDefault(t *testing.T) {
	root, src := parseJava(t, `class C { void m() { flags.isEnabled("experimental"); } }`)
	profile, _ := langprofile.Default().ForName("java")
	call := findFirstCall(root, profile)
	require.NotNil(t, call)

	patterns := ParsePatterns(nil)
	match, ok := MatchCall(call, profile, src, patterns)
	require.True(t, ok)
	key, ok := ExtractFlagKey(match.FlagKeyNode, src)
	require.True(t, ok)
	assert.Equal(t, "experimental", key)
}

func TestMatchCallNestedCall(t *testing.T) {
	root, src := parseJava(t, `class C { void m() { registry.read(flagProvider("release")); } }`)
	profile, _ := langprofile.Default().ForName("java")
	call := findFirstCall(root, profile)
	require.NotNil(t, call)

	patterns := ParsePatterns([]string{"registry.read(flagProvider"})
	match, ok := MatchCall(call, profile, src, patterns)
	require.True(t, ok)

	key, ok := ExtractFlagKey(match.FlagKeyNode, src)
	require.True(t, ok)
	assert.Equal(t, "release", key)
}

func TestMatchCallNoMatch(t *testing.T) {
	root, src := parseJava(t, `class C { void m() { logger.info("hello"); } }`)
	profile, _ := langprofile.Default().ForName("java")
	call := findFirstCall(root, profile)
	require.NotNil(t, call)

	patterns := ParsePatterns([]string{"FeatureFlagService.isEnabled"})
	_, ok := MatchCall(call, profile, src, patterns)
	assert.False(t, ok)
}
