package reachability

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/parser"
	"github.com/standardbeagle/flagprune/internal/patternmatcher"
	"github.com/standardbeagle/flagprune/internal/scanner"
	"github.com/standardbeagle/flagprune/internal/types"
)

func scanJava(t *testing.T, src string, flags map[string]*types.FlagDefinition) (*scanner.UsageScanner, *tree_sitter.Node, []byte, langprofile.Profile) {
	t.Helper()
	p := parser.New(langprofile.Default())
	unit, err := p.Parse("R.java", []byte(src))
	require.NoError(t, err)
	profile, _ := p.ProfileFor("R.java")

	config := &types.FlagConfig{Flags: flags}
	patterns := patternmatcher.ParsePatterns([]string{"FeatureFlagService.isEnabled"})

	s := scanner.NewUsageScanner(profile, unit.Source, patterns, config)
	s.Scan(unit.Tree.RootNode())
	return s, unit.Tree.RootNode(), unit.Source, profile
}

func flag(name string, value bool) map[string]*types.FlagDefinition {
	return map[string]*types.FlagDefinition{
		name: {Name: name, Value: value, RemoveDefinition: true, Aliases: map[string]struct{}{}},
	}
}

func refPtrs(refs []types.FlagReference) []*types.FlagReference {
	ptrs := make([]*types.FlagReference, len(refs))
	for i := range refs {
		ptrs[i] = &refs[i]
	}
	return ptrs
}

func TestRule1IfWithElseTrueKeepsThen(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x")) { a(); } else { b(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", true))
	require.Len(t, s.References, 1)

	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, KeepThenRemoveElse, d.Kind)
}

func TestRule1IfWithElseFalseKeepsElse(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x")) { a(); } else { b(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveThenKeepElse, d.Kind)
}

func TestRule1IfNoElseFalseRemovesAll(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x")) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveAll, d.Kind)
}

func TestRule1IfNoElseTrueKeepsThen(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x")) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", true))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, KeepThenRemoveElse, d.Kind)
}

func TestRule1NegatedFlipsOutcome(t *testing.T) {
	src := `class C { void m() { if (!FeatureFlagService.isEnabled("x")) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", true)) // effective_value = false
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveAll, d.Kind)
}

func TestRule2AndTrueSimplifiesToOtherOperand(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") && ready()) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", true))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	require.Equal(t, SimplifyCondition, d.Kind)
	require.NotNil(t, d.SimplifiedCondition)
	assert.Equal(t, "ready()", spanOf(d.SimplifiedCondition).Text(source))
}

func TestRule2AndFalseNoElseRemovesAll(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") && ready()) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveAll, d.Kind)
}

func TestRule2AndFalseWithElseKeepsElse(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") && ready()) { a(); } else { b(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveThenKeepElse, d.Kind)
}

func TestRule3OrTrueKeepsThen(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") || other()) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", true))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, KeepThenRemoveElse, d.Kind)
}

func TestRule3OrFalseSimplifiesToOtherOperand(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") || other()) { a(); } } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	require.Equal(t, SimplifyCondition, d.Kind)
	assert.Equal(t, "other()", spanOf(d.SimplifiedCondition).Text(source))
}

func TestRule5NestedBinaryBothOperandsFlaggedKeepsBoth(t *testing.T) {
	src := `class C { void m() { if (FeatureFlagService.isEnabled("x") && FeatureFlagService.isEnabled("y")) { a(); } } }`
	flags := flag("x", true)
	flags["y"] = &types.FlagDefinition{Name: "y", Value: true, RemoveDefinition: true, Aliases: map[string]struct{}{}}
	s, _, source, profile := scanJava(t, src, flags)
	require.Len(t, s.References, 2)

	cf := s.References[0].ParentControlFlow
	d := Analyze(cf, refPtrs(s.References), profile, source)
	assert.Equal(t, KeepBoth, d.Kind)
}

func TestTernaryRule1(t *testing.T) {
	src := `class C { void m() { int x = FeatureFlagService.isEnabled("x") ? 1 : 2; } }`
	s, _, source, profile := scanJava(t, src, flag("x", false))
	d := Analyze(s.References[0].ParentControlFlow, refPtrs(s.References), profile, source)
	assert.Equal(t, RemoveThenKeepElse, d.Kind)
}
