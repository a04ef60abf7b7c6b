package orchestrator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/flagprune/internal/format"
	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/orchestrator"
	"github.com/standardbeagle/flagprune/internal/parser"
	"github.com/standardbeagle/flagprune/internal/types"
)

func flagConfig(methods []string, flags map[string]*types.FlagDefinition) *types.FlagConfig {
	return &types.FlagConfig{PatternMethods: methods, Flags: flags}
}

func flagDef(name string, value bool) *types.FlagDefinition {
	return &types.FlagDefinition{Name: name, Value: value, RemoveDefinition: true, Aliases: map[string]struct{}{}}
}

func newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(parser.New(langprofile.Default()), format.NoOp)
}

// S1: simple if, flag true.
func TestTransformS1SimpleIfTrue(t *testing.T) {
	src := `class C { void m() {
    if (FeatureFlagService.isEnabled("new_feature")) { doNew(); } else { doOld(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"new_feature": flagDef("new_feature", true)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "doNew();")
	assert.NotContains(t, result.TransformedSource, "doOld()")
	assert.NotContains(t, result.TransformedSource, "FeatureFlagService")
}

// S2: simple if, flag false, no else.
func TestTransformS2SimpleIfFalseNoElse(t *testing.T) {
	src := `class C { void m() {
    if (flags.isEnabled("experimental")) { runX(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"experimental": flagDef("experimental", false)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.NotContains(t, result.TransformedSource, "runX()")
}

// S3: negation with false flag.
func TestTransformS3NegationFalseFlag(t *testing.T) {
	src := `class C { void m() {
    if (!flags.isEnabled("experimental")) { useStable(); } else { useExp(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"experimental": flagDef("experimental", false)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "useStable();")
	assert.NotContains(t, result.TransformedSource, "useExp()")
}

// S4: AND with true flag.
func TestTransformS4AndTrueFlag(t *testing.T) {
	src := `class C { void m() {
    if (flags.isEnabled("improved") && userCondition()) { opt(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"improved": flagDef("improved", true)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "if (userCondition()) { opt(); }")
	assert.NotContains(t, result.TransformedSource, "flags.isEnabled")
}

// S5: ternary with false flag.
func TestTransformS5TernaryFalseFlag(t *testing.T) {
	src := `class C { Object m() {
    return flags.isEnabled("legacy") ? old() : modern();
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"legacy": flagDef("legacy", false)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "modern()")
	assert.NotContains(t, result.TransformedSource, "old()")
}

// S6: OR with true flag.
func TestTransformS6OrTrueFlag(t *testing.T) {
	src := `class C { void m() {
    if (flags.isEnabled("ui_new") || fallback()) { run(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"ui_new": flagDef("ui_new", true)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "run();")
	assert.NotContains(t, result.TransformedSource, "fallback()")
}

// S7: variable-bound flag (propagation); nested-call pattern plus removal of
// the now-dead `var isRelease = ...` declaration.
func TestTransformS7VariableBoundPropagation(t *testing.T) {
	src := `class C { void m() {
    var isRelease = registry.read(releaseFlag());
    if (isRelease) { prod(); } else { dev(); }
} }`
	cfg := flagConfig([]string{"registry.read(releaseFlag)"},
		map[string]*types.FlagDefinition{"release": flagDef("release", true)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "prod();")
	assert.NotContains(t, result.TransformedSource, "dev()")
	assert.NotContains(t, result.TransformedSource, "isRelease")
	assert.Contains(t, result.RemovedFlagNames, "release")
}

// S8 — JavaScript `||` with a bound variable and alias resolution.
func TestTransformS8JavaScriptOrBoundVariableAlias(t *testing.T) {
	src := `function run() {
    const showBanner = flags.isEnabled("ui_banner_v2");
    if (showBanner || userDismissed()) { renderBanner(); }
}`
	def := flagDef("ui_banner", true)
	def.Aliases["ui_banner_v2"] = struct{}{}
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"ui_banner": def})

	result := newOrchestrator().Transform("banner.js", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "renderBanner();")
	assert.NotContains(t, result.TransformedSource, "userDismissed()")
	assert.NotContains(t, result.TransformedSource, "showBanner")
}

// S9 — C# field declaration removal. The `using FeatureFlags;` directive is
// a bare namespace import (C# has no "import one type" form), so it's kept
// regardless of whether FeatureFlagService still appears anywhere in the
// file: the tracker can't name-match a namespace's members against usage
// sites, and a wrong guess here would delete a directive another type in
// the same namespace still depends on.
func TestTransformS9CSharpFieldRemovalNamespaceImportKept(t *testing.T) {
	src := `using System;
using FeatureFlags;

namespace App {
    class Service {
        private static readonly bool betaAccess = FeatureFlagService.isEnabled("beta_access");

        void Run() {
            if (FeatureFlagService.isEnabled("beta_access")) { doBeta(); } else { doStable(); }
        }
    }
}`
	def := flagDef("beta_access", false)
	def.Aliases["betaAccess"] = struct{}{}
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"beta_access": def})

	result := newOrchestrator().Transform("Service.cs", []byte(src), cfg)
	require.True(t, result.HasChanges)
	assert.Contains(t, result.TransformedSource, "doStable();")
	assert.NotContains(t, result.TransformedSource, "doBeta()")
	assert.NotContains(t, result.TransformedSource, "betaAccess")
	assert.Contains(t, result.TransformedSource, `using FeatureFlags;`)
	assert.Contains(t, result.TransformedSource, `using System;`)
}

// S10 — nested binary where both operands reference flags: rule 5 forces
// keep_both (too complex to prove safe), so the construct is left completely
// untouched rather than partially rewritten.
func TestTransformS10NestedBinaryKeepsBoth(t *testing.T) {
	src := `class C { void m() {
    if (flags.isEnabled("feature_a") && flags.isEnabled("feature_b")) { both(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{
		"feature_a": flagDef("feature_a", true),
		"feature_b": flagDef("feature_b", false),
	})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	assert.False(t, result.HasChanges)
	assert.Equal(t, src, result.TransformedSource)
}

// Idempotence: re-running transform on already-transformed output (with the
// same config) is a no-op, since every configured flag's guard has already
// been resolved away.
func TestTransformIdempotent(t *testing.T) {
	src := `class C { void m() {
    if (FeatureFlagService.isEnabled("new_feature")) { doNew(); } else { doOld(); }
} }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"new_feature": flagDef("new_feature", true)})

	o := newOrchestrator()
	first := o.Transform("T.java", []byte(src), cfg)
	require.True(t, first.HasChanges)

	second := o.Transform("T.java", []byte(first.TransformedSource), cfg)
	assert.False(t, second.HasChanges)
	assert.Equal(t, first.TransformedSource, second.TransformedSource)
}

// Semantic identity on unmatched input: a file with no configured flag
// reference at all comes back byte-identical.
func TestTransformNoMatchIsUnchanged(t *testing.T) {
	src := `class C { void m() { doSomethingUnrelated(); } }`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{"new_feature": flagDef("new_feature", true)})

	result := newOrchestrator().Transform("T.java", []byte(src), cfg)
	assert.False(t, result.HasChanges)
	assert.Equal(t, src, result.TransformedSource)
}

// No dangling imports: a flag-service import whose only usage site survives
// (a second, unrelated flag check) is kept. Java's `import a.b.C;` names one
// specific class rather than a namespace, so this exercises the tracker's
// name-matched usage-survival path directly, unlike C#'s bare `using X;`
// form which is never removed on usage grounds at all.
func TestTransformKeepsImportWithSurvivingUsage(t *testing.T) {
	src := `import com.acme.flags.FeatureFlagService;

class Service {
    void run() {
        if (FeatureFlagService.isEnabled("resolved_flag")) { done(); }
        if (FeatureFlagService.isEnabled("still_unresolved")) { pending(); }
    }
}`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{
		"resolved_flag": flagDef("resolved_flag", true),
	})

	result := newOrchestrator().Transform("Service.java", []byte(src), cfg)
	assert.Contains(t, result.TransformedSource, "import com.acme.flags.FeatureFlagService;")
	assert.Contains(t, result.TransformedSource, "pending();")
}

// A genuinely dead import (a specific class, not a namespace) is removed
// once its only usage site is deleted along with its resolved guard.
func TestTransformRemovesImportWithNoSurvivingUsage(t *testing.T) {
	src := `import com.acme.flags.FeatureFlagService;

class Service {
    void run() {
        if (FeatureFlagService.isEnabled("resolved_flag")) { done(); }
    }
}`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{
		"resolved_flag": flagDef("resolved_flag", true),
	})

	result := newOrchestrator().Transform("Service.java", []byte(src), cfg)
	assert.NotContains(t, result.TransformedSource, "import com.acme.flags.FeatureFlagService;")
	assert.Contains(t, result.TransformedSource, "done();")
}

// A C# namespace import is never removed even when nothing in its
// namespace appears to be referenced anymore: the tracker has no way to
// name-match a namespace's members, so it never claims one is dead.
func TestTransformNeverRemovesCSharpNamespaceImport(t *testing.T) {
	src := `using FeatureFlags;

namespace App {
    class Service {
        void Run() {
            if (FeatureFlagService.isEnabled("resolved_flag")) { done(); }
        }
    }
}`
	cfg := flagConfig(nil, map[string]*types.FlagDefinition{
		"resolved_flag": flagDef("resolved_flag", true),
	})

	result := newOrchestrator().Transform("Service.cs", []byte(src), cfg)
	assert.Contains(t, result.TransformedSource, `using FeatureFlags;`)
	assert.Contains(t, result.TransformedSource, "done();")
}
