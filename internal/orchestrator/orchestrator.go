// Package orchestrator drives one file through its full transform pipeline:
// parse, scan usages and definitions, eliminate dead branches, re-parse,
// remove definitions, remove dead imports, then optionally format. Per-file
// errors never abort a run: every stage folds its failure into a warning on
// the returned TransformationResult rather than a Go error, the one
// exception being the overlapping-edits internal-error case, which aborts
// just that file and restores its original source.
package orchestrator

import (
	"strings"

	"github.com/standardbeagle/flagprune/internal/editbuffer"
	"github.com/standardbeagle/flagprune/internal/flagerrors"
	"github.com/standardbeagle/flagprune/internal/format"
	"github.com/standardbeagle/flagprune/internal/importtracker"
	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/parser"
	"github.com/standardbeagle/flagprune/internal/patternmatcher"
	"github.com/standardbeagle/flagprune/internal/reachability"
	"github.com/standardbeagle/flagprune/internal/rewriter"
	"github.com/standardbeagle/flagprune/internal/scanner"
	"github.com/standardbeagle/flagprune/internal/types"
)

// Orchestrator wires the whole pipeline for one file. A single Orchestrator
// is safe to share across goroutines transforming different files: Parser
// pools its own tree-sitter parsers internally and FlagConfig is read-only.
type Orchestrator struct {
	Parser    *parser.Parser
	Formatter format.Formatter
}

// New builds an Orchestrator. A nil formatter falls back to format.NoOp.
func New(p *parser.Parser, formatter format.Formatter) *Orchestrator {
	if formatter == nil {
		formatter = format.NoOp
	}
	return &Orchestrator{Parser: p, Formatter: formatter}
}

// Transform runs the pipeline for one file and always returns a usable
// result: failures at any stage degrade to a warning rather than a
// propagated error, so a bad file never aborts a multi-file run.
func (o *Orchestrator) Transform(path string, source []byte, config *types.FlagConfig) *types.TransformationResult {
	result := types.NewTransformationResult(string(source))

	// Step 1: parse.
	unit0, err := o.Parser.Parse(path, source)
	if err != nil {
		result.Warnings = append(result.Warnings, flagerrors.NewParseFailedError(path, err).Error())
		return result
	}
	defer unit0.Close()

	// Parse already resolved path's extension against the same registry, so
	// the profile lookup here cannot fail.
	profile, _ := o.Parser.ProfileFor(path)

	patterns := patternmatcher.ParsePatterns(config.PatternMethods)

	// Step 2: usage and definition scans over the single parse. The
	// definition scan here only decides whether step 4 has anything to do:
	// its Spans go stale the moment step 3 edits the source, so they are
	// never applied directly.
	usageScan0 := scanner.NewUsageScanner(profile, unit0.Source, patterns, config)
	usageScan0.Scan(unit0.Tree.RootNode())
	result.Warnings = append(result.Warnings, usageScan0.Warnings...)

	defScan0 := scanner.NewDefinitionScanner(profile, unit0.Source, config)
	defs0 := defScan0.Scan(unit0.Tree.RootNode(), usageScan0.Bindings)

	// Step 3: reachability analysis plus the rewriter eliminate dead branches.
	decisions, freeRefs := groupAndAnalyze(usageScan0.References, profile, unit0.Source)
	edits1 := rewriter.Plan(decisions, freeRefs, profile, unit0.Source)

	source1, aborted := o.applyOrAbort(path, string(source), edits1, result)
	if aborted {
		return result
	}

	// Step 4: definitions need a fresh parse of source1. Offsets from the
	// original parse are stale the instant step 3 touches the source, so this
	// re-parse is mandatory rather than an optimization to skip when step 3
	// made no changes.
	if len(defs0) > 0 {
		next, aborted := o.removeDefinitions(path, source1, profile, patterns, config, result)
		if aborted {
			return result
		}
		source1 = next
	}

	// Step 5: flag-service imports left with no surviving usage site.
	next, aborted := o.removeDeadImports(path, source1, profile, config, result)
	if aborted {
		return result
	}
	source1 = next

	// Step 6: optional external formatting, never fatal.
	if config.Settings.FormatOutput {
		formatted, err := o.Formatter(source1)
		if err != nil {
			result.Warnings = append(result.Warnings, flagerrors.NewFormatFailedError(path, err).Error())
		} else {
			source1 = formatted
		}
	}

	result.TransformedSource = source1
	result.HasChanges = source1 != result.OriginalSource
	result.LinesRemoved = linesRemoved(result.OriginalSource, source1)
	return result
}

// applyOrAbort applies edits to source and reports whether the file must be
// aborted back to its pristine original: an OverlappingEdits failure asserts
// a planner bug rather than anything recoverable.
func (o *Orchestrator) applyOrAbort(path, source string, edits []types.Edit, result *types.TransformationResult) (string, bool) {
	out, err := editbuffer.Apply(source, edits)
	if err == nil {
		return out, false
	}
	if overlap, ok := err.(*editbuffer.ErrOverlappingEdits); ok {
		wrapped := flagerrors.NewOverlappingEditsError(path,
			flagerrors.Edit{Offset: overlap.First.Offset, Length: overlap.First.Length},
			flagerrors.Edit{Offset: overlap.Second.Offset, Length: overlap.Second.Length},
		)
		result.Warnings = append(result.Warnings, wrapped.Error())
	} else {
		// An invalid-range edit is the same class of planner bug; treat it
		// the same way rather than writing back a half-applied file.
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.TransformedSource = result.OriginalSource
	result.HasChanges = false
	return result.OriginalSource, true
}

// removeDefinitions implements step 4: re-parse source, re-run the usage
// scanner (so variable bindings resolve against the fresh tree's own nodes,
// not the stale ones from the original parse) and the definition scanner,
// then delete every DefinitionLocation found. The returned bool is true
// only when an OverlappingEdits-class failure means the whole file must be
// aborted back to its original source; a failed re-parse instead just skips
// this step (source returned unchanged, a warning already recorded).
func (o *Orchestrator) removeDefinitions(path, source string, profile langprofile.Profile, patterns []patternmatcher.Pattern, config *types.FlagConfig, result *types.TransformationResult) (string, bool) {
	unit1, err := o.Parser.Parse(path, []byte(source))
	if err != nil {
		result.Warnings = append(result.Warnings, flagerrors.NewParseFailedError(path, err).Error())
		return source, false
	}
	defer unit1.Close()

	usageScan1 := scanner.NewUsageScanner(profile, unit1.Source, patterns, config)
	usageScan1.Scan(unit1.Tree.RootNode())

	defScan1 := scanner.NewDefinitionScanner(profile, unit1.Source, config)
	defs1 := defScan1.Scan(unit1.Tree.RootNode(), usageScan1.Bindings)
	if len(defs1) == 0 {
		return source, false
	}

	var edits []types.Edit
	for _, def := range defs1 {
		edits = append(edits, types.Edit{
			Offset:      int(def.Span.Offset),
			Length:      int(def.Span.Length),
			Replacement: "",
		})
		result.RemovedFlagNames[def.FlagName] = struct{}{}
	}

	return o.applyOrAbort(path, source, edits, result)
}

// removeDeadImports implements step 5. It re-parses source and re-scans its
// imports fresh: a flag-service import whose usage sites have all already
// been deleted by steps 3 and 4 naturally shows up with zero surviving
// UsageSites on this tree, which sidesteps having to translate removed byte
// ranges across three different parses' coordinate spaces. A namespace
// import (IsNamespace) is never removed this way regardless of its recorded
// usage count: its members can't be name-matched against the tree, so zero
// recorded usages doesn't mean the namespace itself has gone unreferenced.
// The returned bool reports whether the file must be aborted, same as
// removeDefinitions.
func (o *Orchestrator) removeDeadImports(path, source string, profile langprofile.Profile, config *types.FlagConfig, result *types.TransformationResult) (string, bool) {
	unit2, err := o.Parser.Parse(path, []byte(source))
	if err != nil {
		result.Warnings = append(result.Warnings, flagerrors.NewParseFailedError(path, err).Error())
		return source, false
	}
	defer unit2.Close()

	tracker := importtracker.NewTracker(profile, unit2.Source, config)
	records := tracker.Scan(unit2.Tree.RootNode())

	var edits []types.Edit
	for _, rec := range records {
		if !rec.IsFlagService || rec.IsNamespace || !importtracker.IsUnused(rec, nil) {
			continue
		}
		edits = append(edits, types.Edit{
			Offset:      int(rec.Span.Offset),
			Length:      int(rec.Span.Length),
			Replacement: "",
		})
		result.RemovedImportURIs[rec.URI] = struct{}{}
	}
	if len(edits) == 0 {
		return source, false
	}

	return o.applyOrAbort(path, source, edits, result)
}

// groupAndAnalyze partitions refs by their enclosing control-flow construct,
// one reachability.Decision per distinct *types.ControlFlowNode, and returns
// references with no enclosing construct separately, for the rewriter's
// free-call substitution path.
func groupAndAnalyze(refs []types.FlagReference, profile langprofile.Profile, source []byte) ([]reachability.Decision, []*types.FlagReference) {
	byCF := make(map[*types.ControlFlowNode][]*types.FlagReference)
	var free []*types.FlagReference
	for i := range refs {
		ref := &refs[i]
		if ref.ParentControlFlow == nil {
			free = append(free, ref)
			continue
		}
		byCF[ref.ParentControlFlow] = append(byCF[ref.ParentControlFlow], ref)
	}

	decisions := make([]reachability.Decision, 0, len(byCF))
	for cf, group := range byCF {
		decisions = append(decisions, reachability.Analyze(cf, group, profile, source))
	}
	return decisions, free
}

// linesRemoved reports how many fewer newline-delimited lines final has
// relative to original, floored at zero. A construct can also grow a file
// (block promotion strips braces but keeps every statement), so a negative
// raw difference is reported as no lines removed rather than a negative
// count.
func linesRemoved(original, final string) int {
	diff := strings.Count(original, "\n") - strings.Count(final, "\n")
	if diff < 0 {
		return 0
	}
	return diff
}
