// Package importtracker records every import directive in a parsed unit
// plus every identifier-resolved-to-imported-symbol usage site, and
// classifies each import as flag-service or not so the orchestrator can
// tell which imports a transform run left truly unused.
package importtracker

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

// Tracker scans one ParsedUnit's tree for import directives and their usage
// sites.
type Tracker struct {
	Profile langprofile.Profile
	Source  []byte
	Config  *types.FlagConfig
}

func NewTracker(profile langprofile.Profile, source []byte, config *types.FlagConfig) *Tracker {
	return &Tracker{Profile: profile, Source: source, Config: config}
}

// Scan returns one ImportRecord per import directive found under root, each
// with UsageSites populated from a second pass over the whole tree.
func (t *Tracker) Scan(root *tree_sitter.Node) []types.ImportRecord {
	var records []types.ImportRecord
	t.collectImports(root, &records)

	byName := make(map[string]int, len(records))
	for i, rec := range records {
		for _, name := range rec.ShownNames {
			if name != "*" {
				byName[name] = i
			}
		}
	}

	t.collectUsages(root, records, byName)
	return records
}

func (t *Tracker) collectImports(node *tree_sitter.Node, records *[]types.ImportRecord) {
	if node == nil {
		return
	}
	if isKindIn(node.Kind(), t.Profile.ImportKinds()) {
		*records = append(*records, t.parseImport(node))
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		t.collectImports(node.Child(i), records)
	}
}

func (t *Tracker) parseImport(node *tree_sitter.Node) types.ImportRecord {
	span := spanOf(node)
	uri, shown, hidden, prefix, bareQualifiedName := parseImportSpec(span.Text(t.Source))

	isNamespace := isWildcardShown(shown) || (bareQualifiedName && t.Profile.ImportsAreNamespaces())

	return types.ImportRecord{
		DirectiveNode: node,
		Span:          span,
		URI:           uri,
		Prefix:        prefix,
		ShownNames:    shown,
		HiddenNames:   hidden,
		IsFlagService: t.isFlagServiceURI(uri),
		IsNamespace:   isNamespace,
	}
}

func isWildcardShown(shown []string) bool {
	return len(shown) == 1 && shown[0] == "*"
}

// isFlagServiceURI classifies an import's URI as flag-service: a configured
// pattern-class name appearing in the URI, or the fallback substrings "flag"
// / "feature" (case-insensitive).
func (t *Tracker) isFlagServiceURI(uri string) bool {
	if t.Config != nil {
		for _, class := range t.Config.PatternClasses {
			if strings.Contains(uri, class) {
				return true
			}
		}
	}
	lower := strings.ToLower(uri)
	return strings.Contains(lower, "flag") || strings.Contains(lower, "feature")
}

func (t *Tracker) collectUsages(node *tree_sitter.Node, records []types.ImportRecord, byName map[string]int) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "identifier", "name", "property_identifier", "type_identifier", "scoped_identifier":
		text := spanOf(node).Text(t.Source)
		if idx, ok := byName[text]; ok {
			span := spanOf(node)
			if !records[idx].Span.Contains(span) {
				records[idx].UsageSites = append(records[idx].UsageSites, types.ImportUsageSite{
					Span:       span,
					SymbolName: text,
				})
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		t.collectUsages(node.Child(i), records, byName)
	}
}

// IsUnused reports whether every usage site rec records falls inside one of
// removedRanges. This is stricter than just checking UsageSites is empty:
// an import whose only uses are all inside code the branch eliminator is
// about to delete is just as dead as one nobody ever referenced. Passing a
// nil removedRanges reduces to the empty-UsageSites check, which is exactly
// right for a tracker scan taken after the branch eliminator's mandatory
// re-parse: any usage inside removed code is already gone from the tree by
// construction, so there is nothing left to cross-check against.
func IsUnused(rec types.ImportRecord, removedRanges []types.Span) bool {
	for _, site := range rec.UsageSites {
		covered := false
		for _, r := range removedRanges {
			if r.Contains(site.Span) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
