// Package parser turns source text into an annotated syntax tree with byte
// offsets, backed by github.com/tree-sitter/go-tree-sitter and one grammar
// binding per shipped language profile, lazily built and pooled per profile
// name rather than per file.
package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/jsfast"
	"github.com/standardbeagle/flagprune/internal/langprofile"
	"github.com/standardbeagle/flagprune/internal/types"
)

// Parser parses source text for every registered language profile. A single
// Parser is safe to share across files (each Parse call grabs its own
// *tree_sitter.Parser from the pool at pooledParsers); the returned
// *types.ParsedUnit is owned exclusively by the caller's pipeline.
type Parser struct {
	registry *langprofile.Registry

	mu            sync.Mutex
	pooledParsers map[string]*tree_sitter.Parser // profile name -> parser
	languages     map[string]*tree_sitter.Language
}

// New builds a Parser wired with every grammar binding registered in setup.go.
func New(registry *langprofile.Registry) *Parser {
	return &Parser{
		registry:      registry,
		pooledParsers: make(map[string]*tree_sitter.Parser),
		languages:     buildLanguages(),
	}
}

// ErrUnsupportedExtension is returned when no language profile claims the
// file's extension.
type ErrUnsupportedExtension struct {
	Path string
	Ext  string
}

func (e *ErrUnsupportedExtension) Error() string {
	return fmt.Sprintf("no language profile registered for extension %q (file %s)", e.Ext, e.Path)
}

// Parse parses source for path, selecting a language profile by extension.
// The returned tree's root node offsets are byte offsets into source. On
// parse failure the error is non-nil and the orchestrator treats it as
// ParseFailed (non-fatal).
func (p *Parser) Parse(path string, source []byte) (*types.ParsedUnit, error) {
	ext := filepath.Ext(path)
	profile, ok := p.registry.ForExtension(ext)
	if !ok {
		return nil, &ErrUnsupportedExtension{Path: path, Ext: ext}
	}

	if ext == ".js" || ext == ".mjs" {
		if plain, err := jsfast.Precheck(source); !plain {
			slog.Debug("go-fAST precheck did not accept file as plain JavaScript, continuing with tree-sitter", "path", path, "error", err)
		}
	}

	lang, ok := p.languages[profile.Name()]
	if !ok || lang == nil {
		return nil, fmt.Errorf("no grammar binding wired for profile %q", profile.Name())
	}

	ts := p.borrowParser(profile.Name(), lang)
	defer p.returnParser(profile.Name(), ts)

	tree := ts.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree for %s", path)
	}
	// A syntax error still yields a tree in tree-sitter (error-recovery
	// nodes); flagprune stops here rather than reasoning about a best-effort
	// partial tree.
	if tree.RootNode() == nil {
		return nil, fmt.Errorf("empty parse tree for %s", path)
	}
	if tree.RootNode().HasError() {
		return nil, fmt.Errorf("syntax error parsing %s", path)
	}

	return &types.ParsedUnit{
		FilePath: path,
		Source:   source,
		Tree:     tree,
		Language: profile.Name(),
	}, nil
}

// ProfileFor exposes the resolved profile for a path, used by components
// downstream of Parse that need the profile but were not handed the
// ParsedUnit directly (e.g. a re-parse after branch elimination).
func (p *Parser) ProfileFor(path string) (langprofile.Profile, bool) {
	return p.registry.ForExtension(filepath.Ext(path))
}

func (p *Parser) borrowParser(profileName string, lang *tree_sitter.Language) *tree_sitter.Parser {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts, ok := p.pooledParsers[profileName]
	if ok {
		delete(p.pooledParsers, profileName)
		return ts
	}
	ts = tree_sitter.NewParser()
	_ = ts.SetLanguage(lang)
	return ts
}

func (p *Parser) returnParser(profileName string, ts *tree_sitter.Parser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pooledParsers[profileName] = ts
}
