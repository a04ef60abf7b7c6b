package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// buildLanguages wires one *tree_sitter.Language per shipped profile. No
// query compilation happens here: flagprune's scanners walk the whole tree
// themselves rather than running a tree-sitter query, so only the raw
// Language handle is needed.
func buildLanguages() map[string]*tree_sitter.Language {
	langs := make(map[string]*tree_sitter.Language, 8)

	langs["java"] = tree_sitter.NewLanguage(tree_sitter_java.Language())
	langs["javascript"] = tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	langs["typescript"] = tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	langs["csharp"] = tree_sitter.NewLanguage(tree_sitter_csharp.Language())
	langs["php"] = tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	langs["go"] = tree_sitter.NewLanguage(tree_sitter_go.Language())
	langs["cpp"] = tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	langs["rust"] = tree_sitter.NewLanguage(tree_sitter_rust.Language())

	return langs
}
