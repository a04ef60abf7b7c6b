package importtracker

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/flagprune/internal/types"
)

func spanOf(node *tree_sitter.Node) types.Span {
	return types.NewSpan(int(node.StartByte()), int(node.EndByte()-node.StartByte()))
}

func isKindIn(kind string, kinds []string) bool {
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
