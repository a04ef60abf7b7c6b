// Package jsfast gives the parser a cheap second opinion on plain
// JavaScript files before committing to a full tree-sitter parse: try
// go-fAST first (it is faster and pure Go, but rejects ES modules and
// TypeScript syntax it doesn't understand), and treat its failure as a
// signal rather than an error. tree-sitter remains the parser of record for
// the rewrite pipeline, since every later stage operates on tree-sitter's
// node/offset model.
package jsfast

import (
	"github.com/t14raptor/go-fast/parser"
)

// Precheck reports whether source parses as plain JavaScript under go-fAST.
// A false result means the file likely uses ES module syntax or another
// construct go-fAST doesn't support (e.g. TypeScript types); it is not
// treated as a parse failure, just a hint that flagprune is looking at
// non-plain-JS source, logged by the caller at debug level.
func Precheck(source []byte) (ok bool, err error) {
	_, err = parser.ParseFile(string(source))
	if err != nil {
		return false, err
	}
	return true, nil
}
