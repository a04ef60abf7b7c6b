package discover

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures one Walk call: the target root, extra `-e/--exclude`
// globs from the CLI, and the two switches for the automatic exclusions.
type Options struct {
	Root               string
	ExcludeGlobs       []string // from -e/--exclude, comma-split by the CLI layer
	RespectGitignore   bool
	SkipBuildArtifacts bool
}

// Walk discovers every regular file under opts.Root that survives the
// exclusion globs: `-e/--exclude`, an optional `.gitignore`, and detected
// build output directories. It does not filter by extension; this package
// stays profile-agnostic, so files no language profile claims are returned
// too. Files are reported in directory-walk order.
func Walk(opts Options) ([]string, error) {
	excludes := append([]string{}, opts.ExcludeGlobs...)

	var gi *GitignoreParser
	if opts.RespectGitignore {
		gi = NewGitignoreParser()
		if err := gi.LoadGitignore(opts.Root); err != nil {
			return nil, err
		}
		excludes = append(excludes, gi.ExclusionPatterns()...)
	}

	if !opts.SkipBuildArtifacts {
		excludes = append(excludes, NewBuildArtifactDetector(opts.Root).DetectOutputDirectories()...)
	}
	excludes = DeduplicatePatterns(excludes)

	var files []string
	err := filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if rel == "." {
			return nil
		}
		if matchesAny(excludes, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func matchesAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
	}
	return false
}
