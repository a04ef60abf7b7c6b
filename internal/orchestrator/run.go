package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/flagprune/internal/types"
)

// FileResult pairs one file's TransformationResult with the path it came
// from and any read/write-adjacent error Run collected for it.
type FileResult struct {
	Path   string
	Result *types.TransformationResult
	Err    error
}

// Run fans Transform out across files with bounded parallelism:
// errgroup.WithContext plus SetLimit, since each file transforms
// independently of every other. workers <= 0 means unbounded (errgroup's
// default).
//
// read is the caller-supplied file-loader (normally os.ReadFile) so tests
// can supply an in-memory source without touching disk. Results preserve
// input order regardless of completion order.
func Run(ctx context.Context, o *Orchestrator, files []string, config *types.FlagConfig, workers int, read func(path string) ([]byte, error)) []FileResult {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = FileResult{Path: path, Err: gctx.Err()}
				return nil
			default:
			}

			source, err := read(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}
			results[i] = FileResult{Path: path, Result: o.Transform(path, source, config)}
			return nil
		})
	}
	_ = g.Wait() // per-file errors are carried in FileResult, never aborts the batch

	return results
}
