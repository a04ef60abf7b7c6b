package orchestrator_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain guards against goroutine leaks from Run's errgroup worker pool,
// the one place in the package that spawns goroutines the caller doesn't
// directly control the lifetime of.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("sync.runtime_Semacquire"),
	)
}
