package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/voxblock/pkg/job"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine's limit.
	// The interpreter goroutine is abandoned, not killed.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned to an Evaluate call whose script finished
	// after a newer call had started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult carries one finished evaluation back to its caller.
type evalResult struct {
	job    *job.Job
	errors []EvalError
	err    error
}

// tickets numbers evaluations. Only the latest ticket may deliver a result.
type tickets struct {
	mu     sync.Mutex
	latest uint64
}

func (t *tickets) issue() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

func (t *tickets) stale(n uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return n != t.latest
}

// await blocks until ch delivers or the limit passes.
func (t *tickets) await(n uint64, ch <-chan evalResult, limit time.Duration) (*job.Job, []EvalError, error) {
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case res := <-ch:
		if t.stale(n) {
			return nil, nil, ErrSuperseded
		}
		return res.job, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
	}
}
