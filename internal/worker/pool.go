package worker

import (
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Pool runs detached background tasks such as enquiry notifications.
// Submit never blocks; when every worker is busy the task is rejected.
type Pool struct {
	pool *ants.Pool
}

func New(size int, logger *slog.Logger) (*Pool, error) {
	if size <= 0 {
		size = 16
	}
	p, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithExpiryDuration(time.Minute),
		ants.WithPanicHandler(func(v any) {
			logger.Error("worker_panic", "panic", v)
		}),
	)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

func (p *Pool) Submit(task func()) error {
	return p.pool.Submit(task)
}

func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release waits up to timeout for running tasks before shutting the pool down.
func (p *Pool) Release(timeout time.Duration) error {
	return p.pool.ReleaseTimeout(timeout)
}
