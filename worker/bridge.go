package worker

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Bridge is the UI's handle on a worker, in process or remote.
type Bridge interface {
	// Post queues a request without waiting for the worker.
	Post(Request) error
	// Responses is closed when the worker is gone.
	Responses() <-chan Response
	Close() error
}

// ErrQueueFull is returned by Post when requests pile up faster than the
// worker serves them.
var ErrQueueFull = errors.New("worker request queue is full")

// Local runs a Worker in a goroutine of this process.
type Local struct {
	in     chan<- Request
	out    <-chan Response
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewLocal starts w. The worker stops when ctx is cancelled or the bridge
// is closed.
func NewLocal(ctx context.Context, w *Worker) *Local {
	ctx, cancel := context.WithCancel(ctx)
	in, out := w.Start(ctx)
	return &Local{in: in, out: out, cancel: cancel}
}

func (l *Local) Post(r Request) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.New("worker bridge is closed")
	}
	select {
	case l.in <- r:
		return nil
	default:
		return ErrQueueFull
	}
}

func (l *Local) Responses() <-chan Response { return l.out }

func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.in)
		l.cancel()
	}
	return nil
}
