// Package refresh runs the periodic snapshot refresh loops.
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Refresher is anything that can pull a fresh snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Task is one provider's refresh schedule.
type Task struct {
	Name      string
	Interval  time.Duration
	Timeout   time.Duration // per refresh; zero means Interval
	Refresher Refresher
}

// Handle controls running refresh loops.
type Handle struct {
	cancel  context.CancelFunc
	g       *errgroup.Group
	initial chan struct{}
	stop    sync.Once
}

// Start launches one loop per task. Each loop refreshes immediately, then on
// every tick of its own interval; a slow or failing provider never delays
// the others. Loops run until ctx is done or Stop is called.
func Start(ctx context.Context, log logrus.FieldLogger, tasks ...Task) *Handle {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	h := &Handle{cancel: cancel, g: g, initial: make(chan struct{})}

	var first sync.WaitGroup
	first.Add(len(tasks))
	for _, t := range tasks {
		g.Go(func() error {
			run(ctx, log.WithField("provider", t.Name), t, first.Done)
			return nil
		})
	}
	go func() {
		first.Wait()
		close(h.initial)
	}()
	return h
}

func run(ctx context.Context, log logrus.FieldLogger, t Task, firstDone func()) {
	once := func() {
		timeout := t.Timeout
		if timeout <= 0 {
			timeout = t.Interval
		}
		rctx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			rctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()
		// the cache logs the outcome itself
		_ = t.Refresher.Refresh(rctx)
	}

	once()
	firstDone()

	if t.Interval <= 0 {
		log.Warn("no refresh interval; snapshot will not be refreshed again")
		return
	}
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			once()
		}
	}
}

// WaitInitial blocks until every task has finished its first refresh attempt,
// successful or not, or until ctx is done.
func (h *Handle) WaitInitial(ctx context.Context) error {
	select {
	case <-h.initial:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop cancels all loops and waits for them to exit. It is safe to call more
// than once.
func (h *Handle) Stop() {
	h.stop.Do(h.cancel)
	_ = h.g.Wait()
}
