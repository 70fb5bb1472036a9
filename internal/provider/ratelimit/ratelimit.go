package ratelimit

import (
	"context"
	"sync"
	"time"

	"tokenquote/internal/provider"
)

// MinInterval wraps a logo finder and enforces a minimum time between calls.
// A caller claims the gate only when the interval has elapsed since the last
// claimed call; callers that give up while waiting leave it untouched.
type MinInterval struct {
	L        provider.LogoFinder
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (m *MinInterval) Name() string { return m.L.Name() }

func (m *MinInterval) FindLogo(ctx context.Context, symbol string) (string, error) {
	if m.Interval > 0 {
		if err := m.claim(ctx); err != nil {
			return "", provider.Unavailable(m.L.Name(), err)
		}
	}
	return m.L.FindLogo(ctx, symbol)
}

func (m *MinInterval) claim(ctx context.Context) error {
	for {
		m.mu.Lock()
		now := time.Now()
		wait := m.last.Add(m.Interval).Sub(now)
		if wait <= 0 {
			m.last = now
			m.mu.Unlock()
			return nil
		}
		m.mu.Unlock()

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
