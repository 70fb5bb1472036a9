package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"tokenquote/internal/provider"
)

// Cache owns the latest bulk snapshot of a single provider.
// Readers call Current; only Refresh writes, and it swaps whole snapshots.
// A failed refresh keeps the previous snapshot (stale but available).
type Cache struct {
	P   provider.BulkFetcher
	Log logrus.FieldLogger

	snap atomic.Pointer[provider.Snapshot]
	sf   singleflight.Group
	now  func() time.Time
}

func New(p provider.BulkFetcher, log logrus.FieldLogger) *Cache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cache{P: p, Log: log, now: time.Now}
}

func (c *Cache) Name() string { return c.P.Name() }

// Current returns the latest good snapshot, or false before the first
// successful refresh. It never performs I/O.
func (c *Cache) Current() (provider.Snapshot, bool) {
	s := c.snap.Load()
	if s == nil {
		return provider.Snapshot{}, false
	}
	return *s, true
}

// Refresh fetches a new snapshot and publishes it on success.
// Concurrent calls share a single upstream fetch.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *Cache) refresh(ctx context.Context) error {
	started := c.now()
	log := c.Log.WithField("provider", c.P.Name())

	snap, err := c.P.FetchBulk(ctx)
	if err != nil {
		fields := logrus.Fields{"err": err}
		if prev := c.snap.Load(); prev != nil {
			fields["stale_since"] = prev.FetchedAt
			fields["entries"] = len(prev.Entries)
		}
		log.WithFields(fields).Warn("snapshot refresh failed; keeping previous snapshot")
		return err
	}

	if snap.ProviderID == "" {
		snap.ProviderID = c.P.Name()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = c.now().UTC()
	}
	// detach from the fetcher's backing array
	snap.Entries = append([]provider.Listing(nil), snap.Entries...)
	c.snap.Store(&snap)

	log.WithFields(logrus.Fields{
		"entries":  len(snap.Entries),
		"duration": c.now().Sub(started).String(),
	}).Info("snapshot refreshed")
	return nil
}
