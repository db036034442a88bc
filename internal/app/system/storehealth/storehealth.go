// Package storehealth reports whether the document store is reachable.
//
// Handlers receive a Checker instead of consulting a global connection flag,
// so the fallback paths can be exercised with Static in tests.
package storehealth

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTimeout bounds a single ping.
const DefaultTimeout = 2 * time.Second

// Checker pings the store.
type Checker interface {
	Ping(ctx context.Context) error
}

// Connected reports whether c answered its ping.
func Connected(ctx context.Context, c Checker) bool {
	if c == nil {
		return false
	}
	return c.Ping(ctx) == nil
}

// State returns "connected" or "disconnected" for info endpoints.
func State(ctx context.Context, c Checker) string {
	if Connected(ctx, c) {
		return "connected"
	}
	return "disconnected"
}

// Mongo pings a MongoDB primary with a bounded timeout.
type Mongo struct {
	client  *mongo.Client
	timeout time.Duration
}

// NewMongo returns a Checker for client. A non-positive timeout means
// DefaultTimeout.
func NewMongo(client *mongo.Client, timeout time.Duration) *Mongo {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mongo{client: client, timeout: timeout}
}

// Ping implements Checker.
func (m *Mongo) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrNoClient
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Static is a Checker with a fixed answer; nil Err means connected.
type Static struct {
	Err error
}

// Ping implements Checker.
func (s Static) Ping(context.Context) error { return s.Err }

// Cached remembers the last ping result for ttl so a down store costs one
// ping timeout per window instead of one per request.
type Cached struct {
	next Checker
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	checked time.Time
	last    error
}

// NewCached wraps next. A non-positive ttl disables caching.
func NewCached(next Checker, ttl time.Duration) *Cached {
	return &Cached{next: next, ttl: ttl, now: time.Now}
}

// Ping implements Checker.
func (c *Cached) Ping(ctx context.Context) error {
	if c.ttl <= 0 {
		return c.next.Ping(ctx)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.checked.IsZero() && now.Sub(c.checked) < c.ttl {
		return c.last
	}
	err := c.next.Ping(ctx)
	// A ping cut short by the caller says nothing about the store.
	if ctx.Err() != nil {
		return err
	}
	c.last = err
	c.checked = now
	return err
}
