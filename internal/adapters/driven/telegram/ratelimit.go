package telegram

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Throttled implements the interface.
var _ driven.EntityClient = (*Throttled)(nil)

const (
	// ProactiveRate is the proactive request rate. Telegram tolerates
	// short bursts but penalises sustained traffic with flood waits.
	ProactiveRate = 2.0

	// ProactiveBurst allows a small burst before throttling kicks in,
	// covering the fan-out at the start of a discovery call.
	ProactiveBurst = 5
)

// Throttled decorates an EntityClient with proactive token-bucket
// throttling and reactive flood-wait backoff. When the platform orders
// a wait, every subsequent call blocks until the penalty expires.
type Throttled struct {
	inner  driven.EntityClient
	bucket *rate.Limiter

	mu         sync.Mutex
	floodUntil time.Time
}

// NewThrottled wraps a client with the default request rate.
func NewThrottled(inner driven.EntityClient) *Throttled {
	return NewThrottledRate(inner, ProactiveRate, ProactiveBurst)
}

// NewThrottledRate wraps a client with an explicit rate and burst.
func NewThrottledRate(inner driven.EntityClient, rps float64, burst int) *Throttled {
	return &Throttled{
		inner:  inner,
		bucket: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// SetFloodWait records a platform-ordered penalty. Calls block until
// it expires.
func (t *Throttled) SetFloodWait(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	until := time.Now().Add(d)
	if until.After(t.floodUntil) {
		t.floodUntil = until
	}
}

// wait blocks for the token bucket and any active flood penalty.
func (t *Throttled) wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	until := t.floodUntil
	t.mu.Unlock()

	if remaining := time.Until(until); remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
	return nil
}

// SearchEntities performs a throttled global title/handle search.
func (t *Throttled) SearchEntities(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.inner.SearchEntities(ctx, query, limit)
}

// SearchContacts performs a throttled contact-surface search.
func (t *Throttled) SearchContacts(ctx context.Context, query string, limit int) ([]driven.RawEntity, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.inner.SearchContacts(ctx, query, limit)
}

// SearchMessages performs a throttled global content search.
func (t *Throttled) SearchMessages(ctx context.Context, query string, limit int) (driven.MessageSearchResult, error) {
	if err := t.wait(ctx); err != nil {
		return driven.MessageSearchResult{}, err
	}
	return t.inner.SearchMessages(ctx, query, limit)
}

// ResolveHandle performs a throttled handle lookup.
func (t *Throttled) ResolveHandle(ctx context.Context, handle string) (driven.RawEntity, error) {
	if err := t.wait(ctx); err != nil {
		return driven.RawEntity{}, err
	}
	return t.inner.ResolveHandle(ctx, handle)
}

// RecentMessages performs a throttled history fetch.
func (t *Throttled) RecentMessages(ctx context.Context, identity string, limit int) ([]driven.RawMessage, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.inner.RecentMessages(ctx, identity, limit)
}

// Close closes the wrapped client.
func (t *Throttled) Close() error {
	return t.inner.Close()
}
