// Package popup suppresses redisplay of dismissed popups for a fixed
// cool-down. This is a best-effort, per-client suppression, not a
// security or entitlement control.
package popup

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// DefaultCooldown is how long a dismissed popup stays hidden.
const DefaultCooldown = 24 * time.Hour

const keyPrefix = "popup_dismissed_"

// Store is the client-local key-value port the tracker writes through.
// The production implementation is Redis; tests inject an in-memory fake.
type Store interface {
	// Get returns the stored value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Tracker records dismissal timestamps and answers whether a popup is
// still inside its cool-down.
type Tracker struct {
	store    Store
	cooldown time.Duration
	now      func() time.Time
}

// NewTracker builds a Tracker over the given store. A non-positive
// cooldown falls back to DefaultCooldown.
func NewTracker(store Store, cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Tracker{store: store, cooldown: cooldown, now: time.Now}
}

// WithClock overrides the tracker's time source. Used by tests to
// simulate an elapsed cool-down.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Dismiss records the dismissal moment for popupID. Calling it again for
// the same id simply overwrites the timestamp.
func (t *Tracker) Dismiss(ctx context.Context, popupID string) error {
	ts := strconv.FormatInt(t.now().Unix(), 10)
	if err := t.store.Set(ctx, keyPrefix+popupID, ts); err != nil {
		return fmt.Errorf("record dismissal for %s: %w", popupID, err)
	}
	return nil
}

// IsDismissed reports whether popupID was dismissed less than the
// cool-down ago. Never-dismissed and expired records both return false;
// an expired record is logically dead but need not be deleted.
func (t *Tracker) IsDismissed(ctx context.Context, popupID string) (bool, error) {
	val, ok, err := t.store.Get(ctx, keyPrefix+popupID)
	if err != nil {
		return false, fmt.Errorf("read dismissal for %s: %w", popupID, err)
	}
	if !ok {
		return false, nil
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// A mangled record is treated as never dismissed.
		return false, nil
	}
	dismissedAt := time.Unix(unix, 0)
	return t.now().Sub(dismissedAt) < t.cooldown, nil
}
