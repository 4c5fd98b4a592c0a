package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLocked is returned while a key is locked out.
var ErrLocked = errors.New("locked out")

// LoginGuard locks a login key after too many failures inside a window.
type LoginGuard struct {
	store       Store
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
}

// NewLoginGuard creates a guard; maxAttempts <= 0 disables it.
func NewLoginGuard(store Store, maxAttempts int, window, lockout time.Duration) *LoginGuard {
	return &LoginGuard{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (g *LoginGuard) WithClock(now func() time.Time) *LoginGuard {
	g.now = now
	return g
}

// LoginKey builds the counter key for an email and client address.
func LoginKey(email, ip string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(email)) + "|" + ip
}

func (g *LoginGuard) enabled() bool {
	return g != nil && g.store != nil && g.maxAttempts > 0
}

// Check returns ErrLocked if key is currently locked out.
func (g *LoginGuard) Check(ctx context.Context, key string) error {
	if !g.enabled() {
		return nil
	}
	until, locked, err := g.store.LockedUntil(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read lockout: %w", err)
	}
	if locked {
		return fmt.Errorf("%w until %s", ErrLocked, until.UTC().Format(time.RFC3339))
	}
	return nil
}

// Fail records a failed attempt and locks the key once the limit is reached.
// It reports whether this attempt triggered the lockout.
func (g *LoginGuard) Fail(ctx context.Context, key string) (bool, error) {
	if !g.enabled() {
		return false, nil
	}
	count, _, err := g.store.Incr(ctx, key, g.window)
	if err != nil {
		return false, fmt.Errorf("failed to count login attempt: %w", err)
	}
	if count < g.maxAttempts {
		return false, nil
	}
	if err := g.store.Lock(ctx, key, g.now().Add(g.lockout)); err != nil {
		return false, fmt.Errorf("failed to lock login key: %w", err)
	}
	return true, nil
}

// Succeed clears the failure history of key.
func (g *LoginGuard) Succeed(ctx context.Context, key string) error {
	if !g.enabled() {
		return nil
	}
	return g.store.Reset(ctx, key)
}

// Limiter allows at most limit hits per key in each window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

// NewLimiter creates a fixed-window limiter; limit <= 0 disables it.
func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow counts a hit for key. When the limit is exceeded it returns false and
// the time the current window ends.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Time, error) {
	if l == nil || l.store == nil || l.limit <= 0 {
		return true, time.Time{}, nil
	}
	count, resetAt, err := l.store.Incr(ctx, "rate:"+key, l.window)
	if err != nil {
		return false, time.Time{}, err
	}
	return count <= l.limit, resetAt, nil
}
