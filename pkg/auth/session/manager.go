package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/stridekart/backend/pkg/config"
	redisclient "github.com/stridekart/backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...any) error
	SRem(ctx context.Context, key string, members ...any) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type sessionKeyer interface {
	SessionKey(accessID string) string
	AccountSessionsKey(accountID string) string
}

// Manager tracks server-side sessions in Redis, one entry per issued access
// token. Because each session is also indexed under its account, blocking or
// deleting an account can tear down every live session at once.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Revoker exposes the teardown surface needed by services and middleware.
type Revoker interface {
	Revoke(ctx context.Context, accountID, accessID string) error
	RevokeAccount(ctx context.Context, accountID string) error
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl < accessTTL {
		return nil, fmt.Errorf("session ttl (%s) must cover access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Generate registers a session for the provided account and access ID.
func (m *Manager) Generate(ctx context.Context, accountID, accessID string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(accessID), accountID, m.ttl); err != nil {
		return err
	}
	return m.store.SAdd(ctx, m.keyer.AccountSessionsKey(accountID), accessID)
}

// HasSession reports whether the provided access ID still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.SessionKey(accessID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke tears down a single session, used on logout.
func (m *Manager) Revoke(ctx context.Context, accountID, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	if err := m.store.Del(ctx, m.keyer.SessionKey(accessID)); err != nil {
		return err
	}
	if strings.TrimSpace(accountID) == "" {
		return nil
	}
	return m.store.SRem(ctx, m.keyer.AccountSessionsKey(accountID), accessID)
}

// RevokeAccount tears down every live session belonging to the account.
func (m *Manager) RevokeAccount(ctx context.Context, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("account id is required")
	}
	indexKey := m.keyer.AccountSessionsKey(accountID)
	accessIDs, err := m.store.SMembers(ctx, indexKey)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(accessIDs)+1)
	for _, id := range accessIDs {
		keys = append(keys, m.keyer.SessionKey(id))
	}
	keys = append(keys, indexKey)
	return m.store.Del(ctx, keys...)
}

// NewAccessID produces a stable identifier used as the JWT jti and Redis key.
func NewAccessID() string {
	return uuid.NewString()
}
