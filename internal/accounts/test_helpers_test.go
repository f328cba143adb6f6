package accounts

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/config"
	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/identity"
)

type stubVerifier struct {
	claims *identity.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, idToken string) (*identity.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type memorySessions struct {
	mu       sync.Mutex
	byAccess map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{byAccess: make(map[string]string)}
}

func (m *memorySessions) Generate(ctx context.Context, accountID, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byAccess[accessID] = accountID
	return nil
}

func (m *memorySessions) Revoke(ctx context.Context, accountID, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byAccess, accessID)
	return nil
}

func (m *memorySessions) RevokeAccount(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for accessID, owner := range m.byAccess {
		if owner == accountID {
			delete(m.byAccess, accessID)
		}
	}
	return nil
}

func (m *memorySessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byAccess)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stridekart-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}
}

type accountsHarness struct {
	conn     *gorm.DB
	client   *db.Client
	verifier *stubVerifier
	sessions *memorySessions
	register RegisterService
	svc      Service
}

func newAccountsHarness(t *testing.T) *accountsHarness {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)
	verifier := &stubVerifier{
		claims: &identity.Claims{Subject: "uid-1", Email: "customer@example.com", Name: "Cust Omer"},
	}
	sessions := newMemorySessions()

	register, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		Identity:       verifier,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	svc, err := NewService(ServiceParams{
		DB:             client,
		Identity:       verifier,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &accountsHarness{
		conn:     conn,
		client:   client,
		verifier: verifier,
		sessions: sessions,
		register: register,
		svc:      svc,
	}
}
