package credential

import (
	"context"
	"fmt"
	"sync"

	"github.com/crewdesk/membership-backend-go/internal/domain/credential"
	"github.com/crewdesk/membership-backend-go/internal/domain/identity"
)

// Gate is the re-verification checkpoint for one user's credential-edit
// session. The verified flag is session-local: it is set only by a successful
// Verify, dropped whenever the current-credential input changes, and dropped
// again after every successful change.
type Gate struct {
	mu       sync.Mutex
	userID   string
	verified bool
	verifier identity.CredentialVerifier
	store    identity.CredentialStore
}

// Verify checks the current credential with the verification collaborator.
// A transport error counts as failure and never sets the flag.
func (g *Gate) Verify(ctx context.Context, req credential.VerifyRequest) (credential.VerifyResponse, error) {
	if err := req.Validate(); err != nil {
		return credential.VerifyResponse{}, err
	}

	ok, err := g.verifier.VerifyPassword(ctx, g.userID, req.CurrentPassword)
	if err != nil {
		g.mu.Lock()
		g.verified = false
		g.mu.Unlock()
		return credential.VerifyResponse{}, fmt.Errorf("failed to verify credential: %w", err)
	}

	g.mu.Lock()
	g.verified = ok
	g.mu.Unlock()

	return credential.VerifyResponse{Verified: ok}, nil
}

// InputChanged resets the flag. Every edit to the current-credential input
// forces re-verification before the next change attempt.
func (g *Gate) InputChanged() {
	g.mu.Lock()
	g.verified = false
	g.mu.Unlock()
}

// Verified reports the current flag.
func (g *Gate) Verified() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verified
}

// ChangeCredential persists a new credential. Rejected outright, without
// contacting the store, unless the session is verified.
func (g *Gate) ChangeCredential(ctx context.Context, req credential.ChangeRequest) (credential.ChangeResponse, error) {
	g.mu.Lock()
	verified := g.verified
	g.mu.Unlock()

	if !verified {
		return credential.ChangeResponse{}, credential.ErrVerificationRequired
	}

	if err := req.Validate(); err != nil {
		return credential.ChangeResponse{}, err
	}

	if err := g.store.UpdatePassword(ctx, g.userID, req.NewPassword); err != nil {
		return credential.ChangeResponse{}, fmt.Errorf("failed to update credential: %w", err)
	}

	// A successful change consumes the verification.
	g.mu.Lock()
	g.verified = false
	g.mu.Unlock()

	return credential.ChangeResponse{Success: true}, nil
}

// Manager hands out one gate per user session and drops it on session close.
type Manager struct {
	mu       sync.Mutex
	gates    map[string]*Gate
	verifier identity.CredentialVerifier
	store    identity.CredentialStore
}

func NewManager(verifier identity.CredentialVerifier, store identity.CredentialStore) *Manager {
	return &Manager{
		gates:    make(map[string]*Gate),
		verifier: verifier,
		store:    store,
	}
}

// GateFor returns the user's gate, creating it unverified on first use.
func (m *Manager) GateFor(userID string) *Gate {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.gates[userID]; ok {
		return g
	}
	g := &Gate{
		userID:   userID,
		verifier: m.verifier,
		store:    m.store,
	}
	m.gates[userID] = g
	return g
}

// CloseSession discards the gate and with it any standing verification.
func (m *Manager) CloseSession(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gates, userID)
}
