// Package identity holds the contracts for the external identity-management
// collaborator. Identities are created and destroyed by the authentication
// provider; this system verifies credentials against them and requests
// deletion as a side effect of membership removal.
package identity

import "context"

// Manager is the privileged identity-management capability.
type Manager interface {
	// DeleteIdentity requests destruction of the backing identity. A failure
	// here must leave the caller free to keep the membership intact.
	DeleteIdentity(ctx context.Context, userID string) error
}

// CredentialVerifier checks a plaintext credential against the identity's
// stored one.
type CredentialVerifier interface {
	VerifyPassword(ctx context.Context, userID, password string) (bool, error)
}

// CredentialStore persists a new credential.
type CredentialStore interface {
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}
