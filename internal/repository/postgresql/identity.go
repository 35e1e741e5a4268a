package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewdesk/membership-backend-go/internal/domain/identity"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// identityStoreImpl is the store-backed rendition of the identity-management
// collaborator. It satisfies Manager, CredentialVerifier and CredentialStore.
type identityStoreImpl struct {
	db *database.DB
}

func NewIdentityStore(db *database.DB) *identityStoreImpl {
	return &identityStoreImpl{db: db}
}

var _ identity.Manager = (*identityStoreImpl)(nil)
var _ identity.CredentialVerifier = (*identityStoreImpl)(nil)
var _ identity.CredentialStore = (*identityStoreImpl)(nil)

// DeleteIdentity implements identity.Manager. Run inside the removal
// transaction so a failure rolls the whole removal back.
func (s *identityStoreImpl) DeleteIdentity(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete identity: no user row for %s", userID)
	}
	return nil
}

// VerifyPassword implements identity.CredentialVerifier.
func (s *identityStoreImpl) VerifyPassword(ctx context.Context, userID, password string) (bool, error) {
	q := GetQuerier(ctx, s.db)

	var passwordHash *string
	err := q.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load credential: %w", err)
	}
	if passwordHash == nil {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// UpdatePassword implements identity.CredentialStore.
func (s *identityStoreImpl) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash credential: %w", err)
	}

	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		string(hash), userID,
	)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update credential: no user row for %s", userID)
	}
	return nil
}
