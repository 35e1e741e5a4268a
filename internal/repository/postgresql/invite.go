package postgresql

import (
	"context"
	"errors"

	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type inviteRepositoryImpl struct {
	db *database.DB
}

func NewInviteRepository(db *database.DB) invite.InviteRepository {
	return &inviteRepositoryImpl{db: db}
}

const inviteColumns = `
	id, company_id, email, token, role, permission, status,
	expires_at, accepted_at, revoked_at, created_at
`

func scanInvite(row pgx.Row) (invite.Invite, error) {
	var i invite.Invite
	err := row.Scan(
		&i.ID,
		&i.CompanyID,
		&i.Email,
		&i.Token,
		&i.Role,
		&i.Permission,
		&i.Status,
		&i.ExpiresAt,
		&i.AcceptedAt,
		&i.RevokedAt,
		&i.CreatedAt,
	)
	return i, err
}

// Create implements invite.InviteRepository.
func (r *inviteRepositoryImpl) Create(ctx context.Context, inv invite.Invite) (invite.Invite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invites (company_id, email, token, role, permission, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + inviteColumns

	created, err := scanInvite(q.QueryRow(ctx, query,
		inv.CompanyID, inv.Email, inv.Token, inv.Role, inv.Permission, inv.Status, inv.ExpiresAt,
	))
	if err != nil {
		return invite.Invite{}, err
	}
	return created, nil
}

// GetByID implements invite.InviteRepository.
func (r *inviteRepositoryImpl) GetByID(ctx context.Context, id string) (invite.Invite, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inviteColumns + ` FROM invites WHERE id = $1`

	inv, err := scanInvite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invite.Invite{}, invite.ErrInviteNotFound
		}
		return invite.Invite{}, err
	}
	return inv, nil
}

// GetByToken implements invite.InviteRepository.
func (r *inviteRepositoryImpl) GetByToken(ctx context.Context, token string) (invite.Invite, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + inviteColumns + ` FROM invites WHERE token = $1`

	inv, err := scanInvite(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invite.Invite{}, invite.ErrInviteNotFound
		}
		return invite.Invite{}, err
	}
	return inv, nil
}

// ExistsPendingByEmail implements invite.InviteRepository.
func (r *inviteRepositoryImpl) ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM invites
			WHERE email = $1 AND company_id = $2 AND status = $3 AND expires_at > NOW()
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, email, companyID, invite.StatusPending).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MarkAccepted implements invite.InviteRepository.
func (r *inviteRepositoryImpl) MarkAccepted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE invites SET status = $1, accepted_at = NOW() WHERE id = $2 AND status = $3`

	tag, err := q.Exec(ctx, query, invite.StatusAccepted, id, invite.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invite.ErrInviteNotFound
	}
	return nil
}

// MarkRevoked implements invite.InviteRepository.
func (r *inviteRepositoryImpl) MarkRevoked(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE invites SET status = $1, revoked_at = NOW() WHERE id = $2 AND status = $3`

	tag, err := q.Exec(ctx, query, invite.StatusRevoked, id, invite.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invite.ErrInviteNotFound
	}
	return nil
}
