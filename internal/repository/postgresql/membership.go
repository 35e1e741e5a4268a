package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type membershipRepositoryImpl struct {
	db *database.DB
}

func NewMembershipRepository(db *database.DB) membership.MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

const membershipColumns = `
	id, user_id, company_id, role, permission, status,
	applied_at, approved_at, created_at, updated_at
`

func scanMembership(row pgx.Row) (membership.Membership, error) {
	var m membership.Membership
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.Permission,
		&m.Status,
		&m.AppliedAt,
		&m.ApprovedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// GetByID implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) GetByID(ctx context.Context, id string) (membership.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + membershipColumns + ` FROM company_memberships WHERE id = $1`

	m, err := scanMembership(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.Membership{}, membership.ErrMembershipNotFound
		}
		return membership.Membership{}, err
	}
	return m, nil
}

// GetViewByID implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) GetViewByID(ctx context.Context, id string) (membership.MemberView, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.user_id, m.company_id, m.role, m.permission, m.status,
		       m.applied_at, m.approved_at, m.created_at, m.updated_at,
		       u.email, u.display_name
		FROM company_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1
	`

	var v membership.MemberView
	err := q.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.UserID,
		&v.CompanyID,
		&v.Role,
		&v.Permission,
		&v.Status,
		&v.AppliedAt,
		&v.ApprovedAt,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Email,
		&v.DisplayName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.MemberView{}, membership.ErrMembershipNotFound
		}
		return membership.MemberView{}, err
	}
	return v, nil
}

// ExistsByUserAndCompany implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) ExistsByUserAndCompany(ctx context.Context, userID, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM company_memberships WHERE user_id = $1 AND company_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, companyID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) Create(ctx context.Context, m membership.Membership) (membership.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_memberships (user_id, company_id, role, permission, status, applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + membershipColumns

	created, err := scanMembership(q.QueryRow(ctx, query,
		m.UserID, m.CompanyID, m.Role, m.Permission, m.Status, m.AppliedAt,
	))
	if err != nil {
		return membership.Membership{}, err
	}
	return created, nil
}

// MarkActive implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) MarkActive(ctx context.Context, id string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE company_memberships
		SET status = $1, approved_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	tag, err := q.Exec(ctx, query, membership.StatusActive, approvedAt, id, membership.StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

// MarkRemoved implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) MarkRemoved(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE company_memberships
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, membership.StatusRemoved, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

// UpdateRole implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) UpdateRole(ctx context.Context, id string, role user.Role, permission user.Permission) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE company_memberships
		SET role = $1, permission = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, role, permission, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrMembershipNotFound
	}
	return nil
}

// ListByCompanyAndStatus implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) ListByCompanyAndStatus(ctx context.Context, companyID string, status membership.Status) ([]membership.MemberView, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.user_id, m.company_id, m.role, m.permission, m.status,
		       m.applied_at, m.approved_at, m.created_at, m.updated_at,
		       u.email, u.display_name
		FROM company_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.company_id = $1 AND m.status = $2
		ORDER BY m.applied_at ASC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []membership.MemberView
	for rows.Next() {
		var v membership.MemberView
		if err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.CompanyID,
			&v.Role,
			&v.Permission,
			&v.Status,
			&v.AppliedAt,
			&v.ApprovedAt,
			&v.CreatedAt,
			&v.UpdatedAt,
			&v.Email,
			&v.DisplayName,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// CountPending implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) CountPending(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM company_memberships WHERE company_id = $1 AND status = $2`

	var count int64
	if err := q.QueryRow(ctx, query, companyID, membership.StatusPending).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
