package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id, companyID string) (Employee, error)
	GetByLinkedUserID(ctx context.Context, userID, companyID string) (Employee, error)
	ExistsLinkedUser(ctx context.Context, userID, companyID string) (bool, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id, companyID string, req UpdateRequest) error
	UpdateName(ctx context.Context, id, companyID, fullName string) error

	// SetLink points the record at a user. The caller is responsible for the
	// uniqueness pre-checks; the store additionally enforces them.
	SetLink(ctx context.Context, id, companyID, userID string) error

	// UnlinkByUserID clears the back-reference from whichever record points
	// at the user. Called only from the membership removal path.
	UnlinkByUserID(ctx context.Context, userID, companyID string) error

	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
}
