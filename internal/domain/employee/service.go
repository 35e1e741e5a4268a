package employee

import (
	"context"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
)

type EmployeeService interface {
	// LinkNew creates a record with the link already set, atomically.
	LinkNew(ctx context.Context, actor user.Actor, req LinkNewRequest) (EmployeeResponse, error)

	// LinkExisting attaches an identity to an unlinked record.
	LinkExisting(ctx context.Context, actor user.Actor, req LinkExistingRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, actor user.Actor, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, actor user.Actor) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, actor user.Actor, req UpdateRequest) (EmployeeResponse, error)
}
