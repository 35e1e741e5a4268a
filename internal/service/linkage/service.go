package linkage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/employee"
	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/crewdesk/membership-backend-go/internal/pkg/validator"
)

type LinkageServiceImpl struct {
	txm            database.TxManager
	employeeRepo   employee.EmployeeRepository
	membershipRepo membership.MembershipRepository
}

func NewLinkageService(
	txm database.TxManager,
	employeeRepo employee.EmployeeRepository,
	membershipRepo membership.MembershipRepository,
) employee.EmployeeService {
	return &LinkageServiceImpl{
		txm:            txm,
		employeeRepo:   employeeRepo,
		membershipRepo: membershipRepo,
	}
}

func mapEmployeeToResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Department:   e.Department,
		HireDate:     e.HireDate.Format("2006-01-02"),
		LinkedUserID: e.LinkedUserID,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}

// resolveLinkTarget loads the membership a link operation targets and checks
// the actor may link against it: admin-or-above over the same company, and
// the membership must be active.
func (s *LinkageServiceImpl) resolveLinkTarget(ctx context.Context, actor user.Actor, membershipID string) (membership.Membership, error) {
	target, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return membership.Membership{}, err
	}

	if !actor.IsAdmin() {
		return membership.Membership{}, user.ErrAdminAccessRequired
	}
	if actor.CompanyID != target.CompanyID {
		return membership.Membership{}, user.ErrCrossCompanyForbidden
	}
	if !target.IsActive() {
		return membership.Membership{}, membership.ErrMembershipNotActive
	}

	return target, nil
}

// LinkNew implements employee.EmployeeService. The record is created with the
// link already set; either both happen or nothing is created.
func (s *LinkageServiceImpl) LinkNew(ctx context.Context, actor user.Actor, req employee.LinkNewRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	target, err := s.resolveLinkTarget(ctx, actor, req.MembershipID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	alreadyLinked, err := s.employeeRepo.ExistsLinkedUser(ctx, target.UserID, target.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing link: %w", err)
	}
	if alreadyLinked {
		return employee.EmployeeResponse{}, employee.ErrUserAlreadyLinked
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	var created employee.Employee
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			CompanyID:    target.CompanyID,
			FullName:     req.FullName,
			Department:   req.Department,
			HireDate:     hireDate,
			LinkedUserID: &target.UserID,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(created), nil
}

// LinkExisting implements employee.EmployeeService.
func (s *LinkageServiceImpl) LinkExisting(ctx context.Context, actor user.Actor, req employee.LinkExistingRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	target, err := s.resolveLinkTarget(ctx, actor, req.MembershipID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	record, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, target.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if record.IsLinked() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyLinked
	}

	alreadyLinked, err := s.employeeRepo.ExistsLinkedUser(ctx, target.UserID, target.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check existing link: %w", err)
	}
	if alreadyLinked {
		return employee.EmployeeResponse{}, employee.ErrUserAlreadyLinked
	}

	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Rename happens in the same logical operation, before the link.
		if req.Rename != "" && req.Rename != record.FullName {
			if err := s.employeeRepo.UpdateName(txCtx, record.ID, target.CompanyID, req.Rename); err != nil {
				return fmt.Errorf("failed to rename employee: %w", err)
			}
		}

		if err := s.employeeRepo.SetLink(txCtx, record.ID, target.CompanyID, target.UserID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, record.ID, target.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get linked employee: %w", err)
	}
	return mapEmployeeToResponse(updated), nil
}

// GetEmployee implements employee.EmployeeService. Non-admins can only read
// the record linked to their own identity.
func (s *LinkageServiceImpl) GetEmployee(ctx context.Context, actor user.Actor, id string) (employee.EmployeeResponse, error) {
	record, err := s.employeeRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !actor.IsAdmin() {
		if record.LinkedUserID == nil || *record.LinkedUserID != actor.UserID {
			return employee.EmployeeResponse{}, employee.ErrUnauthorized
		}
	}

	return mapEmployeeToResponse(record), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *LinkageServiceImpl) ListEmployees(ctx context.Context, actor user.Actor) ([]employee.EmployeeResponse, error) {
	if !actor.IsAdmin() {
		record, err := s.employeeRepo.GetByLinkedUserID(ctx, actor.UserID, actor.CompanyID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return []employee.EmployeeResponse{}, nil
			}
			return nil, fmt.Errorf("failed to get own employee record: %w", err)
		}
		return []employee.EmployeeResponse{mapEmployeeToResponse(record)}, nil
	}

	records, err := s.employeeRepo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(records))
	for _, e := range records {
		responses = append(responses, mapEmployeeToResponse(e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService. Members edit their own
// record; edits to other records are operational-data writes and need an
// editor admin or the owner.
func (s *LinkageServiceImpl) UpdateEmployee(ctx context.Context, actor user.Actor, req employee.UpdateRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	record, err := s.employeeRepo.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	ownRecord := record.LinkedUserID != nil && *record.LinkedUserID == actor.UserID
	if !actor.Capabilities().CanEditOperationalData {
		if !ownRecord {
			return employee.EmployeeResponse{}, user.ErrNotAuthorized
		}
		// Self-service covers profile fields only; department is operational
		// data.
		if req.Department != nil {
			return employee.EmployeeResponse{}, user.ErrNotAuthorized
		}
	}

	if err := s.employeeRepo.Update(ctx, record.ID, actor.CompanyID, req); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, record.ID, actor.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}
	return mapEmployeeToResponse(updated), nil
}
