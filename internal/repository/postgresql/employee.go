package postgresql

import (
	"context"
	"errors"

	"github.com/crewdesk/membership-backend-go/internal/domain/employee"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, full_name, department, hire_date, linked_user_id, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.FullName,
		&e.Department,
		&e.HireDate,
		&e.LinkedUserID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByLinkedUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByLinkedUserID(ctx context.Context, userID, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE linked_user_id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// ExistsLinkedUser implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsLinkedUser(ctx context.Context, userID, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE linked_user_id = $1 AND company_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, companyID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (company_id, full_name, department, hire_date, linked_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.CompanyID,
		newEmployee.FullName,
		newEmployee.Department,
		newEmployee.HireDate,
		newEmployee.LinkedUserID,
	))
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id, companyID string, req employee.UpdateRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = COALESCE($1, full_name),
		    department = COALESCE($2, department),
		    updated_at = NOW()
		WHERE id = $3 AND company_id = $4
	`

	tag, err := q.Exec(ctx, query, req.FullName, req.Department, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateName(ctx context.Context, id, companyID, fullName string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, fullName, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetLink implements employee.EmployeeRepository. The WHERE guard keeps an
// already-linked row from being overwritten even if the pre-check raced.
func (r *employeeRepositoryImpl) SetLink(ctx context.Context, id, companyID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET linked_user_id = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND linked_user_id IS NULL
	`

	tag, err := q.Exec(ctx, query, userID, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeAlreadyLinked
	}
	return nil
}

// UnlinkByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UnlinkByUserID(ctx context.Context, userID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET linked_user_id = NULL, updated_at = NOW()
		WHERE linked_user_id = $1 AND company_id = $2
	`

	// Zero rows is fine: the member may never have had an employee record.
	_, err := q.Exec(ctx, query, userID, companyID)
	return err
}

// ListByCompany implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.CompanyID,
			&e.FullName,
			&e.Department,
			&e.HireDate,
			&e.LinkedUserID,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
