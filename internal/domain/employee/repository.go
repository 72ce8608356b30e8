package employee

import (
	"context"
	"time"
)

// EmployeeRepository - interface for employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	HasHistory(ctx context.Context, id string) (bool, error)
	SetEndDate(ctx context.Context, id string, endDate time.Time) error
}

// EmploymentRepository - interface for employments table
type EmploymentRepository interface {
	Create(ctx context.Context, employment Employment) (Employment, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string, asOf time.Time) (Employment, error)
	ListActiveByCompanyID(ctx context.Context, companyID string, asOf time.Time) ([]Employment, error)
	Supersede(ctx context.Context, id string, at time.Time) error
}

// ApprovalAuthority answers whether an actor may approve requests of a given
// employee: direct manager, or hr/admin of the same company.
type ApprovalAuthority interface {
	HasApprovalAuthority(ctx context.Context, actorEmployeeID *string, actorRole Role, employeeID string) (bool, error)
}
