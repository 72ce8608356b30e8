package leave

import (
	"context"

	"github.com/workforcehq/workforce-backend-go/internal/domain/leave"
)

// TypeService - thin CRUD over leave types, company-scoped.
type TypeService struct {
	leaveTypeRepo leave.LeaveTypeRepository
}

func NewTypeService(leaveTypeRepo leave.LeaveTypeRepository) *TypeService {
	return &TypeService{leaveTypeRepo: leaveTypeRepo}
}

func (s *TypeService) Create(ctx context.Context, companyID string, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	return s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		CompanyID:         companyID,
		Name:              req.Name,
		Accrues:           req.Accrues,
		DefaultAnnualDays: req.DefaultAnnualDays,
	})
}

func (s *TypeService) List(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	return s.leaveTypeRepo.GetByCompanyID(ctx, companyID)
}
