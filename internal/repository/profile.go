package repository

import (
	"context"
	"time"

	"hrapi/internal/model"
)

// EmployeeProfileUpdate describes a partial employee profile update.
type EmployeeProfileUpdate struct {
	CompensationType *string
	DateHired        *time.Time
	DateOffboarded   *time.Time
}

// ContractorProfileUpdate describes a partial contractor profile update.
type ContractorProfileUpdate struct {
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
}

// ProfileRepository defines data access for employee and contractor profiles.
type ProfileRepository interface {
	CreateEmployee(ctx context.Context, p *model.EmployeeProfile) (*model.EmployeeProfile, error)
	FindEmployeeByID(ctx context.Context, id int64) (*model.EmployeeProfile, error)
	ListEmployees(ctx context.Context, pq PageQuery) (*PageResult[model.EmployeeProfile], error)
	UpdateEmployee(ctx context.Context, id int64, upd EmployeeProfileUpdate) (*model.EmployeeProfile, error)

	CreateContractor(ctx context.Context, p *model.ContractorProfile) (*model.ContractorProfile, error)
	FindContractorByID(ctx context.Context, id int64) (*model.ContractorProfile, error)
	ListContractors(ctx context.Context, pq PageQuery) (*PageResult[model.ContractorProfile], error)
	UpdateContractor(ctx context.Context, id int64, upd ContractorProfileUpdate) (*model.ContractorProfile, error)
}
