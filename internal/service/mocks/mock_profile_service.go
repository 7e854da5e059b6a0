package mocks

import (
	"context"

	"hrapi/internal/model"
	"hrapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CreateEmployee(ctx context.Context, in service.CreateEmployeeInput) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, in)
	if v, ok := args.Get(0).(*model.EmployeeProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) GetEmployee(ctx context.Context, id int64) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.EmployeeProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) ListEmployees(ctx context.Context, limit, offset int) (*service.EmployeeListResult, error) {
	args := m.Called(ctx, limit, offset)
	if v, ok := args.Get(0).(*service.EmployeeListResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) UpdateEmployee(ctx context.Context, id int64, in service.UpdateEmployeeInput) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, id, in)
	if v, ok := args.Get(0).(*model.EmployeeProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) CreateContractor(ctx context.Context, in service.CreateContractorInput) (*model.ContractorProfile, error) {
	args := m.Called(ctx, in)
	if v, ok := args.Get(0).(*model.ContractorProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) GetContractor(ctx context.Context, id int64) (*model.ContractorProfile, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.ContractorProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) ListContractors(ctx context.Context, limit, offset int) (*service.ContractorListResult, error) {
	args := m.Called(ctx, limit, offset)
	if v, ok := args.Get(0).(*service.ContractorListResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileService) UpdateContractor(ctx context.Context, id int64, in service.UpdateContractorInput) (*model.ContractorProfile, error) {
	args := m.Called(ctx, id, in)
	if v, ok := args.Get(0).(*model.ContractorProfile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
