package mocks

import (
	"context"

	"hrapi/internal/model"
	"hrapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateEmployee(ctx context.Context, p *model.EmployeeProfile) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmployeeProfile), args.Error(1)
}

func (m *MockProfileRepository) FindEmployeeByID(ctx context.Context, id int64) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmployeeProfile), args.Error(1)
}

func (m *MockProfileRepository) ListEmployees(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.EmployeeProfile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.EmployeeProfile]), args.Error(1)
}

func (m *MockProfileRepository) UpdateEmployee(ctx context.Context, id int64, upd repository.EmployeeProfileUpdate) (*model.EmployeeProfile, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmployeeProfile), args.Error(1)
}

func (m *MockProfileRepository) CreateContractor(ctx context.Context, p *model.ContractorProfile) (*model.ContractorProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContractorProfile), args.Error(1)
}

func (m *MockProfileRepository) FindContractorByID(ctx context.Context, id int64) (*model.ContractorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContractorProfile), args.Error(1)
}

func (m *MockProfileRepository) ListContractors(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ContractorProfile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ContractorProfile]), args.Error(1)
}

func (m *MockProfileRepository) UpdateContractor(ctx context.Context, id int64, upd repository.ContractorProfileUpdate) (*model.ContractorProfile, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContractorProfile), args.Error(1)
}
