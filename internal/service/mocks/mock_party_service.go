package mocks

import (
	"context"

	"hrapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPartyService struct {
	mock.Mock
}

func (m *MockPartyService) Create(ctx context.Context, in service.CreatePartyInput) (*service.PartyView, error) {
	args := m.Called(ctx, in)
	if v, ok := args.Get(0).(*service.PartyView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartyService) Get(ctx context.Context, id int64) (*service.PartyView, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*service.PartyView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartyService) List(ctx context.Context, limit, offset int) (*service.PartyListResult, error) {
	args := m.Called(ctx, limit, offset)
	if v, ok := args.Get(0).(*service.PartyListResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartyService) Update(ctx context.Context, id int64, in service.UpdatePartyInput) (*service.PartyView, error) {
	args := m.Called(ctx, id, in)
	if v, ok := args.Get(0).(*service.PartyView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
