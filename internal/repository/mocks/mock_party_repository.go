package mocks

import (
	"context"

	"hrapi/internal/model"
	"hrapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, p *model.Party) (*model.Party, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Party), args.Error(1)
}

func (m *MockPartyRepository) FindByID(ctx context.Context, id int64) (*model.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Party), args.Error(1)
}

func (m *MockPartyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	args := m.Called(ctx, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Party], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Party]), args.Error(1)
}

func (m *MockPartyRepository) Update(ctx context.Context, id int64, upd repository.PartyUpdate) (*model.Party, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Party), args.Error(1)
}
