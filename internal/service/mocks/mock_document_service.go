package mocks

import (
	"context"

	"hrapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, in service.CreateDocumentInput) (*service.DocumentView, error) {
	args := m.Called(ctx, in)
	if v, ok := args.Get(0).(*service.DocumentView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id int64, in service.UpdateDocumentInput) (*service.DocumentView, error) {
	args := m.Called(ctx, id, in)
	if v, ok := args.Get(0).(*service.DocumentView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) SoftDelete(ctx context.Context, id int64, actor *string) (*service.DocumentView, error) {
	args := m.Called(ctx, id, actor)
	if v, ok := args.Get(0).(*service.DocumentView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id int64) (*service.DocumentView, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*service.DocumentView); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) ListByParty(ctx context.Context, partyID int64, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, partyID, limit, offset)
	if v, ok := args.Get(0).(*service.DocumentListResult); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
