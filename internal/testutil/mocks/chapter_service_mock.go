package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/overlayfmt/internal/models"
)

// MockChapterService is a mock implementation of services.ChapterService
type MockChapterService struct {
	mock.Mock
}

func (m *MockChapterService) Describe(ctx context.Context, input models.ChapterInput) (*models.Chapter, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}
