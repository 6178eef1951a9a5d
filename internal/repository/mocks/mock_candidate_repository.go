package mocks

import (
	"context"

	"resumeapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCandidateRepository) Insert(ctx context.Context, c *model.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id int64) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepository) All(ctx context.Context) ([]model.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
