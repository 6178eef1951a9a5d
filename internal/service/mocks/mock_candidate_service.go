package mocks

import (
	"context"

	"resumeapi/internal/model"
	"resumeapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCandidateService struct {
	mock.Mock
}

func (m *MockCandidateService) Create(ctx context.Context, in service.CreateCandidateInput, upload service.ResumeUpload) (int64, error) {
	args := m.Called(ctx, in, upload)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCandidateService) List(ctx context.Context, f service.ListFilter) ([]model.CandidateSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CandidateSummary), args.Error(1)
}

func (m *MockCandidateService) Get(ctx context.Context, id int64) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCandidateService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
