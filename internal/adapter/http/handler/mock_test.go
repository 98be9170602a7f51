package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/seqcls/verdict/internal/domain/entity"
	"github.com/seqcls/verdict/internal/usecase"
)

// MockInferenceUsecase is a mock implementation of InferenceUsecase
type MockInferenceUsecase struct {
	mock.Mock
}

func (m *MockInferenceUsecase) Root() *usecase.RootOutput {
	return m.Called().Get(0).(*usecase.RootOutput)
}

func (m *MockInferenceUsecase) Health(ctx context.Context) *usecase.HealthOutput {
	return m.Called().Get(0).(*usecase.HealthOutput)
}

func (m *MockInferenceUsecase) Ready() error {
	return m.Called().Error(0)
}

func (m *MockInferenceUsecase) Predict(ctx context.Context, text string) (*entity.Prediction, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prediction), args.Error(1)
}

func (m *MockInferenceUsecase) Echo(text string) *usecase.EchoOutput {
	return m.Called(text).Get(0).(*usecase.EchoOutput)
}
