package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seogen/internal/llm"
)

// MockGenerator is a mock implementation of llm.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}
