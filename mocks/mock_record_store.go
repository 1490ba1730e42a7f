package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seogen/internal/domain"
)

// MockRecordStore is a mock implementation of port.RecordStore.
type MockRecordStore[F domain.Record] struct {
	mock.Mock
}

func (m *MockRecordStore[F]) FetchAll(ctx context.Context) []F {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []F{}
	}
	return args.Get(0).([]F)
}

func (m *MockRecordStore[F]) Save(ctx context.Context, record F) bool {
	args := m.Called(ctx, record)
	return args.Bool(0)
}

// MockConnectionProber is a mock implementation of port.ConnectionProber.
type MockConnectionProber struct {
	mock.Mock
}

func (m *MockConnectionProber) TestConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
