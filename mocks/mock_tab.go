package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seogen/internal/catalog"
	"seogen/internal/domain"
	"seogen/internal/service"
)

// MockTab is a mock implementation of service.Tab.
type MockTab struct {
	mock.Mock
}

func (m *MockTab) Vertical() domain.Vertical {
	args := m.Called()
	return args.Get(0).(domain.Vertical)
}

func (m *MockTab) Copy() catalog.Copy {
	args := m.Called()
	return args.Get(0).(catalog.Copy)
}

func (m *MockTab) Messages() domain.Messages {
	args := m.Called()
	return args.Get(0).(domain.Messages)
}

func (m *MockTab) AcceptsUploads() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockTab) State() service.LaneState {
	args := m.Called()
	return args.Get(0).(service.LaneState)
}

func (m *MockTab) Cards() []catalog.Card {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]catalog.Card)
}

func (m *MockTab) Card(id string) (catalog.Card, error) {
	args := m.Called(id)
	return args.Get(0).(catalog.Card), args.Error(1)
}

func (m *MockTab) List() any {
	args := m.Called()
	return args.Get(0)
}

func (m *MockTab) Get(id string) (any, error) {
	args := m.Called(id)
	return args.Get(0), args.Error(1)
}

func (m *MockTab) Table() ([]string, [][]string) {
	args := m.Called()
	var rows [][]string
	if args.Get(1) != nil {
		rows = args.Get(1).([][]string)
	}
	return args.Get(0).([]string), rows
}

func (m *MockTab) StartDocument(ctx context.Context, doc domain.SourceDocument, model domain.Model) error {
	args := m.Called(ctx, doc, model)
	return args.Error(0)
}

func (m *MockTab) Process(ctx context.Context, doc domain.SourceDocument, model domain.Model) (any, error) {
	args := m.Called(ctx, doc, model)
	return args.Get(0), args.Error(1)
}

func (m *MockTab) Reset() {
	m.Called()
}

func (m *MockTab) Reload(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockTab) Wait() {
	m.Called()
}
