// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/sqlcover/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a mock that asserts its expectations on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mk := &MockWorkflow{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Report mocks domain.Workflow.Report.
func (mk *MockWorkflow) Report(ctx context.Context, args domain.ReportArgs) error {
	return mk.Called(ctx, args).Error(0)
}

// View mocks domain.Workflow.View.
func (mk *MockWorkflow) View(args domain.ViewArgs) error {
	return mk.Called(args).Error(0)
}

var _ domain.Workflow = (*MockWorkflow)(nil)
