// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/sqlcover/internal/controller"
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a mock that asserts its expectations on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mk := &MockUI{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Start mocks controller.UI.Start.
func (mk *MockUI) Start() error {
	return mk.Called().Error(0)
}

// Close mocks controller.UI.Close.
func (mk *MockUI) Close() {
	mk.Called()
}

// Wait mocks controller.UI.Wait.
func (mk *MockUI) Wait() {
	mk.Called()
}

// DisplaySummary mocks controller.UI.DisplaySummary.
func (mk *MockUI) DisplaySummary(result *m.CoverageResult) error {
	return mk.Called(result).Error(0)
}

// DisplayReportWritten mocks controller.UI.DisplayReportWritten.
func (mk *MockUI) DisplayReportWritten(format string, path m.Path) {
	mk.Called(format, path)
}

var _ controller.UI = (*MockUI)(nil)
