// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/sqlcover/internal/adapter"
	m "github.com/mouse-blink/sqlcover/internal/model"
)

// MockWorkloadAdapter is a mock of adapter.WorkloadAdapter.
type MockWorkloadAdapter struct {
	mock.Mock
}

// NewMockWorkloadAdapter creates a mock that asserts its expectations on cleanup.
func NewMockWorkloadAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkloadAdapter {
	mk := &MockWorkloadAdapter{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Load mocks adapter.WorkloadAdapter.Load.
func (mk *MockWorkloadAdapter) Load(path m.Path) (m.Workload, error) {
	args := mk.Called(path)

	return args.Get(0).(m.Workload), args.Error(1)
}

// MockTraceAdapter is a mock of adapter.TraceAdapter.
type MockTraceAdapter struct {
	mock.Mock
}

// NewMockTraceAdapter creates a mock that asserts its expectations on cleanup.
func NewMockTraceAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTraceAdapter {
	mk := &MockTraceAdapter{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Open mocks adapter.TraceAdapter.Open.
func (mk *MockTraceAdapter) Open(ctx context.Context, location string) (adapter.EventStream, error) {
	args := mk.Called(ctx, location)

	stream, _ := args.Get(0).(adapter.EventStream)

	return stream, args.Error(1)
}

// MockResultStore is a mock of adapter.ResultStore.
type MockResultStore struct {
	mock.Mock
}

// NewMockResultStore creates a mock that asserts its expectations on cleanup.
func NewMockResultStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResultStore {
	mk := &MockResultStore{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// SaveResult mocks adapter.ResultStore.SaveResult.
func (mk *MockResultStore) SaveResult(path m.Path, result *m.CoverageResult) error {
	return mk.Called(path, result).Error(0)
}

// LoadResult mocks adapter.ResultStore.LoadResult.
func (mk *MockResultStore) LoadResult(path m.Path) (*m.CoverageResult, error) {
	args := mk.Called(path)

	result, _ := args.Get(0).(*m.CoverageResult)

	return result, args.Error(1)
}

// MockReportWriter is a mock of adapter.ReportWriter.
type MockReportWriter struct {
	mock.Mock
}

// NewMockReportWriter creates a mock that asserts its expectations on cleanup.
func NewMockReportWriter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReportWriter {
	mk := &MockReportWriter{}
	mk.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// WriteReport mocks adapter.ReportWriter.WriteReport.
func (mk *MockReportWriter) WriteReport(dir m.Path, name string, content string) (m.Path, error) {
	args := mk.Called(dir, name, content)

	return args.Get(0).(m.Path), args.Error(1)
}

// SaveSourceFiles mocks adapter.ReportWriter.SaveSourceFiles.
func (mk *MockReportWriter) SaveSourceFiles(dir m.Path, batches []m.Batch) error {
	return mk.Called(dir, batches).Error(0)
}

var (
	_ adapter.WorkloadAdapter = (*MockWorkloadAdapter)(nil)
	_ adapter.TraceAdapter    = (*MockTraceAdapter)(nil)
	_ adapter.ResultStore     = (*MockResultStore)(nil)
	_ adapter.ReportWriter    = (*MockReportWriter)(nil)
)
