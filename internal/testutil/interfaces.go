package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockWriteCloser is a testify mock of io.WriteCloser.
type MockWriteCloser struct {
	mock.Mock
}

// NewMockWriteCloser creates a mock that asserts its expectations when the test ends.
func NewMockWriteCloser(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWriteCloser {
	m := &MockWriteCloser{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Write records the call and returns the configured result.
func (m *MockWriteCloser) Write(p []byte) (int, error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

// Close records the call and returns the configured result.
func (m *MockWriteCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
