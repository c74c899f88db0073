package sdi12

import (
	"github.com/stretchr/testify/mock"
)

// OperatorInput yields lines typed by the operator.
//
// Implementations block until a full line is available. Whitespace trimming
// is the caller's responsibility.
type OperatorInput interface {
	// ReadLine blocks until the operator enters a line and returns it without
	// the trailing newline. It returns io.EOF when the input stream ends;
	// the session treats that as an exit request.
	ReadLine(prompt string) (string, error)
}

type MockInput struct {
	mock.Mock
}

var _ OperatorInput = (*MockInput)(nil)

func NewMockInput() *MockInput {
	return &MockInput{}
}

func (m *MockInput) ReadLine(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}
