package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of port.TxManager. By default
// it runs fn directly; set FailWith to force a transaction error.
type MockTxManager struct {
	mock.Mock
	FailWith error
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	return fn(ctx)
}
