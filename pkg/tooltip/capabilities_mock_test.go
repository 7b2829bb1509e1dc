package tooltip_test

import (
	"github.com/stretchr/testify/mock"
	"go.lsp.dev/protocol"
)

type MockCapabilityProvider struct {
	mock.Mock
}

func (m *MockCapabilityProvider) ClientCapabilities() *protocol.ClientCapabilities {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*protocol.ClientCapabilities)
}

func newMockProvider(caps *protocol.ClientCapabilities) *MockCapabilityProvider {
	m := &MockCapabilityProvider{}
	m.On("ClientCapabilities").Return(caps)
	return m
}
