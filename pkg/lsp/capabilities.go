package lsp

import (
	"sync"

	"go.lsp.dev/protocol"
)

// CapabilitySource holds the capabilities a client sent at initialize. A
// tooltip factory can be built before the client connects; it reads the
// current value on every request.
type CapabilitySource struct {
	mu   sync.RWMutex
	caps *protocol.ClientCapabilities
}

func NewCapabilitySource(caps *protocol.ClientCapabilities) *CapabilitySource {
	return &CapabilitySource{caps: caps}
}

// ClientCapabilities returns the last capabilities set, or nil before the
// client has initialized.
func (s *CapabilitySource) ClientCapabilities() *protocol.ClientCapabilities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caps
}

func (s *CapabilitySource) Update(caps *protocol.ClientCapabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caps = caps
}

// MarkupCapabilities builds client capabilities declaring the given markup
// kinds. A nil list leaves that capability undeclared.
func MarkupCapabilities(completion, hover []protocol.MarkupKind) *protocol.ClientCapabilities {
	td := &protocol.TextDocumentClientCapabilities{}
	if completion != nil {
		td.Completion = &protocol.CompletionTextDocumentClientCapabilities{
			CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{
				DocumentationFormat: completion,
			},
		}
	}
	if hover != nil {
		td.Hover = &protocol.HoverTextDocumentClientCapabilities{
			ContentFormat: hover,
		}
	}
	return &protocol.ClientCapabilities{TextDocument: td}
}
