// Package directive describes the directives a template may use. Registration
// mechanics belong to the parser; the semantic engine only needs to know which
// keywords exist and how often they may occur.
package directive

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

type Kind int

const (
	// KindSingleLine directives end at the line break, e.g. `@layout MainLayout`.
	KindSingleLine Kind = iota + 1
	// KindRazorBlock directives take a markup block.
	KindRazorBlock
	// KindCodeBlock directives take a code block, e.g. `@code { }`.
	KindCodeBlock
)

func (k Kind) String() string {
	switch k {
	case KindSingleLine:
		return "single-line"
	case KindRazorBlock:
		return "razor-block"
	case KindCodeBlock:
		return "code-block"
	default:
		return "unknown"
	}
}

type Usage int

const (
	UsageUnrestricted Usage = iota
	UsageFileScopedSinglyOccurring
	UsageFileScopedMultipleOccurring
)

func (u Usage) String() string {
	switch u {
	case UsageUnrestricted:
		return "unrestricted"
	case UsageFileScopedSinglyOccurring:
		return "file-scoped-singly-occurring"
	case UsageFileScopedMultipleOccurring:
		return "file-scoped-multiple-occurring"
	default:
		return "unknown"
	}
}

type TokenKind int

const (
	TokenType TokenKind = iota + 1
	TokenNamespace
	TokenMember
	TokenString
	TokenAttribute
)

type TokenDescriptor struct {
	Kind        TokenKind
	Name        string
	Description string
	Optional    bool
}

type Descriptor struct {
	Name        string
	Kind        Kind
	Usage       Usage
	Tokens      []TokenDescriptor
	Description string
}

var (
	Layout = &Descriptor{
		Name:  "layout",
		Kind:  KindSingleLine,
		Usage: UsageFileScopedSinglyOccurring,
		Tokens: []TokenDescriptor{
			{Kind: TokenType, Name: "TypeName", Description: "The layout type."},
		},
		Description: "Declares a layout type for the current document.",
	}

	Implements = &Descriptor{
		Name:  "implements",
		Kind:  KindSingleLine,
		Usage: UsageFileScopedMultipleOccurring,
		Tokens: []TokenDescriptor{
			{Kind: TokenType, Name: "TypeName", Description: "The interface type implemented by the current document."},
		},
		Description: "Declares an interface implementation for the current document.",
	}
)

// Registry is safe for concurrent lookups and registrations.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

func NewRegistry(descriptors ...*Descriptor) *Registry {
	r := &Registry{descriptors: make(map[string]*Descriptor)}
	for _, d := range descriptors {
		r.descriptors[d.Name] = d
	}
	return r
}

// NewDefaultRegistry returns a registry holding the built-in component directives.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Layout, Implements)
}

func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.Name == "" {
		return errors.New("directive descriptor must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.descriptors[d.Name]; ok {
		return errors.Errorf("directive %q already registered", d.Name)
	}
	r.descriptors[d.Name] = d
	return nil
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns the registered keywords sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateOccurrences checks the directive keywords used by one file against
// their usage rules. Every violation is reported.
func (r *Registry) ValidateOccurrences(used []string) error {
	counts := make(map[string]int, len(used))
	for _, name := range used {
		counts[name]++
	}

	var result *multierror.Error
	for _, name := range r.Names() {
		d, _ := r.Lookup(name)
		if d.Usage == UsageFileScopedSinglyOccurring && counts[name] > 1 {
			result = multierror.Append(result, errors.Errorf("directive %q may occur once per file, found %d", name, counts[name]))
		}
	}

	return result.ErrorOrNil()
}
