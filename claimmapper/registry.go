package claimmapper

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	// ErrProviderNotFound is returned when a provider is not registered
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderAlreadyRegistered is returned when trying to register a duplicate provider
	ErrProviderAlreadyRegistered = errors.New("provider already registered")
)

// Factory creates a Projector instance
type Factory func(logger Logger) Projector

// Provider describes a mapper type known to a host
type Provider struct {
	ID              string
	DisplayType     string
	DisplayCategory string
	HelpText        string
	Properties      []ConfigProperty
	Factory         Factory
}

// HeaderProvider returns the provider descriptor of the header mapper
func HeaderProvider() Provider {
	return Provider{
		ID:              ProviderID,
		DisplayType:     DisplayType,
		DisplayCategory: DisplayCategory,
		HelpText:        HelpText,
		Properties:      ConfigProperties(),
		Factory: func(logger Logger) Projector {
			return NewHeaderProjector(logger)
		},
	}
}

// Registry maps provider IDs to providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider
func (r *Registry) Register(p Provider) error {
	if p.ID == "" {
		return errors.New("provider ID cannot be empty")
	}
	if p.Factory == nil {
		return fmt.Errorf("provider %s: factory cannot be nil", p.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrProviderAlreadyRegistered, p.ID)
	}
	p.Properties = slices.Clone(p.Properties)
	r.providers[p.ID] = p
	return nil
}

// Unregister removes a provider
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[id]; !exists {
		return fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	delete(r.providers, id)
	return nil
}

// Lookup returns a copy of the provider registered under id
func (r *Registry) Lookup(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.providers[id]
	if !exists {
		return Provider{}, fmt.Errorf("%w: %s", ErrProviderNotFound, id)
	}
	p.Properties = slices.Clone(p.Properties)
	return p, nil
}

// New creates a Projector from the provider registered under id
func (r *Registry) New(id string, logger Logger) (Projector, error) {
	p, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	return p.Factory(normalizeLogger(logger)), nil
}

// IDs returns the registered provider IDs in sorted order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry holds the providers shipped with this package
var DefaultRegistry = NewRegistry()

func init() {
	if err := DefaultRegistry.Register(HeaderProvider()); err != nil {
		panic(err)
	}
}

// Register adds a provider to DefaultRegistry
func Register(p Provider) error {
	return DefaultRegistry.Register(p)
}

// Lookup returns a provider from DefaultRegistry
func Lookup(id string) (Provider, error) {
	return DefaultRegistry.Lookup(id)
}

// NewProjector creates a Projector from DefaultRegistry
func NewProjector(id string, logger Logger) (Projector, error) {
	return DefaultRegistry.New(id, logger)
}
