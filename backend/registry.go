package backend

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var ErrUnknownBackend = errors.New("backend: backend not registered")

// Registry keeps one named *Client per backend an application talks to.
// Options given to NewRegistry apply to every client, before the options
// passed to Register.
type Registry struct {
	clients     map[string]*Client
	mu          sync.RWMutex
	defaultOpts []Option
}

func NewRegistry(defaultOpts ...Option) *Registry {
	return &Registry{
		clients:     make(map[string]*Client),
		mu:          sync.RWMutex{},
		defaultOpts: defaultOpts,
	}
}

// Register builds a client with New and stores it under name, replacing any
// client already registered there.
func (r *Registry) Register(name string, cfg Config, opts ...Option) error {
	allOpts := make([]Option, 0, len(r.defaultOpts)+len(opts))
	allOpts = append(allOpts, r.defaultOpts...)
	allOpts = append(allOpts, opts...)

	client, err := New(cfg, allOpts...)
	if err != nil {
		return fmt.Errorf("failed to register backend %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[name] = client

	return nil
}

func (r *Registry) Client(name string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	return client, nil
}

func (r *Registry) MustClient(name string) *Client {
	client, err := r.Client(name)
	if err != nil {
		panic(err.Error())
	}

	return client
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.clients[name]

	return ok
}

func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.clients[name]
	if ok {
		delete(r.clients, name)
	}

	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.clients))
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
