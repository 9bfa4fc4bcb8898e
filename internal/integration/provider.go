package integration

import (
	"context"
	"sort"
	"sync"

	"github.com/ymoney/networth-backend/internal/model"
)

// Credentials are the decrypted API credentials handed to a provider for
// one sync call.
type Credentials struct {
	APIKey    string
	APISecret string
}

// BalanceProvider fetches current holdings from one external source.
// Implementations are registered by provider name and looked up per
// integration row.
type BalanceProvider interface {
	// Name is the stable identifier stored in the integration table.
	Name() string

	// FetchBalances returns every holding the provider currently reports.
	FetchBalances(ctx context.Context, creds Credentials) ([]model.ProviderBalance, error)
}

// Registry holds the known balance providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]BalanceProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]BalanceProvider)}
}

// Register adds a provider under its name, replacing any existing entry.
func (r *Registry) Register(p BalanceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (BalanceProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
