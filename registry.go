package mailclean

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/infodancer/mailclean/errors"
)

// MailStore combines folder access and delivery for one storage format.
type MailStore interface {
	FolderStore
	Deliverer
}

// StoreFactory creates a MailStore from configuration.
type StoreFactory func(config StoreConfig) (MailStore, error)

// StoreConfig contains settings for opening a store.
type StoreConfig struct {
	// Type is the store type name (e.g., "maildir").
	Type string

	// BasePath is the root directory holding the top-level inbox
	// and every folder.
	BasePath string

	// Options contains implementation-specific settings.
	Options map[string]string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]StoreFactory)
)

// Register adds a store factory to the registry.
// It panics if called with an empty name or nil factory,
// or if the name is already registered.
func Register(name string, factory StoreFactory) {
	if name == "" {
		panic("mailclean: Register called with empty name")
	}
	if factory == nil {
		panic("mailclean: Register called with nil factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic("mailclean: Register called twice for " + name)
	}
	registry[name] = factory
}

// Open creates a MailStore using the registered factory for the config type.
func Open(config StoreConfig) (MailStore, error) {
	registryMu.RLock()
	factory, ok := registry[config.Type]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			errors.ErrStoreNotRegistered, config.Type, strings.Join(RegisteredTypes(), ", "))
	}
	return factory(config)
}

// RegisteredTypes returns a sorted list of registered store type names.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
