package auth

import "github.com/99designs/keyring"

// MockKeyring is an in-memory KeyringProvider for tests.
type MockKeyring struct {
	items map[string]keyring.Item
}

// NewMockKeyringProvider creates an empty MockKeyring.
func NewMockKeyringProvider() *MockKeyring {
	return &MockKeyring{items: make(map[string]keyring.Item)}
}

func (m *MockKeyring) Get(key string) (keyring.Item, error) {
	item, ok := m.items[key]
	if !ok {
		return keyring.Item{}, keyring.ErrKeyNotFound
	}
	return item, nil
}

func (m *MockKeyring) Set(item keyring.Item) error {
	m.items[item.Key] = item
	return nil
}

func (m *MockKeyring) Remove(key string) error {
	if _, ok := m.items[key]; !ok {
		return keyring.ErrKeyNotFound
	}
	delete(m.items, key)
	return nil
}

// SetProviderFunc injects a provider for tests,
// nil resets to the OS keyring.
func SetProviderFunc(fn func() (KeyringProvider, error)) {
	if fn == nil {
		defaultProvider = newOSKeyring
	} else {
		defaultProvider = fn
	}
}
