package credential

import (
	"sort"
	"strings"
	"sync"
)

// Key identifies a cached credential. Subject separates users, Scopes separate audiences.
type Key struct {
	Subject string
	Scopes  string
}

// NewKey creates a key with the scopes in a stable order.
func NewKey(subject string, scopes ...string) Key {
	sorted := append([]string(nil), scopes...)
	sort.Strings(sorted)
	return Key{Subject: subject, Scopes: strings.Join(sorted, " ")}
}

// Store is a credential cache.
type Store interface {
	Lookup(key Key) (*Credential, bool)
	Put(key Key, credential *Credential) error
	Delete(key Key)
}

type memoryStore struct {
	mu          sync.RWMutex
	credentials map[Key]*Credential
}

func (m *memoryStore) Lookup(key Key) (*Credential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	credential, ok := m.credentials[key]
	return credential, ok
}

func (m *memoryStore) Put(key Key, credential *Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[key] = credential
	return nil
}

func (m *memoryStore) Delete(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.credentials, key)
}

// NewMemoryStore creates an in memory store
func NewMemoryStore() Store {
	return &memoryStore{credentials: map[Key]*Credential{}}
}
