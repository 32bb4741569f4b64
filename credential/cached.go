package credential

import (
	"context"
	"fmt"
)

type cached struct {
	provider Provider
	store    Store
	subject  string
}

func (c *cached) Acquire(ctx context.Context, scopes ...string) (*Credential, error) {
	key := NewKey(c.subject, scopes...)
	if credential, ok := c.store.Lookup(key); ok {
		if credential.Valid() {
			return credential, nil
		}
		c.store.Delete(key)
	}
	credential, err := c.provider.Acquire(ctx, scopes...)
	if err != nil {
		return nil, err
	}
	if err = c.store.Put(key, credential); err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}
	return credential, nil
}

// Cached returns a provider reusing valid credentials from store under subject.
func Cached(provider Provider, store Store, subject string) Provider {
	if store == nil {
		store = NewMemoryStore()
	}
	return &cached{provider: provider, store: store, subject: subject}
}
