package credential

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestCredential_Valid(t *testing.T) {
	var testCases = []struct {
		description string
		credential  *Credential
		expect      bool
	}{
		{description: "nil", credential: nil, expect: false},
		{description: "empty token", credential: &Credential{}, expect: false},
		{description: "no expiry", credential: &Credential{Token: "t"}, expect: true},
		{description: "future expiry", credential: &Credential{Token: "t", Expiry: time.Now().Add(time.Hour)}, expect: true},
		{description: "within skew", credential: &Credential{Token: "t", Expiry: time.Now().Add(10 * time.Second)}, expect: false},
		{description: "expired", credential: &Credential{Token: "t", Expiry: time.Now().Add(-time.Minute)}, expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.credential.Valid(), testCase.description)
	}
}

func TestAudience(t *testing.T) {
	assert.Equal(t, "api://b17cb93c", Audience("api://b17cb93c/.default"))
	assert.Equal(t, "User.Read", Audience("User.Read", "Mail.Read"))
	assert.Equal(t, "", Audience())
}

func TestNewKey(t *testing.T) {
	assert.Equal(t, NewKey("u1", "b", "a"), NewKey("u1", "a", "b"))
	assert.NotEqual(t, NewKey("u1", "a"), NewKey("u2", "a"))
	assert.NotEqual(t, NewKey("u1", "a"), NewKey("u1", "b"))
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	calls := 0
	expiry := time.Now().Add(time.Hour)
	provider := ProviderFunc(func(ctx context.Context, scopes ...string) (*Credential, error) {
		calls++
		return &Credential{Token: "token", Scopes: scopes, Expiry: expiry}, nil
	})
	store := NewMemoryStore()
	cachedProvider := Cached(provider, store, "user-1")

	first, err := cachedProvider.Acquire(ctx, "api://x/.default")
	require.NoError(t, err)
	second, err := cachedProvider.Acquire(ctx, "api://x/.default")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	_, err = cachedProvider.Acquire(ctx, "api://y/.default")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	expiry = time.Now().Add(time.Hour)
	require.NoError(t, store.Put(NewKey("user-1", "api://x/.default"), &Credential{Token: "stale", Expiry: time.Now().Add(-time.Minute)}))
	refreshed, err := cachedProvider.Acquire(ctx, "api://x/.default")
	require.NoError(t, err)
	assert.Equal(t, "token", refreshed.Token)
	assert.Equal(t, 3, calls)
}

func TestCached_Error(t *testing.T) {
	provider := ProviderFunc(func(ctx context.Context, scopes ...string) (*Credential, error) {
		return nil, ErrAuth
	})
	store := NewMemoryStore()
	_, err := Cached(provider, store, "user-1").Acquire(context.Background(), "s")
	assert.True(t, errors.Is(err, ErrAuth))
	_, ok := store.Lookup(NewKey("user-1", "s"))
	assert.False(t, ok)
}

func TestStatic(t *testing.T) {
	credential, err := Static("abc").Acquire(context.Background(), "api://x/.default")
	require.NoError(t, err)
	assert.Equal(t, "abc", credential.Token)
	assert.Equal(t, "api://x", credential.Audience)

	_, err = Static("").Acquire(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
}

func TestTokenSource(t *testing.T) {
	calls := 0
	provider := ProviderFunc(func(ctx context.Context, scopes ...string) (*Credential, error) {
		calls++
		return &Credential{Token: "model-token", Expiry: time.Now().Add(time.Hour)}, nil
	})
	source := TokenSource(context.Background(), provider, "https://cognitiveservices.azure.com/.default")
	token, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "model-token", token.AccessToken)
	_, err = source.Token()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
