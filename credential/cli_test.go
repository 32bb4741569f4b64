package credential

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestCLIProvider_Acquire(t *testing.T) {
	var testCases = []struct {
		description   string
		output        string
		code          int
		runErr        error
		scope         string
		expectCommand string
		expectToken   string
		expectExpiry  time.Time
		expectErr     bool
	}{
		{
			description:   "resource scope with epoch expiry",
			output:        `{"accessToken":"abc","expiresOn":"2030-01-01 10:00:00.000000","expires_on":1893492000,"tokenType":"Bearer"}`,
			scope:         "api://b17cb93c/.default",
			expectCommand: "az account get-access-token --output json --resource 'api://b17cb93c'",
			expectToken:   "abc",
			expectExpiry:  time.Unix(1893492000, 0),
		},
		{
			description:   "plain scope with local expiry",
			output:        "WARNING: preview\n{\"accessToken\":\"xyz\",\"expiresOn\":\"2030-01-01 10:00:00.000000\"}",
			scope:         "User.Read",
			expectCommand: "az account get-access-token --output json --scope 'User.Read'",
			expectToken:   "xyz",
			expectExpiry:  time.Date(2030, 1, 1, 10, 0, 0, 0, time.Local),
		},
		{
			description: "not logged in",
			output:      "Please run 'az login' to setup account.",
			code:        1,
			scope:       "api://x/.default",
			expectErr:   true,
		},
		{
			description: "runner failure",
			runErr:      errors.New("shell closed"),
			scope:       "api://x/.default",
			expectErr:   true,
		},
		{
			description: "missing token",
			output:      `{"tokenType":"Bearer"}`,
			scope:       "api://x/.default",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		var actualCommand string
		provider, err := NewCLIProvider(context.Background(), WithRunner(func(ctx context.Context, command string) (string, int, error) {
			actualCommand = command
			return testCase.output, testCase.code, testCase.runErr
		}))
		require.NoError(t, err)
		credential, err := provider.Acquire(context.Background(), testCase.scope)
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrAuth, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectCommand, actualCommand, testCase.description)
		assert.Equal(t, testCase.expectToken, credential.Token, testCase.description)
		assert.True(t, testCase.expectExpiry.Equal(credential.Expiry), testCase.description)
	}
}

func TestCLIProvider_Command(t *testing.T) {
	provider, err := NewCLIProvider(context.Background(),
		WithCommand("az account get-access-token -o json"),
		WithTenant("contoso"),
		WithRunner(func(ctx context.Context, command string) (string, int, error) { return "", 0, nil }))
	require.NoError(t, err)
	assert.Equal(t, "az account get-access-token -o json --resource 'api://x' --tenant 'contoso'", provider.Command("api://x/.default"))

	_, err = provider.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
}
