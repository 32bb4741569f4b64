package tool

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAdapt(t *testing.T) {
	invoker := InvokerFunc(func(ctx context.Context, name string, args map[string]interface{}) (string, error) {
		return name + ":" + args["q"].(string), nil
	})
	descriptor := Descriptor{Name: "get_my_profile", Description: "Get current user's profile information from Microsoft Graph."}
	callable := Adapt(descriptor, invoker)
	assert.Equal(t, descriptor.Name, callable.Name)
	assert.Equal(t, descriptor.Description, callable.Description)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(callable.InputSchema))

	output, err := callable.Call(context.Background(), map[string]interface{}{"q": "x"})
	require.NoError(t, err)
	assert.Equal(t, "get_my_profile:x", output)

	custom := json.RawMessage(`{"type":"object","properties":{"q":{"type":"string"}}}`)
	assert.Equal(t, custom, Adapt(Descriptor{Name: "search", InputSchema: custom}, invoker).InputSchema)
}

func TestCallable_CallError(t *testing.T) {
	remote := errors.New("connection reset")
	callable := Adapt(Descriptor{Name: "get_my_profile"}, InvokerFunc(func(ctx context.Context, name string, args map[string]interface{}) (string, error) {
		return "", remote
	}))
	_, err := callable.Call(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvocation)
	assert.ErrorIs(t, err, remote)
	assert.Contains(t, err.Error(), "get_my_profile")
}

func TestAdaptAll(t *testing.T) {
	invoker := InvokerFunc(func(ctx context.Context, name string, args map[string]interface{}) (string, error) {
		return name, nil
	})
	var testCases = []struct {
		description string
		input       []Descriptor
		expect      []string
		expectErr   bool
	}{
		{description: "empty", input: nil, expect: nil},
		{description: "order preserved", input: []Descriptor{{Name: "b"}, {Name: "a"}, {Name: "c"}}, expect: []string{"b", "a", "c"}},
		{description: "duplicate", input: []Descriptor{{Name: "a"}, {Name: "a"}}, expectErr: true},
	}
	for _, testCase := range testCases {
		set, err := AdaptAll(testCase.input, invoker)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, len(testCase.input), set.Len(), testCase.description)
		assert.Equal(t, testCase.expect, set.Names(), testCase.description)
		for _, name := range testCase.expect {
			callable, ok := set.Get(name)
			require.True(t, ok)
			output, err := callable.Call(context.Background(), nil)
			require.NoError(t, err)
			assert.Equal(t, name, output)
		}
	}
	var nilSet *Set
	_, ok := nilSet.Get("a")
	assert.False(t, ok)
}

func TestSet_Definitions(t *testing.T) {
	set, err := AdaptAll([]Descriptor{
		{Name: "get_my_profile", Description: "profile"},
		{Name: "search", InputSchema: json.RawMessage(`{"type":"object","properties":{"q":{"type":"string"}}}`)},
	}, InvokerFunc(func(ctx context.Context, name string, args map[string]interface{}) (string, error) {
		return "", nil
	}))
	require.NoError(t, err)
	data, err := json.Marshal(set.Definitions())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"function","function":{"name":"get_my_profile","description":"profile","parameters":{"type":"object","properties":{}}}},
		{"type":"function","function":{"name":"search","parameters":{"type":"object","properties":{"q":{"type":"string"}}}}}
	]`, string(data))
	assert.Nil(t, NewSet().Definitions())
}

func TestSet_ZeroValue(t *testing.T) {
	var set Set
	require.NoError(t, set.Add(&Callable{Name: "get_my_profile"}))
	assert.Error(t, set.Add(&Callable{Name: "get_my_profile"}))
	callable, ok := set.Get("get_my_profile")
	require.True(t, ok)
	assert.Equal(t, "get_my_profile", callable.Name)
	assert.Equal(t, 1, set.Len())
}
