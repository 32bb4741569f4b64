package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viant/mcp-obo/tool"
	"golang.org/x/oauth2"
)

// CognitiveServicesScope is the scope of tokens accepted by Azure OpenAI.
const CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

// ErrModel is returned when the model endpoint rejects a request.
var ErrModel = errors.New("model request failed")

// OpenAI calls a chat-completions endpoint.
type OpenAI struct {
	url         string
	model       string
	apiKey      string
	apiKeyName  string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// OpenAIOption customises the provider
type OpenAIOption func(p *OpenAI)

// WithModel sets the model name sent with every request.
func WithModel(model string) OpenAIOption {
	return func(p *OpenAI) {
		p.model = model
	}
}

// WithAPIKey authenticates with a static key.
func WithAPIKey(key string) OpenAIOption {
	return func(p *OpenAI) {
		p.apiKey = key
	}
}

// WithTokenSource authenticates with bearer tokens from source.
func WithTokenSource(source oauth2.TokenSource) OpenAIOption {
	return func(p *OpenAI) {
		p.tokenSource = source
	}
}

// WithHTTPClient sets the base http client.
func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(p *OpenAI) {
		p.httpClient = client
	}
}

type chatRequest struct {
	Model       string            `json:"model,omitempty"`
	Messages    []Message         `json:"messages"`
	Tools       []tool.Definition `json:"tools,omitempty"`
	ToolChoice  string            `json:"tool_choice,omitempty"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat implements Provider
func (p *OpenAI) Chat(ctx context.Context, request *Request) (*Message, error) {
	body := &chatRequest{
		Model:       p.model,
		Messages:    request.Messages,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
		Tools:       request.Tools,
	}
	if len(body.Tools) > 0 {
		body.ToolChoice = request.ToolChoice
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		if p.apiKeyName == "Authorization" {
			httpRequest.Header.Set(p.apiKeyName, "Bearer "+p.apiKey)
		} else {
			httpRequest.Header.Set(p.apiKeyName, p.apiKey)
		}
	}
	response, err := p.client().Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}
	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrModel, response.StatusCode, errorMessage(raw))
	}
	decoded := &chatResponse{}
	if err = json.Unmarshal(raw, decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrModel)
	}
	message := decoded.Choices[0].Message
	if message.Role == "" {
		message.Role = RoleAssistant
	}
	return &message, nil
}

func (p *OpenAI) client() *http.Client {
	if p.tokenSource == nil {
		return p.httpClient
	}
	return &http.Client{
		Timeout:   p.httpClient.Timeout,
		Transport: &oauth2.Transport{Source: p.tokenSource, Base: p.httpClient.Transport},
	}
}

func errorMessage(raw []byte) string {
	decoded := &errorResponse{}
	if err := json.Unmarshal(raw, decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

func newOpenAI(endpoint, apiKeyName string, opts ...OpenAIOption) *OpenAI {
	ret := &OpenAI{
		url:        endpoint,
		apiKeyName: apiKeyName,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// NewOpenAI creates a provider for an OpenAI compatible base URL, e.g. https://api.openai.com/v1
func NewOpenAI(baseURL string, opts ...OpenAIOption) *OpenAI {
	return newOpenAI(strings.TrimRight(baseURL, "/")+"/chat/completions", "Authorization", opts...)
}

// AzureOpenAI creates a provider for a deployment of an Azure OpenAI resource.
func AzureOpenAI(endpoint, deployment, apiVersion string, opts ...OpenAIOption) *OpenAI {
	endpoint = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(endpoint, "/"), url.PathEscape(deployment), url.QueryEscape(apiVersion))
	return newOpenAI(endpoint, "api-key", opts...)
}
