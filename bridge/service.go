package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	mcp "github.com/viant/mcp-obo"
	"github.com/viant/mcp-obo/client"
	"github.com/viant/mcp-obo/config"
	"github.com/viant/mcp-obo/credential"
	"github.com/viant/mcp-obo/llm"
	"github.com/viant/mcp-obo/session"
	"github.com/viant/mcp-obo/tool"
)

// Service connects the chat model with the remote tools of a tool host.
type Service struct {
	config   *config.Client
	client   *client.Client
	tools    *tool.Set
	model    llm.Provider
	runtime  *llm.Runtime
	settings llm.Settings
	stdin    io.Reader
	stdout   io.Writer
	logger   *slog.Logger
}

// Option customises the service
type Option func(s *Service)

// WithStdio replaces the terminal
func WithStdio(stdin io.Reader, stdout io.Writer) Option {
	return func(s *Service) {
		s.stdin = stdin
		s.stdout = stdout
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithModel replaces the chat model provider
func WithModel(provider llm.Provider) Option {
	return func(s *Service) {
		s.model = provider
	}
}

// Tools returns the adapted remote tools
func (s *Service) Tools() *tool.Set {
	return s.tools
}

// Run starts the interactive session
func (s *Service) Run(ctx context.Context) error {
	aSession := session.New(s.runtime, s.tools,
		session.WithInput(s.stdin),
		session.WithOutput(s.stdout),
		session.WithSystemPrompt(s.config.SystemPrompt),
		session.WithSettings(s.settings),
		session.WithLogger(s.logger),
	)
	return aSession.Run(ctx)
}

// connect acquires the delegated credential, discovers and adapts the remote tools.
func (s *Service) connect(ctx context.Context, provider credential.Provider) error {
	scope := Scope(s.config.Audience)
	if _, err := provider.Acquire(ctx, scope); err != nil {
		return err
	}
	options := &mcp.ClientOptions{
		Transport:          mcp.ClientTransport{URL: s.config.Endpoint},
		CallTimeoutSeconds: s.config.CallTimeoutSeconds,
		Logger:             s.logger,
	}
	cli, err := mcp.NewClient(ctx, options, provider, scope)
	if err != nil {
		return err
	}
	s.client = cli
	descriptors, err := cli.ListTools(ctx)
	if err != nil {
		return err
	}
	for _, descriptor := range descriptors {
		fmt.Fprintf(s.stdout, "remote tool name: %s\n", descriptor.Name)
		fmt.Fprintf(s.stdout, "remote tool description: %s\n", descriptor.Description)
	}
	s.logger.Debug("discovered remote tools", "count", len(descriptors))
	s.tools, err = tool.AdaptAll(descriptors, cli)
	return err
}

// newModel builds the chat model provider, authenticating with an api key or the delegated identity.
func (s *Service) newModel(ctx context.Context, provider credential.Provider) llm.Provider {
	model := s.config.Model
	var opts []llm.OpenAIOption
	if model.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(model.APIKey))
	} else {
		opts = append(opts, llm.WithTokenSource(credential.TokenSource(ctx, provider, llm.CognitiveServicesScope)))
	}
	return llm.AzureOpenAI(model.Endpoint, model.Deployment, model.APIVersion, opts...)
}

// New connects to the tool host configured by cfg. Failures are fatal, nothing is retried.
func New(ctx context.Context, cfg *config.Client, provider credential.Provider, opts ...Option) (*Service, error) {
	ret := &Service{
		config: cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: slog.Default(),
		settings: llm.Settings{
			Temperature:   cfg.Model.Temperature,
			ToolChoice:    llm.ToolChoiceAuto,
			MaxIterations: cfg.Model.MaxIterations,
		},
	}
	for _, opt := range opts {
		opt(ret)
	}
	if err := ret.connect(ctx, provider); err != nil {
		return nil, err
	}
	if ret.model == nil {
		ret.model = ret.newModel(ctx, provider)
	}
	ret.runtime = llm.NewRuntime(ret.model, ret.logger)
	return ret, nil
}
