package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

const (
	defaultCLICommand = "az account get-access-token --output json"
	cliExpiryLayout   = "2006-01-02 15:04:05.999999"
)

// Runner executes a shell command and returns its output and exit code.
type Runner func(ctx context.Context, command string) (string, int, error)

// CLIProvider obtains credentials from the locally signed-in identity CLI.
type CLIProvider struct {
	command string
	tenant  string
	runner  Runner
}

// CLIOption customises a CLIProvider
type CLIOption func(p *CLIProvider)

// WithCommand replaces the base token command.
func WithCommand(command string) CLIOption {
	return func(p *CLIProvider) {
		p.command = command
	}
}

// WithTenant pins the tenant the token is requested from.
func WithTenant(tenant string) CLIOption {
	return func(p *CLIProvider) {
		p.tenant = tenant
	}
}

// WithRunner sets the command runner.
func WithRunner(runner Runner) CLIOption {
	return func(p *CLIProvider) {
		p.runner = runner
	}
}

type cliToken struct {
	AccessToken string          `json:"accessToken"`
	ExpiresOn   string          `json:"expiresOn"`
	ExpiresAt   json.RawMessage `json:"expires_on"`
}

func (t *cliToken) expiry() time.Time {
	if raw := strings.Trim(string(t.ExpiresAt), `"`); raw != "" {
		if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.Unix(epoch, 0)
		}
	}
	if t.ExpiresOn != "" {
		if ts, err := time.ParseInLocation(cliExpiryLayout, t.ExpiresOn, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Acquire runs the token command for the first scope
func (p *CLIProvider) Acquire(ctx context.Context, scopes ...string) (*Credential, error) {
	if len(scopes) == 0 {
		return nil, fmt.Errorf("%w: no scope requested", ErrAuth)
	}
	command := p.Command(scopes...)
	output, code, err := p.runner(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if code != 0 {
		return nil, fmt.Errorf("%w: token command exited with %d: %s", ErrAuth, code, strings.TrimSpace(output))
	}
	token := &cliToken{}
	if err = json.Unmarshal([]byte(jsonPayload(output)), token); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token output: %v", ErrAuth, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token output had no accessToken", ErrAuth)
	}
	return &Credential{
		Token:    token.AccessToken,
		Audience: Audience(scopes...),
		Scopes:   scopes,
		Expiry:   token.expiry(),
	}, nil
}

// Command returns the shell command used for scopes.
func (p *CLIProvider) Command(scopes ...string) string {
	builder := strings.Builder{}
	builder.WriteString(p.command)
	scope := scopes[0]
	if strings.HasSuffix(scope, "/.default") {
		builder.WriteString(" --resource " + quote(Audience(scope)))
	} else {
		builder.WriteString(" --scope " + quote(scope))
	}
	if p.tenant != "" {
		builder.WriteString(" --tenant " + quote(p.tenant))
	}
	return builder.String()
}

// jsonPayload drops anything the shell printed before the JSON document.
func jsonPayload(output string) string {
	if index := strings.Index(output, "{"); index > 0 {
		return output[index:]
	}
	return output
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// NewCLIProvider creates a provider running commands in a local shell unless WithRunner is supplied.
func NewCLIProvider(ctx context.Context, options ...CLIOption) (*CLIProvider, error) {
	ret := &CLIProvider{command: defaultCLICommand}
	for _, opt := range options {
		opt(ret)
	}
	if ret.runner == nil {
		service, err := gosh.New(ctx, local.New())
		if err != nil {
			return nil, fmt.Errorf("failed to start shell: %w", err)
		}
		ret.runner = func(ctx context.Context, command string) (string, int, error) {
			return service.Run(ctx, command)
		}
	}
	return ret, nil
}
