package session

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/viant/mcp-obo/llm"
	"github.com/viant/mcp-obo/tool"
)

// DefaultSystemPrompt seeds every conversation
const DefaultSystemPrompt = "You are a helpful assistant that can answer questions about user's profile"

const (
	readyBanner     = "Assistant Ready! (Type 'exit' to quit)\n\n"
	userPrompt      = "You: "
	assistantPrefix = "Assistant: "
	goodbye         = "Goodbye!\n"
	exitCommand     = "exit"
)

// State is the loop position
type State int

const (
	AwaitingInput State = iota
	Processing
	Rendering
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "AwaitingInput"
	case Processing:
		return "Processing"
	case Rendering:
		return "Rendering"
	default:
		return "Closed"
	}
}

// Completer answers a conversation, possibly calling tools
type Completer interface {
	Complete(ctx context.Context, history llm.History, tools *tool.Set, settings llm.Settings) (*llm.Message, error)
}

// Session is a single interactive conversation.
type Session struct {
	completer    Completer
	tools        *tool.Set
	settings     llm.Settings
	systemPrompt string
	input        io.Reader
	out          *console
	glyphs       spinner.Spinner
	history      llm.History
	state        State
	logger       *slog.Logger
}

// History returns the conversation so far
func (s *Session) History() llm.History {
	return s.history.Clone()
}

// State returns the current loop state
func (s *Session) State() State {
	return s.state
}

// Run loops on user input until exit, end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.history = llm.History{llm.NewSystemMessage(s.systemPrompt)}
	s.out.Printf(readyBanner)
	stop := make(chan struct{})
	defer close(stop)
	lines := s.readLines(stop)
	defer func() { s.state = Closed }()
	for {
		s.state = AwaitingInput
		s.out.Printf(userPrompt)
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, open := <-lines:
			if open && result.err != nil {
				return result.err
			}
			line, ok = result.text, open
		}
		if !ok || isExit(line) {
			s.out.Printf(goodbye)
			return nil
		}
		s.turn(ctx, line)
	}
}

func isExit(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.EqualFold(line, exitCommand)
}

func (s *Session) turn(ctx context.Context, line string) {
	s.state = Processing
	s.history.Append(llm.NewUserMessage(line))
	s.out.Printf(assistantPrefix)
	reply, err := s.complete(ctx)
	s.state = Rendering
	if err != nil {
		s.logger.DebugContext(ctx, "completion failed", "error", err)
		s.out.Printf("\r%sError: %s\n\n", assistantPrefix, err.Error())
		return
	}
	s.history.Append(llm.NewAssistantMessage(reply.Content))
	s.out.Printf("\r%s%s\n\n", assistantPrefix, reply.Content)
}

// complete runs the completer while the indicator animates, the indicator is joined before returning.
func (s *Session) complete(ctx context.Context) (*llm.Message, error) {
	indicator := startIndicator(s.out, assistantPrefix, s.glyphs)
	defer indicator.Stop()
	return s.completer.Complete(ctx, s.history, s.tools, s.settings)
}

type inputLine struct {
	text string
	err  error
}

// readLines delivers input lines one at a time, the channel is closed at end of input.
func (s *Session) readLines(stop <-chan struct{}) <-chan inputLine {
	ret := make(chan inputLine)
	send := func(line inputLine) bool {
		select {
		case ret <- line:
			return true
		case <-stop:
			return false
		}
	}
	go func() {
		defer close(ret)
		scanner := bufio.NewScanner(s.input)
		for scanner.Scan() {
			if !send(inputLine{text: scanner.Text()}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(inputLine{err: err})
		}
	}()
	return ret
}

// New creates a session
func New(completer Completer, tools *tool.Set, opts ...Option) *Session {
	ret := &Session{
		completer:    completer,
		tools:        tools,
		systemPrompt: DefaultSystemPrompt,
		input:        os.Stdin,
		out:          newConsole(os.Stdout),
		glyphs:       spinner.Line,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
