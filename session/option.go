package session

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/viant/mcp-obo/llm"
)

// Option customises a session
type Option func(s *Session)

func WithInput(r io.Reader) Option {
	return func(s *Session) {
		s.input = r
	}
}

func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = newConsole(w)
	}
}

// WithSystemPrompt replaces the default system message, empty keeps the default.
func WithSystemPrompt(prompt string) Option {
	return func(s *Session) {
		if prompt != "" {
			s.systemPrompt = prompt
		}
	}
}

func WithSettings(settings llm.Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

// WithSpinner sets indicator glyphs and their rate
func WithSpinner(glyphs spinner.Spinner) Option {
	return func(s *Session) {
		s.glyphs = glyphs
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
