package llm

const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"

	DefaultMaxIterations = 8
)

// Settings controls a single completion.
type Settings struct {
	// Temperature defaults to 0 for deterministic answers.
	Temperature   *float64
	ToolChoice    string
	MaxIterations int
	MaxTokens     int
}

func (s Settings) temperature() float64 {
	if s.Temperature == nil {
		return 0
	}
	return *s.Temperature
}

func (s Settings) toolChoice() string {
	if s.ToolChoice == "" {
		return ToolChoiceAuto
	}
	return s.ToolChoice
}

func (s Settings) maxIterations() int {
	if s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}
