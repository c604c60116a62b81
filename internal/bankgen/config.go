package bankgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every drafted bank; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how often a draft is requested again after a
	// retryable validation failure.
	MaxAttempts int

	MaxTokens   int
	Temperature float64

	// MaxAvoid caps how many prompts from DraftInput.Avoid go into the prompt.
	MaxAvoid int

	// MaxCount caps DraftInput.Count.
	MaxCount int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
			&PlayableValidator{},
		},
		MaxAttempts: 2,
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxAvoid:    20,
		MaxCount:    20,
	}
}
