package bankgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/llm"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/quiz"
)

// DefaultCount is used when DraftInput.Count is zero.
const DefaultCount = 5

// ErrNoTopic is returned when DraftInput.Topic is empty.
var ErrNoTopic = errors.New("bankgen: topic is required")

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Draft asks the provider for a bank, converts it and validates it. A
// retryable validation failure is sent back to the model as feedback,
// up to Config.MaxAttempts drafts in total.
func (g *LLMGenerator) Draft(ctx context.Context, input DraftInput) (*bank.Bank, error) {
	input, err := g.prepare(input)
	if err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeBankDraft)

	messages := llm.UserMessage(buildUserMessage(input, g.config))
	attempts := max(1, g.config.MaxAttempts)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := g.provider.Generate(ctx, llm.Request{
			System:      systemPrompt,
			Messages:    messages,
			Schema:      DraftSchema,
			MaxTokens:   g.config.MaxTokens,
			Temperature: g.config.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed: %w", err)
		}

		var raw draftOutput
		if err := json.Unmarshal(resp.Content, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response: %w", err)
		}

		b, verr := g.convert(raw, input)
		if verr == nil {
			verr = g.validate(b, input)
		}
		if verr == nil {
			return b, nil
		}

		lastErr = verr
		if !verr.Retryable {
			break
		}
		logger.Warn("bankgen: draft rejected", logrus.Fields{
			"attempt":   attempt,
			"validator": verr.Validator,
			"reason":    verr.Message,
		})
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(resp.Content)},
			llm.Message{Role: llm.RoleUser, Content: feedbackMessage(verr)},
		)
	}
	return nil, lastErr
}

func (g *LLMGenerator) prepare(input DraftInput) (DraftInput, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	if input.Topic == "" {
		return input, ErrNoTopic
	}
	v, err := quiz.ParseVariant(string(input.Variant))
	if err != nil {
		return input, err
	}
	input.Variant = v
	if input.Count <= 0 {
		input.Count = DefaultCount
	}
	if g.config.MaxCount > 0 && input.Count > g.config.MaxCount {
		input.Count = g.config.MaxCount
	}
	if input.ID == "" {
		input.ID = Slug(input.Topic)
	}
	return input, nil
}

func (g *LLMGenerator) validate(b *bank.Bank, input DraftInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(b, input); verr != nil {
			return verr
		}
	}
	return nil
}

// convert builds a bank from the raw draft and round-trips it through the
// bank parser so drafts obey the same rules as hand-written files.
func (g *LLMGenerator) convert(raw draftOutput, input DraftInput) (*bank.Bank, *ValidationError) {
	b := &bank.Bank{
		Format:  bank.CurrentFormat,
		ID:      input.ID,
		Title:   strings.TrimSpace(raw.Title),
		Variant: input.Variant,
		Items:   make([]bank.Item, 0, len(raw.Questions)),
	}
	if b.Title == "" {
		b.Title = input.Topic
	}
	if input.Variant == quiz.VariantSort {
		b.Boxes = &bank.Boxes{Left: strings.TrimSpace(raw.LeftBox), Right: strings.TrimSpace(raw.RightBox)}
	}

	for _, q := range raw.Questions {
		it := bank.Item{
			Question:    strings.TrimSpace(q.Question),
			Explanation: strings.TrimSpace(q.Explanation),
		}
		for _, opt := range q.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				it.Options = append(it.Options, bank.Scalar(opt))
			}
		}
		correct := strings.TrimSpace(q.Correct)
		switch input.Variant {
		case quiz.VariantSort:
			it.Key = sortKey(q.LeftWords, q.RightWords)
			it.Options = withKeyWords(it.Options, q.LeftWords, q.RightWords)
		case quiz.VariantAudio:
			it.Correct = bank.Scalar(correct)
			it.Voice = correct
		default:
			it.Correct = bank.Scalar(correct)
		}
		b.Items = append(b.Items, it)
	}

	data, err := b.Marshal()
	if err != nil {
		return nil, &ValidationError{Validator: "parse", Message: err.Error()}
	}
	parsed, err := bank.Parse(data)
	if err != nil {
		return nil, &ValidationError{Validator: "parse", Message: err.Error(), Retryable: true}
	}
	return parsed, nil
}

func sortKey(left, right []string) map[string]string {
	key := map[string]string{}
	for _, w := range left {
		if w = strings.TrimSpace(w); w != "" {
			key[w] = quiz.SideLeft.String()
		}
	}
	for _, w := range right {
		if w = strings.TrimSpace(w); w != "" {
			key[w] = quiz.SideRight.String()
		}
	}
	if len(key) == 0 {
		return nil
	}
	return key
}

// withKeyWords appends sort words the model left out of the options.
func withKeyWords(opts []bank.Scalar, groups ...[]string) []bank.Scalar {
	have := make(map[string]bool, len(opts))
	for _, o := range opts {
		have[string(o)] = true
	}
	for _, words := range groups {
		for _, w := range words {
			if w = strings.TrimSpace(w); w != "" && !have[w] {
				opts = append(opts, bank.Scalar(w))
				have[w] = true
			}
		}
	}
	return opts
}

// Slug turns a topic into a bank ID: lower-case ASCII letters and digits
// joined by dashes.
func Slug(topic string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(topic) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "draft"
	}
	return b.String()
}
