package llm

import "context"

// Purposes label LLM calls in the event log.
const (
	PurposeBankDraft = "bank_draft"
	purposeUnknown   = "unknown"
)

type purposeKey struct{}

// WithPurpose returns ctx labelled with purpose. LoggingProvider records
// the label with every call made under ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return purposeUnknown
	}
	return p
}
