package extraction

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/llm"
)

// Request is one extraction asked for by a caller.
type Request struct {
	ArticleText string
	Provider    llm.Provider
}

// Result is what a caller renders. Outcome and Reason let callers tell a
// garbage reply apart from a model that found nothing; both render the same.
type Result struct {
	Provider llm.Provider   `json:"provider"`
	Model    string         `json:"model"`
	Outcome  Outcome        `json:"outcome"`
	Reason   FallbackReason `json:"fallback_reason,omitempty"`
	Table    Table          `json:"rows"`
}

// Service turns article text into a table of financial measures using one
// of the configured completion providers.
type Service struct {
	completers map[llm.Provider]llm.Completer
}

// NewService creates a Service over the given completers.
func NewService(completers map[llm.Provider]llm.Completer) *Service {
	return &Service{completers: completers}
}

// Providers returns the configured completers in llm.Providers order.
func (s *Service) Providers() []llm.Completer {
	out := make([]llm.Completer, 0, len(s.completers))
	for _, p := range llm.Providers {
		if c, ok := s.completers[p]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Extract makes exactly one completion call. Replies that are not a JSON
// object produce the fallback table instead of an error; provider failures
// are returned to the caller.
func (s *Service) Extract(ctx context.Context, req Request) (*Result, error) {
	provider := req.Provider
	if provider == "" {
		provider = llm.DefaultProvider
	}

	completer, ok := s.completers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", llm.ErrUnknownProvider, provider)
	}

	log.Info().
		Str("provider", provider.String()).
		Str("model", completer.Model()).
		Msg("Extracting financial data")

	reply, err := completer.Complete(ctx, ComposePrompt(req.ArticleText))
	if err != nil {
		return nil, fmt.Errorf("extract financial data: %w", err)
	}

	parsed := ParseReply(reply)

	result := &Result{
		Provider: provider,
		Model:    completer.Model(),
		Outcome:  parsed.Outcome,
		Reason:   parsed.Reason,
	}

	if parsed.Outcome == OutcomeFallback {
		log.Warn().
			Str("provider", provider.String()).
			Str("reason", string(parsed.Reason)).
			Str("reply", reply).
			Msg("Model reply is not a JSON object, using fallback table")
		result.Table = FallbackTable()
		return result, nil
	}

	result.Table = TableFromFields(parsed.Fields)

	data := zerolog.Dict()
	for _, f := range parsed.Fields {
		data.Str(f.Key, f.Value)
	}
	log.Info().
		Str("provider", provider.String()).
		Dict("data", data).
		Msg("Parsed financial data")

	return result, nil
}
