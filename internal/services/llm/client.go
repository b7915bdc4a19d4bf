package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider selects which hosted completion service handles a request.
type Provider string

const (
	ProviderGroq   Provider = "groq"
	ProviderOpenAI Provider = "openai"

	DefaultProvider = ProviderGroq
)

// Providers lists the supported providers in display order.
var Providers = []Provider{ProviderGroq, ProviderOpenAI}

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("api key is not configured")
	ErrEmptyResponse   = errors.New("no choices in completion response")
)

// ParseProvider maps a user supplied name ("Groq", "openai", ...) to a
// Provider. The empty string selects DefaultProvider.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultProvider, nil
	case ProviderGroq:
		return ProviderGroq, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

func (p Provider) String() string {
	return string(p)
}

// Completer sends a single prompt to a chat completion endpoint and returns
// the text of the first choice.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() Provider
	Model() string
}

// ProviderError wraps every failure that happens while talking to a
// provider: configuration, transport, API and response-shape errors.
type ProviderError struct {
	Provider Provider
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
