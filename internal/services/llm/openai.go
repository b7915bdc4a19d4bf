package llm

import (
	"context"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog/log"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/config"
)

// ChatCompletionClient talks to any OpenAI-compatible chat completion API.
// Groq and OpenAI share the request and response shape and differ only in
// base URL, key and model.
type ChatCompletionClient struct {
	client   openai.Client
	provider Provider
	model    string
	hasKey   bool
}

var _ Completer = (*ChatCompletionClient)(nil)

// NewChatCompletionClient builds a client for provider. A missing API key is
// not an error here; Complete reports it when the client is used.
func NewChatCompletionClient(provider Provider, cfg config.ProviderConfig, opts ...option.RequestOption) *ChatCompletionClient {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	return &ChatCompletionClient{
		client:   openai.NewClient(append(base, opts...)...),
		provider: provider,
		model:    cfg.Model,
		hasKey:   cfg.APIKey != "",
	}
}

// NewCompleters returns one completer per supported provider.
func NewCompleters(cfg config.LLMConfig, httpClient *http.Client) map[Provider]Completer {
	var opts []option.RequestOption
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return map[Provider]Completer{
		ProviderGroq:   NewChatCompletionClient(ProviderGroq, withDefaults(cfg.Groq, config.DefaultGroqModel, config.DefaultGroqBaseURL), opts...),
		ProviderOpenAI: NewChatCompletionClient(ProviderOpenAI, withDefaults(cfg.OpenAI, config.DefaultOpenAIModel, config.DefaultOpenAIBaseURL), opts...),
	}
}

func withDefaults(cfg config.ProviderConfig, model, baseURL string) config.ProviderConfig {
	if cfg.Model == "" {
		cfg.Model = model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	return cfg
}

func (c *ChatCompletionClient) Provider() Provider {
	return c.provider
}

func (c *ChatCompletionClient) Model() string {
	return c.model
}

// Complete sends prompt as the only user message and asks for one choice.
func (c *ChatCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.hasKey {
		return "", &ProviderError{Provider: c.provider, Op: "configure client", Err: ErrMissingAPIKey}
	}

	log.Debug().
		Str("provider", c.provider.String()).
		Str("model", c.model).
		Int("prompt_chars", len(prompt)).
		Msg("Sending chat completion request")

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		N: openai.Int(1),
	})
	if err != nil {
		return "", &ProviderError{Provider: c.provider, Op: "chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: c.provider, Op: "read completion", Err: ErrEmptyResponse}
	}

	return resp.Choices[0].Message.Content, nil
}
