package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/versolabs/verso/internal/model"
)

// OpenAIProvider generates summaries through the OpenAI Chat Completions
// API. A custom BaseURL covers any OpenAI-compatible endpoint (e.g. a
// local Ollama server).
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Summarize asks the model for a summary of the article body, constrained
// to the sentence budget and to the article's own content.
func (p *OpenAIProvider) Summarize(ctx context.Context, article *model.Article, sentences int) (string, error) {
	modelName := p.cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	timeout := p.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Summarize the following news article in exactly %d sentence(s).
Use only information present in the article text. Do not speculate, do not
add outside facts, and do not comment on whether the article is accurate.

Title: %s

Article:
%s`, sentences, article.Title, article.Body)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     modelName,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a news desk assistant that writes terse, factual article summaries.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
