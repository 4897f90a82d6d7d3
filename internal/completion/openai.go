// Package completion provides Completion Gateway implementations.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ashureev/mirror/internal/domain"
	"github.com/ashureev/mirror/internal/mirror"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4.1-mini"

// OpenAIConfig configures an OpenAI-compatible chat completions client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient is a mirror.Completer backed by the chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ mirror.Completer = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client. An API key is required.
func NewOpenAIClient(cfg OpenAIConfig, logger *slog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if logger == nil {
		logger = slog.Default()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	logger.Info("Initializing OpenAI client", "model", model)
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete implements mirror.Completer. A reply with no choices yields empty text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Message, params mirror.CompletionParams) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for i, m := range messages {
		role, err := chatRole(m.Role)
		if err != nil {
			return "", fmt.Errorf("message %d: %w", i, err)
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	if params.JSONObject {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.logger.WarnContext(ctx, "OpenAI returned no choices")
		return "", nil
	}

	c.logger.DebugContext(ctx, "Received response from OpenAI",
		"finish_reason", resp.Choices[0].FinishReason,
		"tokens", resp.Usage.TotalTokens,
	)
	return resp.Choices[0].Message.Content, nil
}

func chatRole(r domain.Role) (string, error) {
	switch r {
	case domain.RoleUser:
		return openai.ChatMessageRoleUser, nil
	case domain.RoleAssistant:
		return openai.ChatMessageRoleAssistant, nil
	case domain.RoleSystem:
		return openai.ChatMessageRoleSystem, nil
	default:
		return "", fmt.Errorf("unsupported role %q", r)
	}
}
