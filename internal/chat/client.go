// Package chat relays conversations to the hosted completion API for the
// dashboard's assistant tab and the proxy endpoint.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dylanratti/grain/internal/config"
)

// The failure kinds callers tell apart. A missing credential is a
// configuration gap, not a transient fault, and an empty reply is not a
// transport error.
var (
	ErrNoCredential = errors.New("no completion API key configured")
	ErrEmptyReply   = errors.New("model returned an empty reply")
)

const systemPrompt = "You are a pragmatic personal-finance coach. " +
	"Ground every answer in the budget snapshot provided below and be " +
	"concrete: suggest dollar amounts from the snapshot over generic advice. " +
	"Keep answers short. You are not a licensed financial adviser; say so " +
	"if asked for investment recommendations."

// Message is one turn of the conversation relayed upstream. Role is either
// "user" or "assistant".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Client is a minimal pass-through to the completion API: one upstream
// request per Ask, no retries, no streaming, and no conversation state.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a client from config. It returns ErrNoCredential when
// neither the environment nor the config file carries an API key.
func NewClient(cfg config.Config) (*Client, error) {
	key := config.GetOpenAIAPIKey(cfg)
	if key == "" {
		return nil, ErrNoCredential
	}

	oc := openai.DefaultConfig(key)
	if cfg.Chat.BaseURL != "" {
		oc.BaseURL = cfg.Chat.BaseURL
	}

	timeout := time.Duration(cfg.Chat.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Chat.Model,
		timeout: timeout,
	}, nil
}

// Model returns the configured completion model name.
func (c *Client) Model() string {
	return c.model
}

// Ask relays the conversation plus a budget snapshot and returns the reply.
// The snapshot rides in the system prompt so the model grounds its answers
// in actual numbers.
func (c *Client) Ask(ctx context.Context, messages []Message, planContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	system := systemPrompt
	if planContext != "" {
		system += "\n\nCurrent budget snapshot:\n" + planContext
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)+1),
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}

	return reply, nil
}
