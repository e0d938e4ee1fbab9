package blog

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const generateTimeout = 60 * time.Second

const systemPrompt = "You are an expert AI research blogger who writes engaging, " +
	"informative blog posts about the latest AI research discoveries. You always " +
	"respond with properly formatted JSON containing exactly 3 fields: title, " +
	"subtitle, and content. The content field must contain clean HTML formatting " +
	"without line breaks or special characters that could break JSON parsing. " +
	"Always ensure the JSON is valid and properly escaped."

// Gateway sends prompts to an OpenAI-compatible chat completion endpoint
// (Groq by default). One request per call, bounded timeout, no retries;
// the caller owns the fallback path.
type Gateway struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	topP        float32
}

func NewGateway(baseURL, apiKey, model string, temperature float32, maxTokens int, topP float32) *Gateway {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Gateway{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		topP:        topP,
	}
}

func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(timeoutCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		TopP:        g.topP,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model %q", g.model)
	}

	return resp.Choices[0].Message.Content, nil
}
