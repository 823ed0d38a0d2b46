package ai

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	apiKey string
	model  string
	budget int
}

// NewOpenAIClient lê OPENAI_API_KEY / OPENAI_MODEL / OPENAI_THINKING_BUDGET.
// Chave ausente não derruba o processo: a falha acontece na primeira
// tentativa de geração.
func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Printf("[ai] OPENAI_API_KEY ausente; geração vai falhar até configurar")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	budget := 0
	if v := os.Getenv("OPENAI_THINKING_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			budget = n
		}
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		apiKey: apiKey,
		model:  model,
		budget: budget,
	}
}

func (c *OpenAIClient) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if c.budget > 0 {
		req.MaxCompletionTokens = c.budget
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
