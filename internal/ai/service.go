package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultHistoryLimit = 6

// FallbackReply — resposta fixa quando o modelo devolve vazio ou falha.
const FallbackReply = "Desculpe, não consegui gerar uma resposta agora."

type AiService struct {
	client CompletionClient
	store  HistoryStore
}

func NewAiService(client CompletionClient, store HistoryStore) *AiService {
	return &AiService{
		client: client,
		store:  store,
	}
}

func (s *AiService) GetReply(ctx context.Context, conversationID, userText string) (string, error) {
	if strings.TrimSpace(userText) == "" {
		return "", errors.New("empty user text")
	}

	start := time.Now()

	// 1) modo da conversa → persona
	conv, err := s.store.GetByID(ctx, conversationID)
	if err != nil {
		return "", err
	}

	// 2) histórico recente, já em ordem cronológica
	history, err := s.store.RecentMessages(ctx, conversationID, defaultHistoryLimit)
	if err != nil {
		return "", err
	}

	// 3) persona + histórico + turno novo
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemFor(conv.DomainMode),
	})

	for _, m := range history {
		txt := strings.TrimSpace(m.Content)
		if txt == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: txt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	ctxLLM, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	reply, err := s.client.GetCompletion(ctxLLM, messages)
	log.Printf("[ai][%.1fs] completion done conv=%s err=%v", time.Since(start).Seconds(), conversationID, err)

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = FallbackReply
	}
	return reply, nil
}
