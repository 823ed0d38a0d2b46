package ai

import (
	"context"
	"errors"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
	openai "github.com/sashabaranov/go-openai"
)

// ErrGeneration — falha na chamada ao modelo (ou chave ausente).
// O adapter que chamou converte em resposta de fallback pro usuário.
var ErrGeneration = errors.New("llm generation failed")

type Service interface {
	// GetReply monta o prompt (persona + histórico recente + texto novo),
	// chama o modelo e devolve o texto já sanitizado. Não persiste nada —
	// gravar as mensagens é responsabilidade do adapter de canal.
	GetReply(ctx context.Context, conversationID, userText string) (string, error)
}

// CompletionClient — cliente do modelo, substituível por stub nos testes.
type CompletionClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// HistoryStore — leitura de conversa e histórico (conversation.Service serve).
type HistoryStore interface {
	GetByID(ctx context.Context, id string) (*conversation.Conversation, error)
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error)
}
