package conversation

import (
	"context"
	"errors"
	"time"
)

const (
	ChannelWeb      = "web"
	ChannelTelegram = "telegram"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Mode — persona da conversa (generic | mikrotik)
type Mode string

const (
	ModeGeneric  Mode = "generic"
	ModeMikrotik Mode = "mikrotik"
)

var (
	ErrNotFound    = errors.New("conversation not found")
	ErrInvalidMode = errors.New("invalid domain mode")
)

// ParseMode valida valores vindos de fora (body HTTP ou comando do bot).
// Valor desconhecido é rejeitado, nunca coagido.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGeneric:
		return ModeGeneric, nil
	case ModeMikrotik:
		return ModeMikrotik, nil
	default:
		return "", ErrInvalidMode
	}
}

type Conversation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Channel        string    `json:"channel"`
	ExternalChatID *string   `json:"external_chat_id,omitempty"`
	Title          string    `json:"title"`
	Active         bool      `json:"active"`
	DomainMode     Mode      `json:"domain_mode"`
	CreatedAt      time.Time `json:"created_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repo interface {
	Create(ctx context.Context, userID, channel, title string, mode Mode) (*Conversation, error)
	GetByID(ctx context.Context, id string) (*Conversation, error)
	UpsertByExternalChat(ctx context.Context, userID, channel, externalChatID, title string) (*Conversation, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetDomainMode(ctx context.Context, id string, mode Mode) error
	AddMessage(ctx context.Context, conversationID, role, content string) (*Message, error)
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
}

type Service interface {
	Create(ctx context.Context, userID, channel, title string, mode Mode) (*Conversation, error)
	GetByID(ctx context.Context, id string) (*Conversation, error)

	// UpsertByExternalChat — idempotente: duas chamadas com o mesmo
	// (channel, externalChatID) nunca criam duas conversas.
	UpsertByExternalChat(ctx context.Context, userID, channel, externalChatID, title string) (*Conversation, error)

	SetActive(ctx context.Context, id string, active bool) error
	SetDomainMode(ctx context.Context, id string, mode Mode) error
	AddMessage(ctx context.Context, conversationID, role, content string) (*Message, error)

	// RecentMessages devolve as últimas `limit` mensagens em ordem
	// cronológica (para montagem de prompt).
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
}
