package conversation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type infra struct {
	db *sql.DB
}

func NewInfra(db *sql.DB) Repo {
	return &infra{db: db}
}

func (i *infra) Create(ctx context.Context, userID, channel, title string, mode Mode) (*Conversation, error) {
	var c Conversation
	err := i.db.QueryRowContext(ctx, `
		INSERT INTO conversations (id, user_id, channel, title, domain_mode, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id, user_id, channel, external_chat_id, title, is_active, domain_mode, created_at
	`, uuid.NewString(), userID, channel, title, string(mode), time.Now()).Scan(
		&c.ID,
		&c.UserID,
		&c.Channel,
		&c.ExternalChatID,
		&c.Title,
		&c.Active,
		&c.DomainMode,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (i *infra) GetByID(ctx context.Context, id string) (*Conversation, error) {
	var c Conversation
	err := i.db.QueryRowContext(ctx, `
		SELECT id, user_id, channel, external_chat_id, title, is_active, domain_mode, created_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Channel,
		&c.ExternalChatID,
		&c.Title,
		&c.Active,
		&c.DomainMode,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertByExternalChat — create-if-absent por (channel, external_chat_id).
// O DO UPDATE é um no-op só para o RETURNING devolver a linha existente.
func (i *infra) UpsertByExternalChat(ctx context.Context, userID, channel, externalChatID, title string) (*Conversation, error) {
	var c Conversation
	err := i.db.QueryRowContext(ctx, `
		INSERT INTO conversations (id, user_id, channel, external_chat_id, title, domain_mode, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, 'generic', false, $6)
		ON CONFLICT (channel, external_chat_id)
		DO UPDATE SET channel = EXCLUDED.channel
		RETURNING id, user_id, channel, external_chat_id, title, is_active, domain_mode, created_at
	`, uuid.NewString(), userID, channel, externalChatID, title, time.Now()).Scan(
		&c.ID,
		&c.UserID,
		&c.Channel,
		&c.ExternalChatID,
		&c.Title,
		&c.Active,
		&c.DomainMode,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (i *infra) SetActive(ctx context.Context, id string, active bool) error {
	res, err := i.db.ExecContext(ctx, `
		UPDATE conversations SET is_active = $1 WHERE id = $2
	`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (i *infra) SetDomainMode(ctx context.Context, id string, mode Mode) error {
	res, err := i.db.ExecContext(ctx, `
		UPDATE conversations SET domain_mode = $1 WHERE id = $2
	`, string(mode), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (i *infra) AddMessage(ctx context.Context, conversationID, role, content string) (*Message, error) {
	var m Message
	err := i.db.QueryRowContext(ctx, `
		INSERT INTO messages (conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, conversation_id, role, content, created_at
	`, conversationID, role, content, time.Now()).Scan(
		&m.ID,
		&m.ConversationID,
		&m.Role,
		&m.Content,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (i *infra) RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.Role,
			&m.Content,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// a query vem do mais novo pro mais velho; o prompt precisa de ordem cronológica
	for l, r := 0, len(msgs)-1; l < r; l, r = l+1, r-1 {
		msgs[l], msgs[r] = msgs[r], msgs[l]
	}
	return msgs, nil
}
