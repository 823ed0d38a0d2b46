package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/user"
)

// ---------------------------------------------------------------------------
// stubs
// ---------------------------------------------------------------------------

type memConvStore struct {
	convs map[string]*conversation.Conversation
	byKey map[string]string
	msgs  map[string][]conversation.Message
	seq   int64
}

func newMemConvStore() *memConvStore {
	return &memConvStore{
		convs: map[string]*conversation.Conversation{},
		byKey: map[string]string{},
		msgs:  map[string][]conversation.Message{},
	}
}

func (m *memConvStore) Create(_ context.Context, userID, channel, title string, mode conversation.Mode) (*conversation.Conversation, error) {
	m.seq++
	c := &conversation.Conversation{
		ID:         fmt.Sprintf("conv-%d", m.seq),
		UserID:     userID,
		Channel:    channel,
		Title:      title,
		DomainMode: mode,
		CreatedAt:  time.Now(),
	}
	m.convs[c.ID] = c
	return copyConv(c), nil
}

func (m *memConvStore) GetByID(_ context.Context, id string) (*conversation.Conversation, error) {
	c, ok := m.convs[id]
	if !ok {
		return nil, conversation.ErrNotFound
	}
	return copyConv(c), nil
}

func (m *memConvStore) UpsertByExternalChat(_ context.Context, userID, channel, externalChatID, title string) (*conversation.Conversation, error) {
	key := channel + "|" + externalChatID
	if id, ok := m.byKey[key]; ok {
		return copyConv(m.convs[id]), nil
	}
	m.seq++
	c := &conversation.Conversation{
		ID:             fmt.Sprintf("conv-%d", m.seq),
		UserID:         userID,
		Channel:        channel,
		ExternalChatID: &externalChatID,
		Title:          title,
		DomainMode:     conversation.ModeGeneric,
		CreatedAt:      time.Now(),
	}
	m.convs[c.ID] = c
	m.byKey[key] = c.ID
	return copyConv(c), nil
}

func (m *memConvStore) SetActive(_ context.Context, id string, active bool) error {
	c, ok := m.convs[id]
	if !ok {
		return conversation.ErrNotFound
	}
	c.Active = active
	return nil
}

func (m *memConvStore) SetDomainMode(_ context.Context, id string, mode conversation.Mode) error {
	if _, err := conversation.ParseMode(string(mode)); err != nil {
		return err
	}
	c, ok := m.convs[id]
	if !ok {
		return conversation.ErrNotFound
	}
	c.DomainMode = mode
	return nil
}

func (m *memConvStore) AddMessage(_ context.Context, conversationID, role, content string) (*conversation.Message, error) {
	if _, ok := m.convs[conversationID]; !ok {
		return nil, conversation.ErrNotFound
	}
	m.seq++
	msg := conversation.Message{
		ID:             m.seq,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	m.msgs[conversationID] = append(m.msgs[conversationID], msg)
	return &msg, nil
}

func (m *memConvStore) RecentMessages(_ context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	all := m.msgs[conversationID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return append([]conversation.Message(nil), all...), nil
}

func copyConv(c *conversation.Conversation) *conversation.Conversation {
	cp := *c
	return &cp
}

type stubUsers struct{}

func (stubUsers) Create(_ context.Context, name, username, email string) (*user.User, error) {
	return &user.User{ID: "u1", Name: name, Username: username, Email: email}, nil
}
func (stubUsers) List(_ context.Context) ([]user.User, error) { return nil, nil }
func (stubUsers) UpsertPlaceholder(_ context.Context, username, name, email string) (*user.User, error) {
	return &user.User{ID: "u1", Name: name, Username: username, Email: email}, nil
}

type stubAi struct {
	reply string
	err   error
	calls int
}

func (s *stubAi) GetReply(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

type fakeSender struct {
	sent []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func newTestApp(ai *stubAi) (*BotApp, *memConvStore, *fakeSender) {
	store := newMemConvStore()
	out := &fakeSender{}
	app := NewBotApp(store, stubUsers{}, ai)
	app.out = out
	app.username = "tatione_bot"
	return app, store, out
}

func textMsg(chatID int64, chatType, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID, Type: chatType},
	}
}

func commandMsg(chatID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	msg := textMsg(chatID, "private", text)
	msg.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: cmdLen},
	}
	return msg
}

func (m *memConvStore) telegramConv(t *testing.T, chatID int64) *conversation.Conversation {
	t.Helper()
	key := conversation.ChannelTelegram + "|" + fmt.Sprintf("%d", chatID)
	id, ok := m.byKey[key]
	if !ok {
		t.Fatalf("no conversation for chat %d", chatID)
	}
	return m.convs[id]
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestStartActivatesConversation(t *testing.T) {
	app, store, out := newTestApp(&stubAi{reply: "ok"})
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(42, "/start"))

	conv := store.telegramConv(t, 42)
	if !conv.Active {
		t.Fatalf("expected conversation active after /start")
	}
	if len(out.sent) != 1 || !strings.Contains(out.sent[0], "ativado") {
		t.Fatalf("expected activation confirmation, got %v", out.sent)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	app, store, _ := newTestApp(&stubAi{reply: "ok"})
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(42, "/status"))
	app.handleMessage(ctx, commandMsg(42, "/status"))

	if len(store.byKey) != 1 {
		t.Fatalf("expected a single conversation row, got %d", len(store.byKey))
	}
}

func TestInactiveTextIgnoredThenReactivated(t *testing.T) {
	ai := &stubAi{reply: "Olá!"}
	app, store, out := newTestApp(ai)
	ctx := context.Background()

	// ativa, pausa, manda texto: nada deve ser gravado
	app.handleMessage(ctx, commandMsg(7, "/start"))
	app.handleMessage(ctx, commandMsg(7, "/end"))
	app.handleMessage(ctx, textMsg(7, "private", "minha internet caiu"))

	conv := store.telegramConv(t, 7)
	if len(store.msgs[conv.ID]) != 0 {
		t.Fatalf("expected zero messages while paused, got %d", len(store.msgs[conv.ID]))
	}
	if ai.calls != 0 {
		t.Fatalf("generator must not be called while paused")
	}

	// reativa e reenvia: um turno completo
	app.handleMessage(ctx, commandMsg(7, "/start"))
	out.sent = nil
	app.handleMessage(ctx, textMsg(7, "private", "minha internet caiu"))

	msgs := store.msgs[conv.ID]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after reactivation, got %d", len(msgs))
	}
	if msgs[0].Role != conversation.RoleUser || msgs[1].Role != conversation.RoleAssistant {
		t.Fatalf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
	if len(out.sent) != 1 || out.sent[0] != "Olá!" {
		t.Fatalf("expected reply sent to chat, got %v", out.sent)
	}
}

func TestGroupTextRequiresMention(t *testing.T) {
	ai := &stubAi{reply: "Olá!"}
	app, store, _ := newTestApp(ai)
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(100, "/start"))

	app.handleMessage(ctx, textMsg(100, "group", "alguém me ajuda?"))
	conv := store.telegramConv(t, 100)
	if len(store.msgs[conv.ID]) != 0 {
		t.Fatalf("group message without mention must be ignored")
	}

	app.handleMessage(ctx, textMsg(100, "group", "@tatione_bot alguém me ajuda?"))
	if len(store.msgs[conv.ID]) != 2 {
		t.Fatalf("mentioned group message should produce a turn, got %d messages", len(store.msgs[conv.ID]))
	}
}

func TestModeCommand(t *testing.T) {
	app, store, out := newTestApp(&stubAi{reply: "ok"})
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(5, "/status"))
	out.sent = nil

	// sem argumento: dica de uso, sem mutação
	app.handleMessage(ctx, commandMsg(5, "/mode"))
	conv := store.telegramConv(t, 5)
	if conv.DomainMode != conversation.ModeGeneric {
		t.Fatalf("mode must stay generic on missing argument")
	}
	if len(out.sent) != 1 || !strings.Contains(out.sent[0], "Use: /mode") {
		t.Fatalf("expected usage hint, got %v", out.sent)
	}

	// argumento inválido: idem
	out.sent = nil
	app.handleMessage(ctx, commandMsg(5, "/mode turbo"))
	if conv.DomainMode != conversation.ModeGeneric {
		t.Fatalf("mode must stay generic on invalid argument")
	}
	if len(out.sent) != 1 || !strings.Contains(out.sent[0], "Use: /mode") {
		t.Fatalf("expected usage hint, got %v", out.sent)
	}

	// troca válida
	app.handleMessage(ctx, commandMsg(5, "/mode mikrotik"))
	if conv.DomainMode != conversation.ModeMikrotik {
		t.Fatalf("expected mikrotik mode, got %s", conv.DomainMode)
	}

	// atalho volta pro genérico
	app.handleMessage(ctx, commandMsg(5, "/generic"))
	if conv.DomainMode != conversation.ModeGeneric {
		t.Fatalf("expected generic mode after shortcut, got %s", conv.DomainMode)
	}
}

func TestStatusDoesNotTransition(t *testing.T) {
	app, store, out := newTestApp(&stubAi{reply: "ok"})
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(9, "/start"))
	out.sent = nil
	app.handleMessage(ctx, commandMsg(9, "/status"))

	conv := store.telegramConv(t, 9)
	if !conv.Active {
		t.Fatalf("/status must not change activation state")
	}
	if len(out.sent) != 1 || !strings.Contains(out.sent[0], "ativo") {
		t.Fatalf("expected active status report, got %v", out.sent)
	}
}

func TestGenerationFailureSendsApology(t *testing.T) {
	ai := &stubAi{err: fmt.Errorf("boom")}
	app, store, out := newTestApp(ai)
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(3, "/start"))
	out.sent = nil
	app.handleMessage(ctx, textMsg(3, "private", "oi"))

	conv := store.telegramConv(t, 3)
	msgs := store.msgs[conv.ID]
	// inbound já estava durável antes da geração falhar
	if len(msgs) != 1 || msgs[0].Role != conversation.RoleUser {
		t.Fatalf("expected only the inbound message persisted, got %v", msgs)
	}
	if len(out.sent) != 1 || out.sent[0] != apologyText {
		t.Fatalf("expected apology, got %v", out.sent)
	}
}

func TestLongReplyIsChunked(t *testing.T) {
	long := strings.Repeat("x", 10000)
	app, _, out := newTestApp(&stubAi{reply: long})
	ctx := context.Background()

	app.handleMessage(ctx, commandMsg(8, "/start"))
	out.sent = nil
	app.handleMessage(ctx, textMsg(8, "private", "manda tudo"))

	if len(out.sent) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(out.sent))
	}
	if strings.Join(out.sent, "") != long {
		t.Fatalf("chunks do not reassemble the reply")
	}
}

func TestUnknownCommandIgnored(t *testing.T) {
	app, _, out := newTestApp(&stubAi{reply: "ok"})
	app.handleMessage(context.Background(), commandMsg(2, "/foobar"))
	if len(out.sent) != 0 {
		t.Fatalf("unknown command must be ignored, got %v", out.sent)
	}
}
