package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/ai"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/user"
)

const (
	telegramUsername = "telegram_default"
	telegramName     = "Telegram User"
	telegramEmail    = "telegram_default@example.com"
)

// sender — o que o app precisa do tgbotapi.BotAPI pra responder.
// Interface separada pra dar pra plugar um fake nos testes.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type BotApp struct {
	Conversations conversation.Service
	Users         user.Service
	Ai            ai.Service

	api      *tgbotapi.BotAPI
	out      sender
	username string
	commands map[string]commandHandler
}

func NewBotApp(
	conversations conversation.Service,
	users user.Service,
	aiService ai.Service,
) *BotApp {
	app := &BotApp{
		Conversations: conversations,
		Users:         users,
		Ai:            aiService,
	}
	app.registerCommands()
	return app
}

func (app *BotApp) InitBot(token string) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	app.api = bot
	app.out = bot
	app.username = bot.Self.UserName
	log.Printf("[bot_app] ready: @%s", app.username)
	return nil
}

// Stop encerra o long-poll; best-effort no shutdown.
func (app *BotApp) Stop() {
	if app.api != nil {
		app.api.StopReceivingUpdates()
	}
}

func (app *BotApp) send(chatID int64, text string) {
	if _, err := app.out.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[bot_app] send fail chat=%d: %v", chatID, err)
	}
}

// ensureConversation — upsert da identidade compartilhada do canal +
// upsert da conversa por (telegram, chat_id). Nunca duplica.
func (app *BotApp) ensureConversation(ctx context.Context, chatID int64) (*conversation.Conversation, error) {
	owner, err := app.Users.UpsertPlaceholder(ctx, telegramUsername, telegramName, telegramEmail)
	if err != nil {
		return nil, err
	}
	return app.Conversations.UpsertByExternalChat(
		ctx,
		owner.ID,
		conversation.ChannelTelegram,
		strconv.FormatInt(chatID, 10),
		fmt.Sprintf("Chat %d", chatID),
	)
}
