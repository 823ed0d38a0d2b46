package telegram

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
)

// handleText — turno de chat: persiste a mensagem do usuário, gera a
// resposta e persiste a do assistente, nessa ordem. Conversa pausada
// ignora texto; em grupo só responde quando mencionado.
func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message) {
	text := msg.Text
	if strings.TrimSpace(text) == "" {
		return
	}

	chatID := msg.Chat.ID

	conv, err := app.ensureConversation(ctx, chatID)
	if err != nil {
		log.Printf("[text] ensure fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}

	if msg.Chat.IsGroup() || msg.Chat.IsSuperGroup() {
		if app.username == "" || !strings.Contains(text, "@"+app.username) {
			return
		}
	}

	if !conv.Active {
		return
	}

	if _, err := app.Conversations.AddMessage(ctx, conv.ID, conversation.RoleUser, text); err != nil {
		log.Printf("[text] persist inbound fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}

	reply, err := app.Ai.GetReply(ctx, conv.ID, text)
	if err != nil {
		// a mensagem do usuário já está durável; o turno não se perde
		log.Printf("[text] ai reply fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}

	if _, err := app.Conversations.AddMessage(ctx, conv.ID, conversation.RoleAssistant, reply); err != nil {
		log.Printf("[text] persist outbound fail chat=%d: %v", chatID, err)
	}

	for _, chunk := range splitIntoChunks(reply, maxMessageLen) {
		app.send(chatID, chunk)
	}
}
