package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
)

const helpText = `Comandos:
• /start – ativar o assistente
• /end – pausar o assistente
• /status – ver estado
• /mode generic | mikrotik – trocar modo
• /mikrotik – atalho para modo MikroTik
• /generic – atalho para modo genérico`

const apologyText = "Ops! Tive um problema ao processar sua mensagem 😔"

type commandHandler func(ctx context.Context, msg *tgbotapi.Message, args string)

// Tabela de despacho explícita: padrão de comando → handler.
func (app *BotApp) registerCommands() {
	app.commands = map[string]commandHandler{
		"start":    app.cmdStart,
		"end":      app.cmdEnd,
		"status":   app.cmdStatus,
		"help":     app.cmdHelp,
		"mode":     app.cmdMode,
		"mikrotik": app.modeShortcut(conversation.ModeMikrotik),
		"generic":  app.modeShortcut(conversation.ModeGeneric),
	}
}

func (app *BotApp) cmdStart(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID
	conv, err := app.ensureConversation(ctx, chatID)
	if err != nil {
		log.Printf("[cmd] /start ensure fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	if err := app.Conversations.SetActive(ctx, conv.ID, true); err != nil {
		log.Printf("[cmd] /start activate fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	app.send(chatID, "✅ Assistente ativado! Vou responder suas mensagens aqui.\nEnvie /end para pausar quando quiser.")
}

func (app *BotApp) cmdEnd(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID
	conv, err := app.ensureConversation(ctx, chatID)
	if err != nil {
		log.Printf("[cmd] /end ensure fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	if err := app.Conversations.SetActive(ctx, conv.ID, false); err != nil {
		log.Printf("[cmd] /end deactivate fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	app.send(chatID, "⏸️ Assistente pausado. Envie /start para reativar.")
}

func (app *BotApp) cmdStatus(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID
	conv, err := app.ensureConversation(ctx, chatID)
	if err != nil {
		log.Printf("[cmd] /status ensure fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	if conv.Active {
		app.send(chatID, "🟢 Assistente está ativo.")
	} else {
		app.send(chatID, "🔴 Assistente está pausado.")
	}
}

func (app *BotApp) cmdHelp(_ context.Context, msg *tgbotapi.Message, _ string) {
	app.send(msg.Chat.ID, helpText)
}

// cmdMode — /mode [generic|mikrotik]. Argumento ausente ou inválido
// gera dica de uso, sem mutação.
func (app *BotApp) cmdMode(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	mode, err := conversation.ParseMode(args)
	if err != nil {
		app.send(chatID, "Use: /mode generic | /mode mikrotik")
		return
	}
	app.setMode(ctx, chatID, mode)
}

func (app *BotApp) modeShortcut(mode conversation.Mode) commandHandler {
	return func(ctx context.Context, msg *tgbotapi.Message, _ string) {
		app.setMode(ctx, msg.Chat.ID, mode)
	}
}

func (app *BotApp) setMode(ctx context.Context, chatID int64, mode conversation.Mode) {
	conv, err := app.ensureConversation(ctx, chatID)
	if err != nil {
		log.Printf("[cmd] mode ensure fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	if err := app.Conversations.SetDomainMode(ctx, conv.ID, mode); err != nil {
		log.Printf("[cmd] mode set fail chat=%d: %v", chatID, err)
		app.send(chatID, apologyText)
		return
	}
	app.send(chatID, "Modo atualizado para: "+string(mode))
}
