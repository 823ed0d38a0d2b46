package telegram

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Run — ciclo principal de long-poll. Os updates são tratados em
// sequência: a persistência inbound+outbound de um turno termina antes
// do próximo update ser processado por esta instância.
func (app *BotApp) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := app.api.GetUpdatesChan(u)
	log.Printf("[bot_loop] started username=@%s", app.username)

	for update := range updates {
		app.safeHandle(context.Background(), update)
	}

	log.Printf("[bot_loop] stopped username=@%s", app.username)
}

// safeHandle isola cada update: pânico ou erro nunca derruba o loop.
func (app *BotApp) safeHandle(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[bot_loop] panic recovered: %v", r)
		}
	}()

	if update.Message == nil {
		return
	}
	app.handleMessage(ctx, update.Message)
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		cmd := strings.ToLower(msg.Command())
		handler, ok := app.commands[cmd]
		if !ok {
			// comando desconhecido: ignorado, igual a qualquer "/algo"
			return
		}
		handler(ctx, msg, strings.TrimSpace(msg.CommandArguments()))
		return
	}

	app.handleText(ctx, msg)
}
