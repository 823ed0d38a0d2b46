package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hUsers *UserHandler,
	hConversations *ConversationHandler,
	hChat *ChatHandler,
) {
	r.With(httputil.RecoverMiddleware).Get("/health", Health)

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- usuários ---
		pr.Get("/users", hUsers.List)
		pr.Post("/users", hUsers.Create)

		// --- conversas ---
		pr.Post("/conversations", hConversations.Create)

		// --- chat ---
		pr.Post("/chat", hChat.PostChat)
	})
}
