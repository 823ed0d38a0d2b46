package delivery

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/user"
)

const (
	webUsername = "web_default"
	webName     = "Web User"
	webEmail    = "web_default@example.com"
)

type ConversationHandler struct {
	conversations conversation.Service
	users         user.Service
	log           *logger.ZapLogger
}

func NewConversationHandler(
	conversations conversation.Service,
	users user.Service,
	log *logger.ZapLogger,
) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		users:         users,
		log:           log,
	}
}

// Create — POST /conversations. Cria sempre uma conversa nova (sem upsert)
// debaixo da identidade compartilhada do canal web.
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		DomainMode string `json:"domainMode"`
	}
	// body vazio é válido: POST /conversations {}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	mode := conversation.ModeGeneric
	if req.DomainMode != "" {
		parsed, err := conversation.ParseMode(req.DomainMode)
		if err != nil {
			http.Error(w, "domainMode inválido: use generic ou mikrotik", http.StatusBadRequest)
			return
		}
		mode = parsed
	}

	title := req.Title
	if title == "" {
		title = "Web chat"
	}

	owner, err := h.users.UpsertPlaceholder(r.Context(), webUsername, webName, webEmail)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "upsert web user failed", Error: err})
		http.Error(w, "failed to resolve web user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	conv, err := h.conversations.Create(r.Context(), owner.ID, conversation.ChannelWeb, title, mode)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "create conversation failed", Error: err})
		http.Error(w, "failed to create conversation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         conv.ID,
		"domainMode": conv.DomainMode,
	})
}
