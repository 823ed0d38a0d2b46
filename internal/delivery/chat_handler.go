package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/ai"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
)

type ChatHandler struct {
	conversations conversation.Service
	ai            ai.Service
	log           *logger.ZapLogger
}

func NewChatHandler(
	conversations conversation.Service,
	aiService ai.Service,
	log *logger.ZapLogger,
) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		ai:            aiService,
		log:           log,
	}
}

// PostChat — POST /chat. Um turno: valida, grava a mensagem do usuário,
// gera a resposta e grava a do assistente. Validação e not-found saem
// antes de qualquer escrita.
func (h *ChatHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConversationID string `json:"conversationId"`
		Text           string `json:"text"`
		DomainMode     string `json:"domainMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.ConversationID == "" || req.Text == "" {
		http.Error(w, "conversationId e text são obrigatórios", http.StatusBadRequest)
		return
	}

	conv, err := h.conversations.GetByID(r.Context(), req.ConversationID)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			http.Error(w, "Conversation não encontrada", http.StatusNotFound)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "get conversation failed", Error: err})
		http.Error(w, "failed to load conversation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if req.DomainMode != "" {
		mode, err := conversation.ParseMode(req.DomainMode)
		if err != nil {
			http.Error(w, "domainMode inválido: use generic ou mikrotik", http.StatusBadRequest)
			return
		}
		if mode != conv.DomainMode {
			if err := h.conversations.SetDomainMode(r.Context(), conv.ID, mode); err != nil {
				h.log.Log(logger.LogEntry{Level: "error", Message: "set mode failed", Error: err})
				http.Error(w, "failed to update mode: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}
	}

	if _, err := h.conversations.AddMessage(r.Context(), conv.ID, conversation.RoleUser, req.Text); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "persist user message failed", Error: err})
		http.Error(w, "failed to persist message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	answer, err := h.ai.GetReply(r.Context(), conv.ID, req.Text)
	if err != nil {
		// turno do usuário já está no histórico; devolvemos o fallback
		// em vez de perder a requisição
		h.log.Log(logger.LogEntry{Level: "error", Message: "generation failed", Error: err})
		answer = ai.FallbackReply
	}

	if _, err := h.conversations.AddMessage(r.Context(), conv.ID, conversation.RoleAssistant, answer); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "persist assistant message failed", Error: err})
		http.Error(w, "failed to persist message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
