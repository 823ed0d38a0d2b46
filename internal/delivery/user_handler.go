package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/lib/pq"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/user"
)

type UserHandler struct {
	users user.Service
	log   *logger.ZapLogger
}

func NewUserHandler(users user.Service, log *logger.ZapLogger) *UserHandler {
	return &UserHandler{
		users: users,
		log:   log,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "list users failed", Error: err})
		http.Error(w, "failed to list users: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Username == "" || req.Email == "" {
		http.Error(w, "name, username e email são obrigatórios", http.StatusBadRequest)
		return
	}

	created, err := h.users.Create(r.Context(), req.Name, req.Username, req.Email)
	if err != nil {
		// unicidade é do banco; só traduzimos o código
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			http.Error(w, "username ou email já cadastrado", http.StatusConflict)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "create user failed", Error: err})
		http.Error(w, "failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
