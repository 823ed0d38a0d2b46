package user

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	Create(ctx context.Context, name, username, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpsertByUsername(ctx context.Context, username, name, email string) (*User, error)
}

type Service interface {
	// Create — criação livre; violação de unicidade vem do banco e é
	// repassada pro caller, nunca engolida.
	Create(ctx context.Context, name, username, email string) (*User, error)
	List(ctx context.Context) ([]User, error)

	// UpsertPlaceholder — identidade compartilhada por canal
	// (web_default / telegram_default). Idempotente.
	UpsertPlaceholder(ctx context.Context, username, name, email string) (*User, error)
}
