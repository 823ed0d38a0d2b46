package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type infra struct {
	db *sql.DB
}

func NewInfra(db *sql.DB) Repo {
	return &infra{db: db}
}

func (i *infra) Create(ctx context.Context, name, username, email string) (*User, error) {
	var u User
	err := i.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, username, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, username, email, created_at
	`, uuid.NewString(), name, username, email, time.Now()).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (i *infra) List(ctx context.Context) ([]User, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, name, username, email, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (i *infra) UpsertByUsername(ctx context.Context, username, name, email string) (*User, error) {
	var u User
	err := i.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, username, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username)
		DO UPDATE SET username = EXCLUDED.username
		RETURNING id, name, username, email, created_at
	`, uuid.NewString(), name, username, email, time.Now()).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
