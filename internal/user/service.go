package user

import "context"

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name, username, email string) (*User, error) {
	return s.repo.Create(ctx, name, username, email)
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) UpsertPlaceholder(ctx context.Context, username, name, email string) (*User, error) {
	return s.repo.UpsertByUsername(ctx, username, name, email)
}
