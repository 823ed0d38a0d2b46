package conversation

import "context"

type service struct {
	repo Repo
}

func NewService(repo Repo) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID, channel, title string, mode Mode) (*Conversation, error) {
	if mode == "" {
		mode = ModeGeneric
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, channel, title, mode)
}

func (s *service) GetByID(ctx context.Context, id string) (*Conversation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpsertByExternalChat(ctx context.Context, userID, channel, externalChatID, title string) (*Conversation, error) {
	return s.repo.UpsertByExternalChat(ctx, userID, channel, externalChatID, title)
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *service) SetDomainMode(ctx context.Context, id string, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	return s.repo.SetDomainMode(ctx, id, mode)
}

func (s *service) AddMessage(ctx context.Context, conversationID, role, content string) (*Message, error) {
	return s.repo.AddMessage(ctx, conversationID, role, content)
}

func (s *service) RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	return s.repo.RecentMessages(ctx, conversationID, limit)
}
