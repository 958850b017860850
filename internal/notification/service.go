package notification

import (
	"context"
	"errors"

	"rentwear/internal/core"
)

const inboxSize = 50

var (
	ErrNotFound     = errors.New("notification not found")
	ErrMissingTitle = errors.New("title is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify implements core.Notifier.
func (s *Service) Notify(ctx context.Context, recipient, title, body string) error {
	if title == "" {
		return ErrMissingTitle
	}
	return s.repo.Create(ctx, &Notification{Recipient: recipient, Title: title, Body: body})
}

// recipientsFor is every address a user reads: their own, and the admin
// broadcast address when they are an admin.
func recipientsFor(userID string, isAdmin bool) []string {
	if isAdmin {
		return []string{userID, core.AdminRecipient}
	}
	return []string{userID}
}

func (s *Service) Inbox(ctx context.Context, userID string, isAdmin bool) (*Inbox, error) {
	recipients := recipientsFor(userID, isAdmin)

	items, err := s.repo.List(ctx, recipients, inboxSize)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(ctx, recipients)
	if err != nil {
		return nil, err
	}
	return &Inbox{Items: items, UnreadCount: unread}, nil
}

func (s *Service) MarkRead(ctx context.Context, userID string, isAdmin bool, id string) error {
	return s.repo.MarkRead(ctx, id, recipientsFor(userID, isAdmin))
}

func (s *Service) MarkAllRead(ctx context.Context, userID string, isAdmin bool) (int, error) {
	return s.repo.MarkAllRead(ctx, recipientsFor(userID, isAdmin))
}
