package thread

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoOpenThread is returned when a channel or user has no open thread.
var ErrNoOpenThread = errors.New("no open thread")

type Service interface {
	// FindOpenThread returns the open thread bound to channelID, or
	// (nil, nil) when there is none. Closed threads are never returned.
	FindOpenThread(ctx context.Context, channelID string) (*Thread, error)
	// FindOpenThreadForUser is the inbound-direction lookup.
	FindOpenThreadForUser(ctx context.Context, userID string) (*Thread, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FindOpenThread(ctx context.Context, channelID string) (*Thread, error) {
	thread, err := s.repo.FindOpenThreadByChannel(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open thread: %w", err)
	}
	return thread, nil
}

func (s *service) FindOpenThreadForUser(ctx context.Context, userID string) (*Thread, error) {
	thread, err := s.repo.FindOpenThreadByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open thread: %w", err)
	}
	return thread, nil
}
