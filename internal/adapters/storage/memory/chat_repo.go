package memory

import (
	"context"
	"sync"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/chat"
)

type chatRepo struct {
	mu     sync.RWMutex
	byUser map[string]chat.Session
}

func NewChatRepo() chat.Repository {
	return &chatRepo{
		byUser: make(map[string]chat.Session),
	}
}

func (r *chatRepo) Get(ctx context.Context, userID string) (chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byUser[userID]
	if !ok {
		return chat.Session{}, chat.ErrNotFound
	}
	return cloneSession(s), nil
}

func (r *chatRepo) Save(ctx context.Context, s chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[s.UserID] = cloneSession(s)
	return nil
}

func cloneSession(s chat.Session) chat.Session {
	out := s
	out.Messages = append([]chat.Message(nil), s.Messages...)
	return out
}
