package chat

import "context"

type Repository interface {
	Get(ctx context.Context, userID string) (Session, error)
	Save(ctx context.Context, s Session) error
}
