package checkout

import "context"

type Repository interface {
	Create(ctx context.Context, a Attempt) error
	GetByID(ctx context.Context, id string) (Attempt, error)
	ListByUser(ctx context.Context, userID string) ([]Attempt, error)
}
