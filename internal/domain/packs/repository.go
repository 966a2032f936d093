package packs

import "context"

type Repository interface {
	Create(ctx context.Context, p Pack) error
	Update(ctx context.Context, p Pack) error
	GetByID(ctx context.Context, id string) (Pack, error)
	List(ctx context.Context) ([]Pack, error)
	Delete(ctx context.Context, id string) error
}

type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) error
	Update(ctx context.Context, inv Invitation) error
	GetByID(ctx context.Context, id string) (Invitation, error)
	ListByPack(ctx context.Context, packID string) ([]Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]Invitation, error)
}
