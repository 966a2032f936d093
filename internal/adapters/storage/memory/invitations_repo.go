package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/packs"
)

type invitationRepo struct {
	mu   sync.RWMutex
	byID map[string]packs.Invitation
}

func NewInvitationRepo() packs.InvitationRepository {
	return &invitationRepo{
		byID: make(map[string]packs.Invitation),
	}
}

func (r *invitationRepo) Create(ctx context.Context, inv packs.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(inv.ID) == "" {
		return errors.New("invitation id required")
	}
	if _, exists := r.byID[inv.ID]; exists {
		return errors.New("invitation already exists")
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *invitationRepo) Update(ctx context.Context, inv packs.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[inv.ID]; !exists {
		return packs.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *invitationRepo) GetByID(ctx context.Context, id string) (packs.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byID[id]
	if !ok {
		return packs.Invitation{}, packs.ErrNotFound
	}
	return inv, nil
}

func (r *invitationRepo) ListByPack(ctx context.Context, packID string) ([]packs.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]packs.Invitation, 0)
	for _, inv := range r.byID {
		if inv.PackID == packID {
			out = append(out, inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func (r *invitationRepo) ListByEmail(ctx context.Context, email string) ([]packs.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]packs.Invitation, 0)
	for _, inv := range r.byID {
		if strings.EqualFold(inv.Email, email) {
			out = append(out, inv)
		}
	}
	sortInvitations(out)
	return out, nil
}

func sortInvitations(in []packs.Invitation) {
	sort.Slice(in, func(i, j int) bool {
		return in[i].CreatedAt.Before(in[j].CreatedAt)
	})
}
