package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/checkout"
)

type checkoutRepo struct {
	mu   sync.RWMutex
	byID map[string]checkout.Attempt
}

func NewCheckoutRepo() checkout.Repository {
	return &checkoutRepo{
		byID: make(map[string]checkout.Attempt),
	}
}

func (r *checkoutRepo) Create(ctx context.Context, a checkout.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("attempt id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("attempt already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *checkoutRepo) GetByID(ctx context.Context, id string) (checkout.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return checkout.Attempt{}, checkout.ErrNotFound
	}
	return a, nil
}

func (r *checkoutRepo) ListByUser(ctx context.Context, userID string) ([]checkout.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]checkout.Attempt, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}

	// Más recientes primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
