package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/packs"
)

type packRepo struct {
	mu   sync.RWMutex
	byID map[string]packs.Pack
}

func NewPackRepo() packs.Repository {
	return &packRepo{
		byID: make(map[string]packs.Pack),
	}
}

func (r *packRepo) Create(ctx context.Context, p packs.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pack id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pack already exists")
	}
	r.byID[p.ID] = clonePack(p)
	return nil
}

func (r *packRepo) Update(ctx context.Context, p packs.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return packs.ErrNotFound
	}
	r.byID[p.ID] = clonePack(p)
	return nil
}

func (r *packRepo) GetByID(ctx context.Context, id string) (packs.Pack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return packs.Pack{}, packs.ErrNotFound
	}
	return clonePack(p), nil
}

func (r *packRepo) List(ctx context.Context) ([]packs.Pack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]packs.Pack, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePack(p))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *packRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return packs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// clonePack copia los slices internos para que los llamadores no puedan
// mutar el estado guardado por fuera del repositorio.
func clonePack(p packs.Pack) packs.Pack {
	out := p
	out.AllowedBreeds = append([]string(nil), p.AllowedBreeds...)
	out.Members = append([]packs.Member(nil), p.Members...)
	out.Pets = append([]packs.PackPet(nil), p.Pets...)
	out.Events = append([]packs.Event(nil), p.Events...)
	return out
}
