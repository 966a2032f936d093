// Package planfeatures resuelve entitlements contra el catálogo local.
// No hay servicio de planes upstream: la "activación" de un plan vive en
// memoria por sesión del proceso, igual que el resto del estado.
package planfeatures

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/ports/capabilities"
)

var ErrInvalidInput = errors.New("invalid input")

// Resolver asigna planes por usuario en memoria. Sin asignación explícita
// todo usuario arranca en el plan gratuito.
type Resolver struct {
	catalog     *plans.Catalog
	defaultPlan string

	mu     sync.RWMutex
	byUser map[string]string // userID -> planID
}

func NewResolver(catalog *plans.Catalog, defaultPlan string) *Resolver {
	if strings.TrimSpace(defaultPlan) == "" {
		defaultPlan = "huellito"
	}
	return &Resolver{
		catalog:     catalog,
		defaultPlan: defaultPlan,
		byUser:      make(map[string]string),
	}
}

// Activate deja al usuario en el plan comprado. La llama checkout al
// cerrar una compra exitosa.
func (r *Resolver) Activate(_ context.Context, userID, planID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}
	if _, err := r.catalog.Get(planID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = planID
	return nil
}

func (r *Resolver) EntitlementsFor(_ context.Context, userID string) (capabilities.Entitlements, error) {
	r.mu.RLock()
	planID, ok := r.byUser[strings.TrimSpace(userID)]
	r.mu.RUnlock()

	if !ok {
		planID = r.defaultPlan
	}

	p, err := r.catalog.Get(planID)
	if err != nil {
		return capabilities.Entitlements{}, err
	}

	return capabilities.Entitlements{
		PlanID:         p.ID,
		PlanName:       p.Name,
		DailyQuestions: p.DailyQuestions,
	}, nil
}
