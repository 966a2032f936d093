package checkout

import (
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

// OutcomeProvider decide el resultado y la demora simulada de un intento.
// Es una capacidad inyectable: los tests usan providers deterministas en
// lugar de timers reales y azar.
type OutcomeProvider interface {
	Draw(p plans.Plan) (Outcome, time.Duration)
}

const (
	// Demora fija al activar un plan gratuito.
	freePlanDelay = 1500 * time.Millisecond

	// Rango de demora de un pago simulado.
	paidDelayMin = 2 * time.Second
	paidDelayMax = 5 * time.Second
)

// Tabla de probabilidades del sorteo de pago (acumulada).
const (
	pSuccess   = 0.70
	pPayment   = 0.85 // +15%
	pCancelled = 0.95 // +10%
	// expired: 5% restante
)

// WeightedProvider implementa la tabla 70/15/10/5 con demora de 2 a 5s.
// Plan gratis: éxito incondicional tras una demora fija.
type WeightedProvider struct {
	rng *sim.Rand
}

func NewWeightedProvider(rng *sim.Rand) *WeightedProvider {
	if rng == nil {
		rng = sim.NewRandFromTime()
	}
	return &WeightedProvider{rng: rng}
}

func (w *WeightedProvider) Draw(p plans.Plan) (Outcome, time.Duration) {
	if p.Free() {
		return OutcomeSuccess, freePlanDelay
	}

	delay := w.rng.DurationBetween(paidDelayMin, paidDelayMax)

	switch r := w.rng.Float64(); {
	case r < pSuccess:
		return OutcomeSuccess, delay
	case r < pPayment:
		return OutcomePayment, delay
	case r < pCancelled:
		return OutcomeCancelled, delay
	default:
		return OutcomeExpired, delay
	}
}

// FixedProvider siempre responde lo mismo, sin demora. Para tests.
type FixedProvider struct {
	Outcome Outcome
}

func (f FixedProvider) Draw(p plans.Plan) (Outcome, time.Duration) {
	if p.Free() {
		return OutcomeSuccess, 0
	}
	return f.Outcome, 0
}
