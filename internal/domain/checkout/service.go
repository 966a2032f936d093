package checkout

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/logger"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

// Activator activa el plan comprado para el usuario (en memoria).
type Activator interface {
	Activate(ctx context.Context, userID, planID string) error
}

type Service struct {
	catalog   *plans.Catalog
	repo      Repository
	provider  OutcomeProvider
	activator Activator

	sleeper sim.Sleeper
	ids     sim.IDGenerator
	now     sim.Clock
	log     logger.Logger
}

type ServiceOptions struct {
	Catalog   *plans.Catalog
	Repo      Repository
	Provider  OutcomeProvider
	Activator Activator // opcional

	Sleeper sim.Sleeper
	IDs     sim.IDGenerator
	Now     sim.Clock
	Logger  logger.Logger
}

func NewService(opts ServiceOptions) *Service {
	s := &Service{
		catalog:   opts.Catalog,
		repo:      opts.Repo,
		provider:  opts.Provider,
		activator: opts.Activator,
		sleeper:   opts.Sleeper,
		ids:       opts.IDs,
		now:       opts.Now,
		log:       opts.Logger,
	}
	if s.provider == nil {
		s.provider = NewWeightedProvider(nil)
	}
	if s.sleeper == nil {
		s.sleeper = sim.RealSleeper()
	}
	if s.ids == nil {
		s.ids = sim.UUIDGenerator()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Quote arma el desglose del pedido para un plan y ciclo.
func (s *Service) Quote(planID string, cycle plans.BillingCycle) (plans.Quote, error) {
	p, err := s.catalog.Get(planID)
	if err != nil {
		return plans.Quote{}, err
	}
	return plans.NewQuote(p, cycle), nil
}

// Submit corre un intento de compra completo: valida presencia de campos,
// sortea el resultado, espera la demora simulada y registra el intento.
// Cada resultado no exitoso es terminal; el reintento es acción del usuario.
func (s *Service) Submit(ctx context.Context, userID, planID string, cycle plans.BillingCycle, in Input) (Result, error) {
	p, err := s.catalog.Get(planID)
	if err != nil {
		return Result{}, err
	}

	if err := validate(p, in); err != nil {
		return Result{}, err
	}

	outcome, delay := s.provider.Draw(p)

	if err := s.sleeper.Sleep(ctx, delay); err != nil {
		return Result{}, err
	}

	quote := plans.NewQuote(p, cycle)

	a := Attempt{
		ID:        s.ids.NewID(),
		UserID:    userID,
		PlanID:    p.ID,
		Cycle:     cycle,
		Quote:     quote,
		Customer:  in.Customer,
		Pet:       in.Pet,
		Outcome:   outcome,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Result{}, err
	}

	s.log.Info("checkout attempt", map[string]any{
		"attempt_id": a.ID,
		"plan":       p.ID,
		"cycle":      string(cycle),
		"total":      quote.Total,
		"outcome":    string(outcome),
		"customer":   in.Customer.Name,
		"pet":        in.Pet.PetName,
	})

	if outcome == OutcomeSuccess && s.activator != nil && strings.TrimSpace(userID) != "" {
		// Best effort: la activación vive en memoria igual que todo lo demás.
		_ = s.activator.Activate(ctx, userID, p.ID)
	}

	return Result{
		Outcome:    outcome,
		Quote:      quote,
		RedirectTo: redirectFor(outcome, p.ID),
		AttemptID:  a.ID,
	}, nil
}

// ListAttempts devuelve los intentos registrados del usuario en esta sesión.
func (s *Service) ListAttempts(ctx context.Context, userID string) ([]Attempt, error) {
	return s.repo.ListByUser(ctx, userID)
}

// validate exige presencia, nunca formato: email sin shape-check, tarjeta
// sin largo ni expiración. Los campos de tarjeta solo aplican a planes pagos.
func validate(p plans.Plan, in Input) error {
	required := []string{
		in.Customer.Name,
		in.Customer.Email,
		in.Customer.Phone,
		in.Pet.PetName,
	}
	if !p.Free() {
		required = append(required,
			in.Payment.CardNumber,
			in.Payment.CardName,
			in.Payment.Expiry,
			in.Payment.CVV,
		)
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

func redirectFor(outcome Outcome, planID string) string {
	if outcome == OutcomeSuccess {
		return "/success"
	}
	q := url.Values{}
	q.Set("type", string(outcome))
	q.Set("plan", planID)
	return "/error?" + q.Encode()
}
