package capabilities

import "context"

// Entitlements es lo que el plan vigente le habilita a un usuario.
type Entitlements struct {
	PlanID         string
	PlanName       string
	DailyQuestions int
}

// Resolver responde qué habilita el plan de un usuario.
// El asistente lo usa para la cuota diaria de consultas.
type Resolver interface {
	EntitlementsFor(ctx context.Context, userID string) (Entitlements, error)
}
