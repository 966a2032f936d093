package plans

import "errors"

var (
	ErrUnknownPlan  = errors.New("unknown plan")
	ErrInvalidCycle = errors.New("invalid billing cycle")
)

// BillingCycle define el ciclo de facturación.
// @Enum monthly, annual
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

// ParseCycle valida el ciclo. Vacío cae en monthly (default del checkout).
func ParseCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case CycleMonthly, "":
		return CycleMonthly, nil
	case CycleAnnual:
		return CycleAnnual, nil
	default:
		return "", ErrInvalidCycle
	}
}

// Plan es una entrada inmutable del catálogo de suscripciones.
// Precios en COP sin decimales. El precio anual NO es mensual*12:
// trae un descuento fijo incorporado.
type Plan struct {
	ID       string
	Name     string
	Subtitle string

	MonthlyPrice int64
	AnnualPrice  int64

	Features []string

	// Cuota de consultas diarias del asistente para este plan.
	DailyQuestions int

	Popular bool
}

// Free indica si el plan no cobra (bypass total de facturación y pago).
func (p Plan) Free() bool { return p.MonthlyPrice == 0 }

// Catalog es el catálogo estático de planes. Se inyecta en los services
// en vez de vivir como singleton mutable.
type Catalog struct {
	plans []Plan
	byID  map[string]Plan
}

func NewCatalog(items []Plan) *Catalog {
	byID := make(map[string]Plan, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return &Catalog{plans: items, byID: byID}
}

// Get devuelve el plan o ErrUnknownPlan. Un id desconocido (deep link
// viejo, typo en la query) es un 404 manejado, nunca un pánico.
func (c *Catalog) Get(id string) (Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return p, nil
}

// List devuelve los planes en el orden del catálogo.
func (c *Catalog) List() []Plan {
	out := make([]Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// DefaultCatalog es el catálogo Waggi: huellito (gratis), bigotes y colita.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Plan{
		{
			ID:           "huellito",
			Name:         "Plan Huellito",
			Subtitle:     "Para empezar a cuidar",
			MonthlyPrice: 0,
			AnnualPrice:  0,
			Features: []string{
				"10 consultas en WaggiBot",
				"1 evaluación en UW",
				"Registro 2 mascotas y recibe consejos prácticos",
				"Acceso a todos los blogs informativos",
				"Acceso a todas las comunidades de Waggi",
			},
			DailyQuestions: 10,
		},
		{
			ID:           "bigotes",
			Name:         "Plan Bigotes",
			Subtitle:     "El favorito de las familias",
			MonthlyPrice: 28700,
			AnnualPrice:  287000,
			Features: []string{
				"10 consultas en WaggiBot / Día",
				"10 evaluación en UW",
				"Registro todos tus mascotas y recibe consejos prácticos",
				"Acceso a 1 clase en UW",
				"Acceso a todos los blogs informativos",
				"Acceso a todas las comunidades de Waggi",
			},
			DailyQuestions: 10,
			Popular:        true,
		},
		{
			ID:           "colita",
			Name:         "Plan Colita Feliz",
			Subtitle:     "Cuidado completo",
			MonthlyPrice: 61500,
			AnnualPrice:  615000,
			Features: []string{
				"25 consultas en WaggiBot / Día",
				"Evaluación ilimitadas en UW",
				"Registro todos tus mascotas y recibe consejos prácticos",
				"Acceso completo a UW",
				"Acceso a todos los blogs informativos",
				"Acceso a todas las comunidades de Waggi",
			},
			DailyQuestions: 25,
		},
	})
}
