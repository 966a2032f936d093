package plans

// TaxRatePercent es el IVA aplicado al total del checkout.
const TaxRatePercent = 19

// CurrentPrice devuelve el precio a cobrar según ciclo.
// Los planes gratis siempre cuestan 0, sin importar el ciclo.
func CurrentPrice(p Plan, cycle BillingCycle) int64 {
	if p.Free() {
		return 0
	}
	if cycle == CycleAnnual {
		return p.AnnualPrice
	}
	return p.MonthlyPrice
}

// AnnualDiscount es el ahorro del ciclo anual: mensual*12 - anual.
func AnnualDiscount(p Plan) int64 {
	if p.Free() {
		return 0
	}
	return p.MonthlyPrice*12 - p.AnnualPrice
}

// Quote es el desglose mostrado en el resumen del pedido.
type Quote struct {
	PlanID   string       `json:"plan_id"`
	PlanName string       `json:"plan_name"`
	Cycle    BillingCycle `json:"billing_cycle"`

	Subtotal       int64 `json:"subtotal"`
	AnnualDiscount int64 `json:"annual_discount,omitempty"`
	Tax            int64 `json:"tax"`
	Total          int64 `json:"total"`
}

// NewQuote arma el desglose: subtotal + IVA 19% = total.
// Los precios del catálogo son múltiplos de 100, así que la división
// entera es exacta (28700 -> 5453 de IVA, total 34153).
func NewQuote(p Plan, cycle BillingCycle) Quote {
	subtotal := CurrentPrice(p, cycle)
	tax := subtotal * TaxRatePercent / 100

	q := Quote{
		PlanID:   p.ID,
		PlanName: p.Name,
		Cycle:    cycle,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
	if cycle == CycleAnnual {
		q.AnnualDiscount = AnnualDiscount(p)
	}
	return q
}
