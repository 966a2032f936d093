package checkout

import (
	"errors"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Outcome es el resultado terminal de un intento de compra.
// Cada fallo solo diferencia el mensaje al usuario; ninguno reintenta solo.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomePayment   Outcome = "payment"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeExpired   Outcome = "expired"
)

// CustomerInfo son campos de texto libre; solo se exige presencia.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string // opcional
}

// PetInfo acompaña la compra; la raza es opcional.
type PetInfo struct {
	PetName  string
	PetBreed string
}

// PaymentInfo nunca viaja a ningún procesador: simulación pura.
// Sin validación de formato (largo de tarjeta, expiración, etc.).
type PaymentInfo struct {
	CardNumber string
	CardName   string
	Expiry     string
	CVV        string
}

// Input es el payload completo del checkout.
type Input struct {
	Customer CustomerInfo
	Pet      PetInfo
	Payment  PaymentInfo
}

// Attempt es el registro en sesión de un intento: log estructurado más
// repo en memoria, nada sobrevive al proceso.
type Attempt struct {
	ID     string
	UserID string

	PlanID string
	Cycle  plans.BillingCycle
	Quote  plans.Quote

	Customer CustomerInfo
	Pet      PetInfo

	Outcome   Outcome
	CreatedAt time.Time
}

// Result es lo que navega el cliente: outcome + ruta destino.
type Result struct {
	Outcome    Outcome
	Quote      plans.Quote
	RedirectTo string
	AttemptID  string
}
