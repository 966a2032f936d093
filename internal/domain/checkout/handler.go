package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/checkout", func(cr chi.Router) {
		cr.Get("/quote", quoteHandler(svc))
		cr.Post("/", submitHandler(svc))
		cr.Get("/attempts", listAttemptsHandler(svc))
	})
}

type customerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type petPayload struct {
	PetName  string `json:"pet_name"`
	PetBreed string `json:"pet_breed"`
}

type paymentPayload struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type submitRequest struct {
	Plan         string          `json:"plan"`
	BillingCycle string          `json:"billing_cycle"`
	Customer     customerPayload `json:"customer"`
	Pet          petPayload      `json:"pet"`
	Payment      paymentPayload  `json:"payment"`
}

type submitResponse struct {
	Outcome    string      `json:"outcome"`
	RedirectTo string      `json:"redirect_to"`
	AttemptID  string      `json:"attempt_id"`
	Quote      plans.Quote `json:"quote"`
}

func quoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycle, err := plans.ParseCycle(r.URL.Query().Get("cycle"))
		if err != nil {
			http.Error(w, "cycle must be monthly or annual", http.StatusBadRequest)
			return
		}

		q, err := svc.Quote(r.URL.Query().Get("plan"), cycle)
		if err != nil {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// ?plan= de la navegación gana sobre el body si viene.
		planID := req.Plan
		if v := r.URL.Query().Get("plan"); v != "" {
			planID = v
		}

		cycle, err := plans.ParseCycle(req.BillingCycle)
		if err != nil {
			http.Error(w, "billing_cycle must be monthly or annual", http.StatusBadRequest)
			return
		}

		// El checkout funciona sin sesión; con claims, la compra activa el plan.
		userID := ""
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			userID = claims.UserID
		}

		res, err := svc.Submit(r.Context(), userID, planID, cycle, Input{
			Customer: CustomerInfo{
				Name:    req.Customer.Name,
				Email:   req.Customer.Email,
				Phone:   req.Customer.Phone,
				Address: req.Customer.Address,
			},
			Pet: PetInfo{
				PetName:  req.Pet.PetName,
				PetBreed: req.Pet.PetBreed,
			},
			Payment: PaymentInfo{
				CardNumber: req.Payment.CardNumber,
				CardName:   req.Payment.CardName,
				Expiry:     req.Payment.Expiry,
				CVV:        req.Payment.CVV,
			},
		})
		if err != nil {
			switch {
			case errors.Is(err, plans.ErrUnknownPlan):
				http.Error(w, "plan not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "missing required fields", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, submitResponse{
			Outcome:    string(res.Outcome),
			RedirectTo: res.RedirectTo,
			AttemptID:  res.AttemptID,
			Quote:      res.Quote,
		})
	}
}

func listAttemptsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListAttempts(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]attemptResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAttemptResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type attemptResponse struct {
	ID        string      `json:"id"`
	PlanID    string      `json:"plan_id"`
	Cycle     string      `json:"billing_cycle"`
	Outcome   string      `json:"outcome"`
	Quote     plans.Quote `json:"quote"`
	CreatedAt string      `json:"created_at"`
}

func toAttemptResponse(a Attempt) attemptResponse {
	return attemptResponse{
		ID:        a.ID,
		PlanID:    a.PlanID,
		Cycle:     string(a.Cycle),
		Outcome:   string(a.Outcome),
		Quote:     a.Quote,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
