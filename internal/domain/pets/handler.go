package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))

		pr.Post("/{petID}/evaluations", recordEvaluationHandler(svc))
	})
}

type traitPayload struct {
	Trait string `json:"trait"`
	Color string `json:"color"`
}

type createPetRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Breed  string `json:"breed"`
	Age    int    `json:"age"`
	Weight int    `json:"weight"`
	Height int    `json:"height"`
	Avatar string `json:"avatar"`

	PersonalityTraits []traitPayload `json:"personality_traits"`

	EvaluationsAvailable int `json:"evaluations_available"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name   *string `json:"name"`
	Breed  *string `json:"breed"`
	Age    *int    `json:"age"`
	Weight *int    `json:"weight"`
	Height *int    `json:"height"`
	Avatar *string `json:"avatar"`

	PersonalityTraits *[]traitPayload `json:"personality_traits"`
}

type petResponse struct {
	ID                   string         `json:"id"`
	OwnerUserID          string         `json:"owner_user_id"`
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	Breed                string         `json:"breed,omitempty"`
	Age                  int            `json:"age"`
	Weight               int            `json:"weight"`
	Height               int            `json:"height"`
	Avatar               string         `json:"avatar,omitempty"`
	PersonalityTraits    []traitPayload `json:"personality_traits"`
	EvaluationsUsed      int            `json:"evaluations_used"`
	EvaluationsAvailable int            `json:"evaluations_available"`
	LastCheckup          *time.Time     `json:"last_checkup,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:                 req.Name,
			Type:                 req.Type,
			Breed:                req.Breed,
			Age:                  req.Age,
			Weight:               req.Weight,
			Height:               req.Height,
			Avatar:               req.Avatar,
			PersonalityTraits:    toTraits(req.PersonalityTraits),
			EvaluationsAvailable: req.EvaluationsAvailable,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var traits *[]Trait
		if req.PersonalityTraits != nil {
			t := toTraits(*req.PersonalityTraits)
			traits = &t
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:              req.Name,
			Breed:             req.Breed,
			Age:               req.Age,
			Weight:            req.Weight,
			Height:            req.Height,
			Avatar:            req.Avatar,
			PersonalityTraits: traits,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func recordEvaluationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.RecordEvaluation(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toTraits(in []traitPayload) []Trait {
	out := make([]Trait, 0, len(in))
	for _, t := range in {
		out = append(out, Trait{Trait: t.Trait, Color: t.Color})
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	traits := make([]traitPayload, 0, len(p.PersonalityTraits))
	for _, t := range p.PersonalityTraits {
		traits = append(traits, traitPayload{Trait: t.Trait, Color: t.Color})
	}

	return petResponse{
		ID:                   p.ID,
		OwnerUserID:          p.OwnerUserID,
		Name:                 p.Name,
		Type:                 p.Type,
		Breed:                p.Breed,
		Age:                  p.Age,
		Weight:               p.Weight,
		Height:               p.Height,
		Avatar:               p.Avatar,
		PersonalityTraits:    traits,
		EvaluationsUsed:      p.EvaluationsUsed,
		EvaluationsAvailable: p.EvaluationsAvailable,
		LastCheckup:          p.LastCheckup,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar un helper compartido demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
