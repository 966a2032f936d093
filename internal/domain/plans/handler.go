package plans

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, catalog *Catalog) {
	r.Route("/plans", func(pr chi.Router) {
		pr.Get("/", listPlansHandler(catalog))
		pr.Get("/{planID}", getPlanHandler(catalog))
	})
}

type planResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Subtitle       string   `json:"subtitle,omitempty"`
	MonthlyPrice   int64    `json:"monthly_price"`
	AnnualPrice    int64    `json:"annual_price"`
	AnnualDiscount int64    `json:"annual_discount"`
	Features       []string `json:"features"`
	DailyQuestions int      `json:"daily_questions"`
	Popular        bool     `json:"popular"`
	Free           bool     `json:"free"`
}

func listPlansHandler(catalog *Catalog) http.HandlerFunc {
	// Catálogo público: no requiere auth.
	return func(w http.ResponseWriter, _ *http.Request) {
		items := catalog.List()
		out := make([]planResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlanResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPlanHandler(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := catalog.Get(chi.URLParam(r, "planID"))
		if err != nil {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func toPlanResponse(p Plan) planResponse {
	return planResponse{
		ID:             p.ID,
		Name:           p.Name,
		Subtitle:       p.Subtitle,
		MonthlyPrice:   p.MonthlyPrice,
		AnnualPrice:    p.AnnualPrice,
		AnnualDiscount: AnnualDiscount(p),
		Features:       p.Features,
		DailyQuestions: p.DailyQuestions,
		Popular:        p.Popular,
		Free:           p.Free(),
	}
}

// writeJSON se duplica por módulo a propósito, igual que en pets/packs;
// todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
