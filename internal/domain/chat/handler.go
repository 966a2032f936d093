package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/chat", func(cr chi.Router) {
		cr.Get("/messages", listMessagesHandler(svc))
		cr.Post("/messages", sendMessageHandler(svc))
		cr.Get("/limits", limitsHandler(svc))
	})
}

type messageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

type limitsResponse struct {
	DailyQuestions int    `json:"daily_questions"`
	QuestionsUsed  int    `json:"questions_used"`
	Remaining      int    `json:"remaining"`
	PlanName       string `json:"plan_name"`
}

type sendRequest struct {
	Content string `json:"content"`
}

type sendResponse struct {
	Messages []messageResponse `json:"messages"`
	Limits   limitsResponse    `json:"limits"`
}

func listMessagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := svc.Session(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]messageResponse, 0, len(sess.Messages))
		for _, m := range sess.Messages {
			out = append(out, toMessageResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func limitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := svc.Session(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toLimitsResponse(sess.Limits))
	}
}

func sendMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		msgs, limits, err := svc.Send(r.Context(), claims.UserID, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, ErrQuotaExceeded):
				// 429 + límites para que la UI ofrezca "Mejorar Plan".
				writeJSON(w, http.StatusTooManyRequests, sendResponse{
					Messages: []messageResponse{},
					Limits:   toLimitsResponse(limits),
				})
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "content required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := make([]messageResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessageResponse(m))
		}
		writeJSON(w, http.StatusOK, sendResponse{
			Messages: out,
			Limits:   toLimitsResponse(limits),
		})
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Role:      string(m.Role),
		Timestamp: m.Timestamp,
	}
}

func toLimitsResponse(l Limits) limitsResponse {
	return limitsResponse{
		DailyQuestions: l.DailyQuestions,
		QuestionsUsed:  l.QuestionsUsed,
		Remaining:      l.Remaining(),
		PlanName:       l.PlanName,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
