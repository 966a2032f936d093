package packs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/middleware"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/packs", func(pr chi.Router) {
		pr.Get("/", listPacksHandler(svc))
		pr.Post("/", createPackHandler(svc))

		pr.Get("/{packID}", getPackHandler(svc))
		pr.Patch("/{packID}", updatePackHandler(svc))
		pr.Delete("/{packID}", deletePackHandler(svc))

		pr.Get("/{packID}/agenda", agendaHandler(svc))
		pr.Post("/{packID}/events", addEventHandler(svc))
		pr.Delete("/{packID}/events/{eventID}", deleteEventHandler(svc))

		pr.Post("/{packID}/pets", addPackPetHandler(svc))

		pr.Get("/{packID}/invitations", listInvitationsHandler(svc))
		pr.Post("/{packID}/invitations", inviteHandler(svc))

		pr.Post("/{packID}/gifts", sendGiftHandler(svc))
	})

	r.Get("/gifts", giftCatalogHandler(svc))

	r.Post("/invitations/{invitationID}/accept", acceptInvitationHandler(svc))
	r.Post("/invitations/{invitationID}/revoke", revokeInvitationHandler(svc))
	r.Get("/me/invitations", myInvitationsHandler(svc))
}

type memberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

type packPetResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Avatar    string `json:"avatar,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

type eventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location,omitempty"`
	Attendees   int    `json:"attendees,omitempty"`
	CreatedBy   string `json:"created_by"`
	CanDelete   bool   `json:"can_delete"`
	Kind        string `json:"kind"`
	DueLabel    string `json:"due_label,omitempty"`
}

type packResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	PetType       string            `json:"pet_type"`
	Description   string            `json:"description,omitempty"`
	AllowedBreeds []string          `json:"allowed_breeds,omitempty"`
	Members       []memberResponse  `json:"members"`
	Pets          []packPetResponse `json:"pets"`
	Events        []eventResponse   `json:"events"`
	CreatedAt     string            `json:"created_at"`
	IsOwner       bool              `json:"is_owner"`
}

type createPackRequest struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	PetType       string   `json:"pet_type"`
	Description   string   `json:"description"`
	AllowedBreeds []string `json:"allowed_breeds"`
	BirthDate     string   `json:"birth_date"` // del owner, opcional
}

type updatePackRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	PetType       *string   `json:"pet_type"`
	AllowedBreeds *[]string `json:"allowed_breeds"`
}

type invitationResponse struct {
	ID        string `json:"id"`
	PackID    string `json:"pack_id"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type giftResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Cost           int64  `json:"cost"`
	SenderPoints   int    `json:"sender_points"`
	ReceiverPoints int    `json:"receiver_points"`
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

func listPacksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]packResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPackResponse(p, claims.UserID))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createPackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req createPackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var birth *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			birth = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:          req.Name,
			Type:          PackType(req.Type),
			PetType:       PetType(req.PetType),
			Description:   req.Description,
			AllowedBreeds: req.AllowedBreeds,
			OwnerName:     claims.Name,
			OwnerBirth:    birth,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPackResponse(p, claims.UserID))
	}
}

func getPackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "packID"))
		if err != nil {
			http.Error(w, "pack not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPackResponse(p, claims.UserID))
	}
}

func updatePackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req updatePackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var petType *PetType
		if req.PetType != nil {
			t := PetType(*req.PetType)
			petType = &t
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "packID"), claims.UserID, UpdateInput{
			Name:          req.Name,
			Description:   req.Description,
			PetType:       petType,
			AllowedBreeds: req.AllowedBreeds,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPackResponse(p, claims.UserID))
	}
}

func deletePackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "packID"), claims.UserID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func agendaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		events, today, err := svc.AgendaFor(r.Context(), chi.URLParam(r, "packID"))
		if err != nil {
			http.Error(w, "pack not found", http.StatusNotFound)
			return
		}

		out := make([]eventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, toEventResponse(e, today))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type addEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

func addEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req addEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		name := claims.Name
		if strings.TrimSpace(name) == "" {
			name = claims.UserID
		}

		e, err := svc.AddEvent(r.Context(), chi.URLParam(r, "packID"), claims.UserID, name, AddEventInput{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			Time:        req.Time,
			Location:    req.Location,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEventResponse(e, time.Now()))
	}
}

func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		err := svc.DeleteEvent(r.Context(), chi.URLParam(r, "packID"), claims.UserID, chi.URLParam(r, "eventID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type addPackPetRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Avatar    string `json:"avatar"`
	BirthDate string `json:"birth_date"`
}

func addPackPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req addPackPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var birth *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			birth = &t
		}

		pet, err := svc.AddPet(r.Context(), chi.URLParam(r, "packID"), claims.UserID, AddPetInput{
			Name:      req.Name,
			Type:      req.Type,
			Avatar:    req.Avatar,
			BirthDate: birth,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPackPetResponse(pet))
	}
}

type inviteRequest struct {
	Email string `json:"email"`
}

func inviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req inviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		inv, err := svc.Invite(r.Context(), chi.URLParam(r, "packID"), claims.UserID, req.Email)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toInvitationResponse(inv))
	}
}

func listInvitationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.ListInvitations(r.Context(), chi.URLParam(r, "packID"), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]invitationResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvitationResponse(inv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func acceptInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		inv, err := svc.AcceptInvitation(r.Context(), chi.URLParam(r, "invitationID"), claims.UserID, claims.Name, claims.Email)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvitationResponse(inv))
	}
}

func revokeInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		inv, err := svc.RevokeInvitation(r.Context(), chi.URLParam(r, "invitationID"), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvitationResponse(inv))
	}
}

func myInvitationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		items, err := svc.MyInvitations(r.Context(), claims.Email)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]invitationResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvitationResponse(inv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func giftCatalogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		items := svc.GiftCatalog()
		out := make([]giftResponse, 0, len(items))
		for _, g := range items {
			out = append(out, giftResponse{
				ID:             g.ID,
				Name:           g.Name,
				Cost:           g.Cost,
				SenderPoints:   g.SenderPoints,
				ReceiverPoints: g.ReceiverPoints,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type sendGiftRequest struct {
	GiftID        string `json:"gift_id"`
	RecipientKind string `json:"recipient_kind"`
	RecipientID   string `json:"recipient_id"`
}

type giftReceiptResponse struct {
	Gift           giftResponse `json:"gift"`
	RecipientName  string       `json:"recipient_name"`
	SenderPoints   int          `json:"sender_points"`
	ReceiverPoints int          `json:"receiver_points"`
	SentAt         time.Time    `json:"sent_at"`
}

func sendGiftHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req sendGiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		receipt, err := svc.SendGift(r.Context(), chi.URLParam(r, "packID"), claims.UserID,
			req.GiftID, RecipientKind(req.RecipientKind), req.RecipientID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, giftReceiptResponse{
			Gift: giftResponse{
				ID:             receipt.Gift.ID,
				Name:           receipt.Gift.Name,
				Cost:           receipt.Gift.Cost,
				SenderPoints:   receipt.Gift.SenderPoints,
				ReceiverPoints: receipt.Gift.ReceiverPoints,
			},
			RecipientName:  receipt.RecipientName,
			SenderPoints:   receipt.SenderPoints,
			ReceiverPoints: receipt.ReceiverPoints,
			SentAt:         receipt.SentAt,
		})
	}
}

func toPackResponse(p Pack, viewerID string) packResponse {
	members := make([]memberResponse, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, memberResponse{
			ID:        m.ID,
			Name:      m.Name,
			Role:      string(m.Role),
			Avatar:    m.Avatar,
			BirthDate: formatDate(m.BirthDate),
		})
	}

	pets := make([]packPetResponse, 0, len(p.Pets))
	for _, pet := range p.Pets {
		pets = append(pets, toPackPetResponse(pet))
	}

	events := make([]eventResponse, 0, len(p.Events))
	now := time.Now()
	for _, e := range p.Events {
		events = append(events, toEventResponse(e, now))
	}

	return packResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          string(p.Type),
		PetType:       string(p.PetType),
		Description:   p.Description,
		AllowedBreeds: p.AllowedBreeds,
		Members:       members,
		Pets:          pets,
		Events:        events,
		CreatedAt:     p.CreatedAt.Format("2006-01-02"),
		IsOwner:       p.OwnerUserID == viewerID,
	}
}

func toPackPetResponse(pet PackPet) packPetResponse {
	return packPetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		Type:      pet.Type,
		Avatar:    pet.Avatar,
		BirthDate: formatDate(pet.BirthDate),
	}
}

func toEventResponse(e Event, today time.Time) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Time:        e.Time,
		Location:    e.Location,
		Attendees:   e.Attendees,
		CreatedBy:   e.CreatedBy,
		CanDelete:   e.CanDelete,
		Kind:        string(e.Kind),
		DueLabel:    DueLabel(e.Date, today),
	}
}

func toInvitationResponse(inv Invitation) invitationResponse {
	return invitationResponse{
		ID:        inv.ID,
		PackID:    inv.PackID,
		Email:     inv.Email,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrBadState):
		http.Error(w, "invalid state", http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado por módulo a propósito (ver pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
