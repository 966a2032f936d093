package packs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pack
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pack{}}
}

func (r *testRepo) Create(ctx context.Context, p Pack) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pack) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pack, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pack{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pack, error) {
	out := make([]Pack, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type testInvRepo struct {
	byID map[string]Invitation
}

func newTestInvRepo() *testInvRepo {
	return &testInvRepo{byID: map[string]Invitation{}}
}

func (r *testInvRepo) Create(ctx context.Context, inv Invitation) error {
	if inv.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *testInvRepo) Update(ctx context.Context, inv Invitation) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *testInvRepo) GetByID(ctx context.Context, id string) (Invitation, error) {
	inv, ok := r.byID[id]
	if !ok {
		return Invitation{}, ErrNotFound
	}
	return inv, nil
}

func (r *testInvRepo) ListByPack(ctx context.Context, packID string) ([]Invitation, error) {
	out := make([]Invitation, 0)
	for _, inv := range r.byID {
		if inv.PackID == packID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *testInvRepo) ListByEmail(ctx context.Context, email string) ([]Invitation, error) {
	out := make([]Invitation, 0)
	for _, inv := range r.byID {
		if inv.Email == email {
			out = append(out, inv)
		}
	}
	return out, nil
}

func newTestService(repo Repository, invRepo InvitationRepository) (*Service, func(time.Time)) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := NewService(ServiceOptions{
		Repo:        repo,
		Invitations: invRepo,
		Sleeper:     sim.NopSleeper(),
		IDs:         sim.NewSequenceGenerator("id"),
		Now:         func() time.Time { return now },
	})
	return svc, func(t time.Time) { now = t }
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_OwnerBecomesMember(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:      "Familia López",
		Type:      TypeFamily,
		PetType:   PetTypeAny,
		OwnerName: "María",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(p.Members) != 1 {
		t.Fatalf("expected owner as first member, got %d members", len(p.Members))
	}
	if p.Members[0].Role != RoleOwner || p.Members[0].UserID != "user-1" {
		t.Fatalf("unexpected owner member: %#v", p.Members[0])
	}
	if !p.IsMember("user-1") {
		t.Fatalf("owner must be a member")
	}
}

func TestService_Create_BreedsClearedForAnyPetType(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Todos bienvenidos",
		Type:          TypeOpen,
		PetType:       PetTypeAny,
		AllowedBreeds: []string{"Golden Retriever"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.AllowedBreeds != nil {
		t.Fatalf("breeds must be cleared when pet type is any, got %#v", p.AllowedBreeds)
	}
}

func TestService_Create_RejectsUnknownVariants(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	if _, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "x", Type: PackType("club"), PetType: PetTypeDog,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown pack type: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "x", Type: TypeOpen, PetType: PetType("bird"),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown pet type: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_OwnerOnly_AndBreedInvariant(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Goldens", Type: TypeOpen, PetType: PetTypeDog,
		AllowedBreeds: []string{"Golden Retriever"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), p.ID, "user-2", UpdateInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner update: expected ErrForbidden, got %v", err)
	}

	anyType := PetTypeAny
	updated, err := svc.Update(context.Background(), p.ID, "user-1", UpdateInput{PetType: &anyType})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AllowedBreeds != nil {
		t.Fatalf("switching to any must clear breeds, got %#v", updated.AllowedBreeds)
	}
}

func TestService_AddEvent_MustBeFutureAndMember(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Familia", Type: TypeFamily, PetType: PetTypeAny,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// No miembro => forbidden.
	if _, err := svc.AddEvent(context.Background(), p.ID, "user-9", "Otro", AddEventInput{
		Title: "Paseo", Date: "2026-03-11", Time: "10:00",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-member: expected ErrForbidden, got %v", err)
	}

	// Pasado => inválido (now fijo: 2026-03-10 09:00).
	if _, err := svc.AddEvent(context.Background(), p.ID, "user-1", "María", AddEventInput{
		Title: "Paseo", Date: "2026-03-10", Time: "08:00",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("past event: expected ErrInvalidInput, got %v", err)
	}

	// Futuro del mismo día => válido.
	e, err := svc.AddEvent(context.Background(), p.ID, "user-1", "María", AddEventInput{
		Title: "Paseo", Date: "2026-03-10", Time: "18:00", Location: "Parque",
	})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if !e.CanDelete || e.Kind != KindEvent || e.CreatedBy != "María" {
		t.Fatalf("unexpected event: %#v", e)
	}
}

func TestService_DeleteEvent_PreservesOrder(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Familia", Type: TypeFamily, PetType: PetTypeAny,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		e, err := svc.AddEvent(context.Background(), p.ID, "user-1", "María", AddEventInput{
			Title: title, Date: "2026-03-12", Time: "10:00",
		})
		if err != nil {
			t.Fatalf("AddEvent %s: %v", title, err)
		}
		ids = append(ids, e.ID)
	}

	if err := svc.DeleteEvent(context.Background(), p.ID, "user-1", ids[1]); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), p.ID)
	if len(got.Events) != 2 || got.Events[0].ID != ids[0] || got.Events[1].ID != ids[2] {
		t.Fatalf("expected [A C] preserving order, got %#v", got.Events)
	}

	// Borrar algo inexistente => not found.
	if err := svc.DeleteEvent(context.Background(), p.ID, "user-1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_AgendaFor_IncludesDerivedBirthdays(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, newTestInvRepo())

	birth := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC) // hoy con el now fijo
	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Familia", Type: TypeFamily, PetType: PetTypeAny,
		OwnerName: "María", OwnerBirth: &birth,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	events, today, err := svc.AgendaFor(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("AgendaFor: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 derived birthday, got %d", len(events))
	}
	if events[0].Kind != KindBirthday || DueLabel(events[0].Date, today) != "Hoy" {
		t.Fatalf("expected today's birthday, got %#v", events[0])
	}

	// El cumpleaños derivado no es borrable ni existe en Events.
	if err := svc.DeleteEvent(context.Background(), p.ID, "user-1", events[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("derived birthday delete: expected ErrNotFound, got %v", err)
	}
}

func TestService_SendGift_MemberOnly(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), newTestInvRepo())

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name: "Familia", Type: TypeFamily, PetType: PetTypeAny, OwnerName: "María",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.SendGift(context.Background(), p.ID, "user-9", "heart", RecipientMember, p.Members[0].ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-member gift: expected ErrForbidden, got %v", err)
	}

	receipt, err := svc.SendGift(context.Background(), p.ID, "user-1", "bone", RecipientMember, p.Members[0].ID)
	if err != nil {
		t.Fatalf("SendGift: %v", err)
	}
	if receipt.Gift.ID != "bone" || receipt.Gift.Name != "Hueso Dorado" {
		t.Fatalf("unexpected gift: %#v", receipt.Gift)
	}
	if receipt.RecipientName != "María" {
		t.Fatalf("expected recipient María, got %s", receipt.RecipientName)
	}

	if _, err := svc.SendGift(context.Background(), p.ID, "user-1", "diamond", RecipientMember, p.Members[0].ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown gift: expected ErrInvalidInput, got %v", err)
	}
}
