package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/chat"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/packs"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/pets"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

// Identidad del usuario demo (el frontend la manda en X-Debug-User-ID).
const (
	DemoUserID    = "user-demo"
	DemoUserName  = "María González"
	DemoUserEmail = "maria@waggi.pet"
)

// SeedLoader carga los datos demo con los que arranca la app cuando
// WAGGI_SEED_DEMO está activo. Todo relativo al reloj inyectado para que
// los cumpleaños "de hoy" caigan hoy sin importar cuándo corra el proceso.
type SeedLoader struct {
	Packs       packs.Repository
	Invitations packs.InvitationRepository
	Pets        pets.Repository
	Chat        chat.Repository
	Now         sim.Clock
}

func (l SeedLoader) Load(ctx context.Context) error {
	now := l.Now()
	if err := l.seedPacks(ctx, now); err != nil {
		return fmt.Errorf("seed packs: %w", err)
	}
	if err := l.seedPets(ctx, now); err != nil {
		return fmt.Errorf("seed pets: %w", err)
	}
	if err := l.seedChat(ctx, now); err != nil {
		return fmt.Errorf("seed chat: %w", err)
	}
	return nil
}

func (l SeedLoader) seedPacks(ctx context.Context, now time.Time) error {
	// Cumpleaños anclados al día de hoy y de mañana para que la agenda
	// demo siempre tenga algo que mostrar.
	today := birthOn(now, -34)
	tomorrow := birthOn(now.AddDate(0, 0, 1), -3)
	inTwoWeeks := birthOn(now.AddDate(0, 0, 14), -41)

	familia := packs.Pack{
		ID:          "pack-familia-lopez",
		Name:        "Familia López",
		Type:        packs.TypeFamily,
		PetType:     packs.PetTypeAny,
		Description: "La manada de la casa: humanos y peludos López.",
		OwnerUserID: DemoUserID,
		Members: []packs.Member{
			{ID: "member-1", UserID: DemoUserID, Name: DemoUserName, Role: packs.RoleOwner, Avatar: "👩", BirthDate: &today},
			{ID: "member-2", UserID: "user-carlos", Name: "Carlos López", Role: packs.RoleMember, Avatar: "👨", BirthDate: &inTwoWeeks},
			{ID: "member-3", UserID: "user-ana", Name: "Ana López", Role: packs.RoleMember, Avatar: "👧"},
		},
		Pets: []packs.PackPet{
			{ID: "packpet-1", Name: "Max", Type: "Perro", Avatar: "🐕", BirthDate: &tomorrow},
			{ID: "packpet-2", Name: "Luna", Type: "Gato", Avatar: "🐈", BirthDate: &today},
		},
		Events: []packs.Event{
			{
				ID:          "event-1",
				Title:       "Paseo en el parque",
				Description: "Paseo grupal con Max y Luna",
				Date:        now.AddDate(0, 0, 2),
				Time:        "10:00",
				Location:    "Parque Simón Bolívar",
				Attendees:   3,
				CreatedBy:   DemoUserName,
				CanDelete:   true,
				Kind:        packs.KindEvent,
			},
			{
				ID:          "event-2",
				Title:       "Control veterinario de Luna",
				Description: "Chequeo anual y vacunas",
				Date:        now.AddDate(0, 0, 7),
				Time:        "15:30",
				Location:    "Veterinaria Patitas",
				Attendees:   1,
				CreatedBy:   "Carlos López",
				CanDelete:   true,
				Kind:        packs.KindEvent,
			},
		},
		CreatedAt: now.AddDate(0, -2, 0),
	}

	golden := packs.Pack{
		ID:            "pack-golden",
		Name:          "Amantes de los Golden",
		Type:          packs.TypeOpen,
		PetType:       packs.PetTypeDog,
		Description:   "Comunidad abierta para dueños de Golden Retriever.",
		AllowedBreeds: []string{"Golden Retriever"},
		OwnerUserID:   "user-carlos",
		Members: []packs.Member{
			{ID: "member-4", UserID: "user-carlos", Name: "Carlos López", Role: packs.RoleOwner, Avatar: "👨"},
			{ID: "member-5", UserID: DemoUserID, Name: DemoUserName, Role: packs.RoleMember, Avatar: "👩"},
		},
		CreatedAt: now.AddDate(0, -1, 0),
	}

	for _, p := range []packs.Pack{familia, golden} {
		if err := l.Packs.Create(ctx, p); err != nil {
			return err
		}
	}

	inv := packs.Invitation{
		ID:          "invitation-1",
		PackID:      familia.ID,
		OwnerUserID: DemoUserID,
		Email:       "abuela@waggi.pet",
		Status:      packs.StatusInvited,
		CreatedAt:   now.AddDate(0, 0, -1),
		UpdatedAt:   now.AddDate(0, 0, -1),
	}
	return l.Invitations.Create(ctx, inv)
}

func (l SeedLoader) seedPets(ctx context.Context, now time.Time) error {
	lastCheckup := now.AddDate(0, -1, -12)
	demo := []pets.Pet{
		{
			ID:          "pet-lucos",
			OwnerUserID: DemoUserID,
			Name:        "Lucos",
			Type:        "Perro",
			Breed:       "Golden Retriever",
			Age:         3,
			Weight:      28,
			Height:      58,
			Avatar:      "🐕",
			PersonalityTraits: []pets.Trait{
				{Trait: "Juguetón", Color: "bg-yellow-100 text-yellow-800"},
				{Trait: "Cariñoso", Color: "bg-pink-100 text-pink-800"},
				{Trait: "Energético", Color: "bg-orange-100 text-orange-800"},
			},
			EvaluationsUsed:      1,
			EvaluationsAvailable: 10,
			LastCheckup:          &lastCheckup,
			CreatedAt:            now.AddDate(0, -3, 0),
			UpdatedAt:            now.AddDate(0, -1, 0),
		},
		{
			ID:          "pet-asdads",
			OwnerUserID: DemoUserID,
			Name:        "Asdads",
			Type:        "Gato",
			Breed:       "Siamés",
			Age:         2,
			Weight:      4,
			Height:      25,
			Avatar:      "🐈",
			PersonalityTraits: []pets.Trait{
				{Trait: "Independiente", Color: "bg-purple-100 text-purple-800"},
				{Trait: "Curioso", Color: "bg-blue-100 text-blue-800"},
			},
			EvaluationsUsed:      0,
			EvaluationsAvailable: 10,
			CreatedAt:            now.AddDate(0, -2, 0),
			UpdatedAt:            now.AddDate(0, -2, 0),
		},
		{
			ID:          "pet-pepe",
			OwnerUserID: DemoUserID,
			Name:        "Pepe",
			Type:        "Perro",
			Breed:       "Criollo",
			Age:         5,
			Weight:      18,
			Height:      45,
			Avatar:      "🐶",
			PersonalityTraits: []pets.Trait{
				{Trait: "Tranquilo", Color: "bg-green-100 text-green-800"},
			},
			EvaluationsUsed:      0,
			EvaluationsAvailable: 10,
			CreatedAt:            now.AddDate(0, 0, -10),
			UpdatedAt:            now.AddDate(0, 0, -10),
		},
	}

	for _, p := range demo {
		if err := l.Pets.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (l SeedLoader) seedChat(ctx context.Context, now time.Time) error {
	// La sesión demo arranca con consultas ya consumidas para que la UI
	// muestre la cuota parcialmente usada.
	session := chat.Session{
		UserID: DemoUserID,
		Messages: []chat.Message{
			{ID: "msg-1", Content: chat.Greeting, Role: chat.RoleAssistant, Timestamp: now.Add(-30 * time.Minute)},
			{ID: "msg-2", Content: "¿Cada cuánto debo bañar a mi perro?", Role: chat.RoleUser, Timestamp: now.Add(-29 * time.Minute)},
			{ID: "msg-3", Content: chat.CannedResponses[0], Role: chat.RoleAssistant, Timestamp: now.Add(-29 * time.Minute)},
			{ID: "msg-4", Content: "¿Qué vacunas necesita un gato?", Role: chat.RoleUser, Timestamp: now.Add(-20 * time.Minute)},
			{ID: "msg-5", Content: chat.CannedResponses[1], Role: chat.RoleAssistant, Timestamp: now.Add(-20 * time.Minute)},
			{ID: "msg-6", Content: "¿Cómo sé si mi mascota tiene fiebre?", Role: chat.RoleUser, Timestamp: now.Add(-10 * time.Minute)},
			{ID: "msg-7", Content: chat.CannedResponses[3], Role: chat.RoleAssistant, Timestamp: now.Add(-10 * time.Minute)},
		},
		Limits: chat.Limits{
			DailyQuestions: 10,
			QuestionsUsed:  3,
			PlanName:       "Plan Huellito",
		},
	}
	return l.Chat.Save(ctx, session)
}

// birthOn produce una fecha de nacimiento cuyo mes/día coinciden con ref,
// corrida years años (negativo) hacia atrás.
func birthOn(ref time.Time, years int) time.Time {
	d := ref.AddDate(years, 0, 0)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
