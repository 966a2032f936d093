package packs

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// Pack es la manada: grupo familiar o abierto para compartir el cuidado
// de mascotas. Vive solo en memoria durante la sesión del proceso.
type Pack struct {
	ID          string
	Name        string
	Type        PackType
	PetType     PetType
	Description string

	// Solo tiene sentido cuando PetType != any; se limpia en caso contrario.
	AllowedBreeds []string

	OwnerUserID string

	Members []Member
	Pets    []PackPet
	Events  []Event

	CreatedAt time.Time
}

// Member es un integrante de la manada. BirthDate opcional alimenta la
// derivación de cumpleaños.
type Member struct {
	ID        string
	UserID    string
	Name      string
	Role      MemberRole
	Avatar    string
	BirthDate *time.Time
}

// PackPet es una mascota asociada a la manada.
type PackPet struct {
	ID        string
	Name      string
	Type      string
	Avatar    string
	BirthDate *time.Time
}

// Event es un evento de agenda. Los creados por usuarios llevan Kind
// "event"; los cumpleaños derivados llevan "birthday" y no se borran.
type Event struct {
	ID          string
	Title       string
	Description string

	// Fecha (solo día) y hora "HH:MM" por separado, como el cliente.
	Date time.Time
	Time string

	Location  string
	Attendees int
	CreatedBy string
	CanDelete bool
	Kind      EventKind
}

// StartAt combina fecha y hora para ordenar la agenda.
// Hora inválida o vacía cae en 00:00.
func (e Event) StartAt() time.Time {
	h, m := 0, 0
	if t, err := time.Parse("15:04", e.Time); err == nil {
		h, m = t.Hour(), t.Minute()
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), h, m, 0, 0, e.Date.Location())
}

// Invitation invita a un email a unirse a la manada.
// Mismo ciclo invited/accepted/revoked que un grant de acceso.
type Invitation struct {
	ID     string
	PackID string

	OwnerUserID string
	Email       string

	Status InvitationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// IsMember reporta si el usuario integra la manada.
func (p Pack) IsMember(userID string) bool {
	if p.OwnerUserID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
