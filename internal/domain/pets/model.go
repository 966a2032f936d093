package pets

import "time"

// Trait es un rasgo de personalidad con su color de chip en la UI.
type Trait struct {
	Trait string
	Color string
}

// Pet es el perfil de una mascota registrada por un usuario.
// Edad en años, peso en kg, altura en cm, como los muestra el cliente.
type Pet struct {
	ID          string
	OwnerUserID string

	Name   string
	Type   string // Perro, Gato, ...
	Breed  string
	Age    int
	Weight int
	Height int
	Avatar string

	PersonalityTraits []Trait

	// Evaluaciones UW consumidas/disponibles según el plan.
	EvaluationsUsed      int
	EvaluationsAvailable int

	LastCheckup *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
