package packs

// PackType define la variante de manada.
// @Enum family, open
type PackType string

const (
	TypeFamily PackType = "family"
	TypeOpen   PackType = "open"
)

// PetType restringe qué mascotas admite una manada.
// @Enum dog, cat, any
type PetType string

const (
	PetTypeDog PetType = "dog"
	PetTypeCat PetType = "cat"
	PetTypeAny PetType = "any"
)

// MemberRole define el rol dentro de la manada.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

// EventKind distingue eventos creados por usuarios de los cumpleaños
// derivados de fechas de nacimiento.
type EventKind string

const (
	KindEvent    EventKind = "event"
	KindBirthday EventKind = "birthday"
)

// InvitationStatus es el ciclo de vida de una invitación a la manada.
type InvitationStatus string

const (
	StatusInvited  InvitationStatus = "invited"
	StatusAccepted InvitationStatus = "accepted"
	StatusRevoked  InvitationStatus = "revoked"
)

func validPackType(t PackType) bool {
	switch t {
	case TypeFamily, TypeOpen:
		return true
	default:
		return false
	}
}

func validPetType(t PetType) bool {
	switch t {
	case PetTypeDog, PetTypeCat, PetTypeAny:
		return true
	default:
		return false
	}
}
