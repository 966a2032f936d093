package packs

import (
	"sort"
	"time"
)

// NextBirthday proyecta una fecha de nacimiento a su próxima ocurrencia:
// mes/día sobre el año actual; si ya pasó (estrictamente antes de hoy),
// corre al año siguiente. El mismo día cuenta como este año.
func NextBirthday(birth, today time.Time) time.Time {
	t := dateOnly(today)
	next := time.Date(t.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, t.Location())
	if next.Before(t) {
		next = time.Date(t.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, t.Location())
	}
	return next
}

// DueToday compara por día calendario contra hoy.
func DueToday(d, today time.Time) bool {
	return sameDay(d, today)
}

// DueTomorrow compara contra el día siguiente.
func DueTomorrow(d, today time.Time) bool {
	return sameDay(d, dateOnly(today).AddDate(0, 0, 1))
}

// DueLabel devuelve la etiqueta de la agenda: "Hoy", "Mañana" o vacío.
// Solo afecta presentación, nunca dispara acciones.
func DueLabel(d, today time.Time) string {
	switch {
	case DueToday(d, today):
		return "Hoy"
	case DueTomorrow(d, today):
		return "Mañana"
	default:
		return ""
	}
}

// Agenda mezcla los eventos creados por usuarios con los cumpleaños
// derivados de miembros y mascotas, ordenados ascendente por fecha+hora.
// Los cumpleaños entran a las 00:00 y no son borrables.
func Agenda(p Pack, today time.Time) []Event {
	out := make([]Event, 0, len(p.Events)+len(p.Members)+len(p.Pets))
	out = append(out, p.Events...)

	for _, m := range p.Members {
		if m.BirthDate == nil {
			continue
		}
		out = append(out, birthdayEvent("member-"+m.ID, m.Name, *m.BirthDate, today))
	}
	for _, pet := range p.Pets {
		if pet.BirthDate == nil {
			continue
		}
		out = append(out, birthdayEvent("pet-"+pet.ID, pet.Name, *pet.BirthDate, today))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt().Before(out[j].StartAt())
	})
	return out
}

func birthdayEvent(id, name string, birth, today time.Time) Event {
	return Event{
		ID:        "birthday-" + id,
		Title:     "Cumpleaños de " + name,
		Date:      NextBirthday(birth, today),
		Time:      "00:00",
		CreatedBy: "Waggi",
		CanDelete: false,
		Kind:      KindBirthday,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
