package packs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBirthday(t *testing.T) {
	cases := []struct {
		name  string
		birth time.Time
		today time.Time
		want  time.Time
	}{
		{"mismo día cuenta este año", date(1990, 6, 15), date(2026, 6, 15), date(2026, 6, 15)},
		{"ya pasó, corre al siguiente", date(1990, 6, 15), date(2026, 6, 16), date(2027, 6, 15)},
		{"todavía no llega", date(1990, 6, 15), date(2026, 1, 2), date(2026, 6, 15)},
		{"ignora la hora de hoy", date(1990, 6, 15), time.Date(2026, 6, 15, 23, 59, 0, 0, time.UTC), date(2026, 6, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextBirthday(tc.birth, tc.today))
		})
	}
}

func TestDueLabel(t *testing.T) {
	today := date(2026, 6, 15)

	assert.Equal(t, "Hoy", DueLabel(date(2026, 6, 15), today))
	assert.Equal(t, "Mañana", DueLabel(date(2026, 6, 16), today))
	assert.Equal(t, "", DueLabel(date(2026, 6, 17), today))
	assert.Equal(t, "", DueLabel(date(2026, 6, 14), today))
}

func TestAgenda_MergesAndSorts(t *testing.T) {
	today := date(2026, 6, 15)
	birthMember := date(1990, 6, 16) // mañana
	birthPet := date(2024, 6, 15)    // hoy

	p := Pack{
		ID: "pack-1",
		Members: []Member{
			{ID: "m1", UserID: "user-1", Name: "María", BirthDate: &birthMember},
			{ID: "m2", UserID: "user-2", Name: "Carlos"}, // sin fecha: no aparece
		},
		Pets: []PackPet{
			{ID: "p1", Name: "Luna", BirthDate: &birthPet},
		},
		Events: []Event{
			{ID: "e1", Title: "Paseo", Date: date(2026, 6, 16), Time: "10:00", Kind: KindEvent, CanDelete: true},
			{ID: "e2", Title: "Vacunas", Date: date(2026, 6, 15), Time: "15:30", Kind: KindEvent, CanDelete: true},
		},
	}

	agenda := Agenda(p, today)

	ids := make([]string, 0, len(agenda))
	for _, e := range agenda {
		ids = append(ids, e.ID)
	}
	// Cumpleaños a las 00:00 van antes que los eventos del mismo día.
	assert.Equal(t, []string{"birthday-pet-p1", "e2", "birthday-member-m1", "e1"}, ids)

	for _, e := range agenda {
		if e.Kind == KindBirthday {
			assert.False(t, e.CanDelete, "birthday %s must not be deletable", e.ID)
			assert.Equal(t, "Waggi", e.CreatedBy)
			assert.Equal(t, "00:00", e.Time)
		}
	}

	by := agenda[0]
	assert.Equal(t, "Cumpleaños de Luna", by.Title)
	assert.Equal(t, "Hoy", DueLabel(by.Date, today))
}

func TestEvent_StartAt_InvalidTimeFallsToMidnight(t *testing.T) {
	e := Event{Date: date(2026, 6, 15), Time: "25:99"}
	assert.Equal(t, date(2026, 6, 15), e.StartAt())
}
