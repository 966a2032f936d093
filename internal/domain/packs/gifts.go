package packs

import (
	"context"
	"strings"
	"time"
)

// VirtualGift es un regalo del catálogo fijo. Sender y receiver ganan
// puntos; no se mantiene ningún ledger acumulado.
type VirtualGift struct {
	ID             string
	Name           string
	Cost           int64
	SenderPoints   int
	ReceiverPoints int
}

// RecipientKind distingue a quién se regala.
// @Enum member, pet
type RecipientKind string

const (
	RecipientMember RecipientKind = "member"
	RecipientPet    RecipientKind = "pet"
)

// GiftReceipt es el resultado de un envío simulado.
type GiftReceipt struct {
	Gift           VirtualGift
	RecipientName  string
	SenderPoints   int
	ReceiverPoints int
	SentAt         time.Time
}

// DefaultGiftCatalog son los cinco regalos virtuales de cumpleaños.
func DefaultGiftCatalog() []VirtualGift {
	return []VirtualGift{
		{ID: "heart", Name: "Corazón de Amor", Cost: 0, SenderPoints: 5, ReceiverPoints: 10},
		{ID: "star", Name: "Estrella Brillante", Cost: 1000, SenderPoints: 15, ReceiverPoints: 25},
		{ID: "bone", Name: "Hueso Dorado", Cost: 2500, SenderPoints: 25, ReceiverPoints: 40},
		{ID: "crown", Name: "Corona Imperial", Cost: 5000, SenderPoints: 50, ReceiverPoints: 75},
		{ID: "sparkles", Name: "Regalo Premium", Cost: 10000, SenderPoints: 100, ReceiverPoints: 150},
	}
}

// GiftCatalog devuelve el catálogo configurado del service.
func (s *Service) GiftCatalog() []VirtualGift {
	out := make([]VirtualGift, len(s.gifts))
	copy(out, s.gifts)
	return out
}

// SendGift simula el envío de un regalo a un miembro o mascota de la
// manada: demora fija, log con los puntos, nada persistido.
func (s *Service) SendGift(ctx context.Context, packID, senderUserID, giftID string, kind RecipientKind, recipientID string) (GiftReceipt, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return GiftReceipt{}, err
	}
	if !p.IsMember(senderUserID) {
		return GiftReceipt{}, ErrForbidden
	}

	var gift VirtualGift
	found := false
	for _, g := range s.gifts {
		if g.ID == strings.TrimSpace(giftID) {
			gift, found = g, true
			break
		}
	}
	if !found {
		return GiftReceipt{}, ErrInvalidInput
	}

	recipient, err := recipientName(p, kind, recipientID)
	if err != nil {
		return GiftReceipt{}, err
	}

	if err := s.sleeper.Sleep(ctx, sendDelay); err != nil {
		return GiftReceipt{}, err
	}

	sentAt := s.now()
	s.log.Info("gift sent", map[string]any{
		"pack":            p.Name,
		"gift":            gift.Name,
		"recipient":       recipient,
		"sender_points":   gift.SenderPoints,
		"receiver_points": gift.ReceiverPoints,
	})

	return GiftReceipt{
		Gift:           gift,
		RecipientName:  recipient,
		SenderPoints:   gift.SenderPoints,
		ReceiverPoints: gift.ReceiverPoints,
		SentAt:         sentAt,
	}, nil
}

func recipientName(p Pack, kind RecipientKind, id string) (string, error) {
	switch kind {
	case RecipientMember:
		for _, m := range p.Members {
			if m.ID == id {
				return m.Name, nil
			}
		}
	case RecipientPet:
		for _, pet := range p.Pets {
			if pet.ID == id {
				return pet.Name, nil
			}
		}
	default:
		return "", ErrInvalidInput
	}
	return "", ErrNotFound
}
