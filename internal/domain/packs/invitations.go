package packs

import (
	"context"
	"strings"
)

// Invite crea una invitación por email y simula el envío (demora fija +
// log; ningún correo sale de verdad). Solo el owner invita. Si ya existe
// una invitación no revocada para ese email, se reutiliza.
func (s *Service) Invite(ctx context.Context, packID, userID, email string) (Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Invitation{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return Invitation{}, err
	}
	if p.OwnerUserID != userID {
		return Invitation{}, ErrForbidden
	}

	existing, err := s.invRepo.ListByPack(ctx, packID)
	if err != nil {
		return Invitation{}, err
	}
	for _, inv := range existing {
		if inv.Email == email && inv.Status != StatusRevoked {
			// Idempotente: reenviar no duplica.
			return inv, nil
		}
	}

	if err := s.sleeper.Sleep(ctx, sendDelay); err != nil {
		return Invitation{}, err
	}

	now := s.now()
	inv := Invitation{
		ID:          s.ids.NewID(),
		PackID:      packID,
		OwnerUserID: userID,
		Email:       email,
		Status:      StatusInvited,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.invRepo.Create(ctx, inv); err != nil {
		return Invitation{}, err
	}

	s.log.Info("pack invitation sent", map[string]any{
		"pack": p.Name,
		"to":   email,
	})
	return inv, nil
}

// AcceptInvitation pasa la invitación a accepted y suma al usuario como
// miembro. Idempotente: aceptar dos veces no duplica membresía.
func (s *Service) AcceptInvitation(ctx context.Context, invID, userID, userName, email string) (Invitation, error) {
	invID = strings.TrimSpace(invID)
	userID = strings.TrimSpace(userID)
	if invID == "" || userID == "" {
		return Invitation{}, ErrInvalidInput
	}

	inv, err := s.invRepo.GetByID(ctx, invID)
	if err != nil {
		return Invitation{}, ErrNotFound
	}

	if !strings.EqualFold(inv.Email, strings.TrimSpace(email)) {
		return Invitation{}, ErrForbidden
	}
	if inv.Status == StatusRevoked {
		return Invitation{}, ErrBadState
	}
	if inv.Status == StatusAccepted {
		return inv, nil
	}

	p, err := s.repo.GetByID(ctx, inv.PackID)
	if err != nil {
		return Invitation{}, err
	}
	if !p.IsMember(userID) {
		name := strings.TrimSpace(userName)
		if name == "" {
			name = userID
		}
		p.Members = append(p.Members, Member{
			ID:     s.ids.NewID(),
			UserID: userID,
			Name:   name,
			Role:   RoleMember,
		})
		if err := s.repo.Update(ctx, p); err != nil {
			return Invitation{}, err
		}
	}

	now := s.now()
	inv.Status = StatusAccepted
	inv.UpdatedAt = now
	if err := s.invRepo.Update(ctx, inv); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

// RevokeInvitation es owner-only e idempotente.
func (s *Service) RevokeInvitation(ctx context.Context, invID, userID string) (Invitation, error) {
	inv, err := s.invRepo.GetByID(ctx, invID)
	if err != nil {
		return Invitation{}, ErrNotFound
	}
	if inv.OwnerUserID != strings.TrimSpace(userID) {
		return Invitation{}, ErrForbidden
	}
	if inv.Status == StatusRevoked {
		return inv, nil
	}

	now := s.now()
	inv.Status = StatusRevoked
	inv.UpdatedAt = now
	inv.RevokedAt = &now
	if err := s.invRepo.Update(ctx, inv); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

// ListInvitations devuelve las invitaciones de una manada (owner-only).
func (s *Service) ListInvitations(ctx context.Context, packID, userID string) ([]Invitation, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return nil, err
	}
	if p.OwnerUserID != userID {
		return nil, ErrForbidden
	}
	return s.invRepo.ListByPack(ctx, packID)
}

// MyInvitations devuelve las invitaciones dirigidas al email del usuario.
func (s *Service) MyInvitations(ctx context.Context, email string) ([]Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidInput
	}
	return s.invRepo.ListByEmail(ctx, email)
}
