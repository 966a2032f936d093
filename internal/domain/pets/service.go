package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	ids  sim.IDGenerator
	now  sim.Clock
}

func NewService(repo Repository, ids sim.IDGenerator, now sim.Clock) *Service {
	s := &Service{repo: repo, ids: ids, now: now}
	if s.ids == nil {
		s.ids = sim.UUIDGenerator()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type CreateInput struct {
	Name   string
	Type   string
	Breed  string
	Age    int
	Weight int
	Height int
	Avatar string

	PersonalityTraits []Trait

	EvaluationsAvailable int
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:                   s.ids.NewID(),
		OwnerUserID:          ownerUserID,
		Name:                 strings.TrimSpace(in.Name),
		Type:                 strings.TrimSpace(in.Type),
		Breed:                strings.TrimSpace(in.Breed),
		Age:                  in.Age,
		Weight:               in.Weight,
		Height:               in.Height,
		Avatar:               in.Avatar,
		PersonalityTraits:    in.PersonalityTraits,
		EvaluationsAvailable: in.EvaluationsAvailable,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	Name   *string
	Breed  *string
	Age    *int
	Weight *int
	Height *int
	Avatar *string

	PersonalityTraits *[]Trait
}

// UpdateProfile es owner-only. Punteros nil = no tocar.
func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.Height != nil {
		p.Height = *in.Height
	}
	if in.Avatar != nil {
		p.Avatar = *in.Avatar
	}
	if in.PersonalityTraits != nil {
		p.PersonalityTraits = *in.PersonalityTraits
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// RecordEvaluation consume una evaluación UW si quedan disponibles.
func (s *Service) RecordEvaluation(ctx context.Context, petID, userID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	if p.EvaluationsUsed >= p.EvaluationsAvailable {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p.EvaluationsUsed++
	p.LastCheckup = &now
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete es owner-only.
func (s *Service) Delete(ctx context.Context, petID, userID string) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerUserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, petID)
}
