package packs

import (
	"context"
	"strings"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/logger"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

// Demora simulada de invitaciones y regalos.
const sendDelay = time.Second

type Service struct {
	repo    Repository
	invRepo InvitationRepository
	gifts   []VirtualGift

	sleeper sim.Sleeper
	ids     sim.IDGenerator
	now     sim.Clock
	log     logger.Logger
}

type ServiceOptions struct {
	Repo        Repository
	Invitations InvitationRepository
	Gifts       []VirtualGift // nil => catálogo default

	Sleeper sim.Sleeper
	IDs     sim.IDGenerator
	Now     sim.Clock
	Logger  logger.Logger
}

func NewService(opts ServiceOptions) *Service {
	s := &Service{
		repo:    opts.Repo,
		invRepo: opts.Invitations,
		gifts:   opts.Gifts,
		sleeper: opts.Sleeper,
		ids:     opts.IDs,
		now:     opts.Now,
		log:     opts.Logger,
	}
	if s.gifts == nil {
		s.gifts = DefaultGiftCatalog()
	}
	if s.sleeper == nil {
		s.sleeper = sim.RealSleeper()
	}
	if s.ids == nil {
		s.ids = sim.UUIDGenerator()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

type CreateInput struct {
	Name          string
	Type          PackType
	PetType       PetType
	Description   string
	AllowedBreeds []string
	OwnerName     string
	OwnerBirth    *time.Time
}

// Create valida las variantes de forma exhaustiva y deja al creador como
// owner dentro de members. AllowedBreeds solo sobrevive si PetType != any.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pack, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" || strings.TrimSpace(in.Name) == "" {
		return Pack{}, ErrInvalidInput
	}
	if !validPackType(in.Type) || !validPetType(in.PetType) {
		return Pack{}, ErrInvalidInput
	}

	breeds := in.AllowedBreeds
	if in.PetType == PetTypeAny {
		breeds = nil
	}

	ownerName := strings.TrimSpace(in.OwnerName)
	if ownerName == "" {
		ownerName = ownerUserID
	}

	now := s.now()
	p := Pack{
		ID:            s.ids.NewID(),
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		PetType:       in.PetType,
		Description:   strings.TrimSpace(in.Description),
		AllowedBreeds: breeds,
		OwnerUserID:   ownerUserID,
		Members: []Member{{
			ID:        s.ids.NewID(),
			UserID:    ownerUserID,
			Name:      ownerName,
			Role:      RoleOwner,
			BirthDate: in.OwnerBirth,
		}},
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pack{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pack, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pack, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name          *string
	Description   *string
	PetType       *PetType
	AllowedBreeds *[]string
}

// Update es owner-only. Punteros nil = no tocar.
func (s *Service) Update(ctx context.Context, packID, userID string, in UpdateInput) (Pack, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return Pack{}, err
	}
	if p.OwnerUserID != userID {
		return Pack{}, ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pack{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.PetType != nil {
		if !validPetType(*in.PetType) {
			return Pack{}, ErrInvalidInput
		}
		p.PetType = *in.PetType
	}
	if in.AllowedBreeds != nil {
		p.AllowedBreeds = *in.AllowedBreeds
	}
	// Invariante: razas solo con tipo restringido.
	if p.PetType == PetTypeAny {
		p.AllowedBreeds = nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// Delete es owner-only y definitivo (no hay papelera: es estado de vista).
func (s *Service) Delete(ctx context.Context, packID, userID string) error {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return err
	}
	if p.OwnerUserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, packID)
}

type AddEventInput struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Location    string
}

// AddEvent agrega un evento creado por un miembro. Debe ser futuro.
func (s *Service) AddEvent(ctx context.Context, packID, userID, userName string, in AddEventInput) (Event, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return Event{}, err
	}
	if !p.IsMember(userID) {
		return Event{}, ErrForbidden
	}

	if strings.TrimSpace(in.Title) == "" || in.Date == "" || in.Time == "" {
		return Event{}, ErrInvalidInput
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return Event{}, ErrInvalidInput
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return Event{}, ErrInvalidInput
	}

	e := Event{
		ID:          s.ids.NewID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		Time:        in.Time,
		Location:    strings.TrimSpace(in.Location),
		CreatedBy:   userName,
		CanDelete:   true,
		Kind:        KindEvent,
	}
	if !e.StartAt().After(s.now()) {
		return Event{}, ErrInvalidInput
	}

	p.Events = append(p.Events, e)
	if err := s.repo.Update(ctx, p); err != nil {
		return Event{}, err
	}
	return e, nil
}

// DeleteEvent filtra exactamente el evento pedido, preservando el orden
// relativo del resto. Cumpleaños derivados no existen en Events.
func (s *Service) DeleteEvent(ctx context.Context, packID, userID, eventID string) error {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return err
	}
	if !p.IsMember(userID) {
		return ErrForbidden
	}

	idx := -1
	for i, e := range p.Events {
		if e.ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if !p.Events[idx].CanDelete {
		return ErrForbidden
	}

	p.Events = append(p.Events[:idx], p.Events[idx+1:]...)
	return s.repo.Update(ctx, p)
}

// AgendaFor arma la agenda de la manada: eventos + cumpleaños derivados.
func (s *Service) AgendaFor(ctx context.Context, packID string) ([]Event, time.Time, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return nil, time.Time{}, err
	}
	today := s.now()
	return Agenda(p, today), today, nil
}

type AddPetInput struct {
	Name      string
	Type      string
	Avatar    string
	BirthDate *time.Time
}

// AddPet asocia una mascota a la manada (miembros solamente).
func (s *Service) AddPet(ctx context.Context, packID, userID string, in AddPetInput) (PackPet, error) {
	p, err := s.repo.GetByID(ctx, packID)
	if err != nil {
		return PackPet{}, err
	}
	if !p.IsMember(userID) {
		return PackPet{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return PackPet{}, ErrInvalidInput
	}

	pet := PackPet{
		ID:        s.ids.NewID(),
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		Avatar:    in.Avatar,
		BirthDate: in.BirthDate,
	}
	p.Pets = append(p.Pets, pet)
	if err := s.repo.Update(ctx, p); err != nil {
		return PackPet{}, err
	}
	return pet, nil
}
