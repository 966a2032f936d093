package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/ports/capabilities"
)

// Demora fija antes de la respuesta del asistente.
const replyDelay = 1500 * time.Millisecond

type Service struct {
	repo     Repository
	resolver capabilities.Resolver

	sleeper sim.Sleeper
	ids     sim.IDGenerator
	rng     *sim.Rand
	now     sim.Clock

	// Un envío en vuelo por sesión: la UI deshabilita el input durante
	// la demora, pero la garantía vive acá.
	mu    sync.Mutex
	inUse map[string]*sync.Mutex
}

type ServiceOptions struct {
	Repo     Repository
	Resolver capabilities.Resolver

	Sleeper sim.Sleeper
	IDs     sim.IDGenerator
	Rand    *sim.Rand
	Now     sim.Clock
}

func NewService(opts ServiceOptions) *Service {
	s := &Service{
		repo:     opts.Repo,
		resolver: opts.Resolver,
		sleeper:  opts.Sleeper,
		ids:      opts.IDs,
		rng:      opts.Rand,
		now:      opts.Now,
		inUse:    make(map[string]*sync.Mutex),
	}
	if s.sleeper == nil {
		s.sleeper = sim.RealSleeper()
	}
	if s.ids == nil {
		s.ids = sim.UUIDGenerator()
	}
	if s.rng == nil {
		s.rng = sim.NewRandFromTime()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) sessionLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.inUse[userID]
	if !ok {
		m = &sync.Mutex{}
		s.inUse[userID] = m
	}
	return m
}

// Session devuelve la conversación del usuario, creándola con el saludo
// de WaggiBot y la cuota de su plan si no existe.
func (s *Service) Session(ctx context.Context, userID string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, ErrInvalidInput
	}

	sess, err := s.repo.Get(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	ent, err := s.resolver.EntitlementsFor(ctx, userID)
	if err != nil {
		return Session{}, err
	}

	sess = Session{
		UserID: userID,
		Messages: []Message{{
			ID:        s.ids.NewID(),
			Content:   Greeting,
			Role:      RoleAssistant,
			Timestamp: s.now(),
		}},
		Limits: Limits{
			DailyQuestions: ent.DailyQuestions,
			PlanName:       ent.PlanName,
		},
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Send agrega el mensaje del usuario de inmediato y, tras la demora fija,
// la respuesta sorteada del asistente. Con la cuota agotada no toca nada
// y devuelve ErrQuotaExceeded. Devuelve ambos mensajes en orden.
func (s *Service) Send(ctx context.Context, userID, content string) ([]Message, Limits, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, Limits{}, ErrInvalidInput
	}

	lock := s.sessionLock(strings.TrimSpace(userID))
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.Session(ctx, userID)
	if err != nil {
		return nil, Limits{}, err
	}

	if sess.Limits.QuestionsUsed >= sess.Limits.DailyQuestions {
		return nil, sess.Limits, ErrQuotaExceeded
	}

	userMsg := Message{
		ID:        s.ids.NewID(),
		Content:   content,
		Role:      RoleUser,
		Timestamp: s.now(),
	}
	sess.Messages = append(sess.Messages, userMsg)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, Limits{}, err
	}

	if err := s.sleeper.Sleep(ctx, replyDelay); err != nil {
		return nil, sess.Limits, err
	}

	reply := Message{
		ID:        s.ids.NewID(),
		Content:   CannedResponses[s.rng.Intn(len(CannedResponses))],
		Role:      RoleAssistant,
		Timestamp: s.now(),
	}
	sess.Messages = append(sess.Messages, reply)
	sess.Limits.QuestionsUsed++

	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, Limits{}, err
	}

	return []Message{userMsg, reply}, sess.Limits, nil
}
