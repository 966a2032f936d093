// Package router arma el chi.Router con los middlewares y monta las rutas
// de todos los módulos del producto.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/adapters/capabilities/planfeatures"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/adapters/storage/memory"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/chat"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/checkout"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/packs"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/pets"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/middleware"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/logger"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/ports/auth"
)

// Options parametriza el armado. Todos los campos son opcionales: los
// tests inyectan reloj, sleeper y azar deterministas; producción usa los
// defaults reales.
type Options struct {
	AuthVerifier auth.AuthVerifier
	Logger       logger.Logger

	// SeedDemo carga los datos demo al arrancar.
	SeedDemo bool

	Now     sim.Clock
	Sleeper sim.Sleeper
	Rand    *sim.Rand
	IDs     sim.IDGenerator

	// Provider permite fijar el resultado del pago en tests.
	Provider checkout.OutcomeProvider
}

func New(opts Options) http.Handler {
	lg := opts.Logger
	if lg == nil {
		lg = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = sim.RealSleeper()
	}
	rng := opts.Rand
	if rng == nil {
		rng = sim.NewRandFromTime()
	}
	ids := opts.IDs
	if ids == nil {
		ids = sim.UUIDGenerator()
	}

	catalog := plans.DefaultCatalog()
	resolver := planfeatures.NewResolver(catalog, "huellito")

	packRepo := memory.NewPackRepo()
	invitationRepo := memory.NewInvitationRepo()
	petRepo := memory.NewPetRepo()
	chatRepo := memory.NewChatRepo()
	checkoutRepo := memory.NewCheckoutRepo()

	if opts.SeedDemo {
		seed := memory.SeedLoader{
			Packs:       packRepo,
			Invitations: invitationRepo,
			Pets:        petRepo,
			Chat:        chatRepo,
			Now:         now,
		}
		if err := seed.Load(context.Background()); err != nil {
			lg.Error("seed demo data", map[string]any{"error": err.Error()})
		} else {
			lg.Info("demo data loaded", map[string]any{"user": memory.DemoUserID})
		}
	}

	provider := opts.Provider
	if provider == nil {
		provider = checkout.NewWeightedProvider(rng)
	}

	checkoutSvc := checkout.NewService(checkout.ServiceOptions{
		Catalog:   catalog,
		Repo:      checkoutRepo,
		Provider:  provider,
		Activator: resolver,
		Sleeper:   sleeper,
		IDs:       ids,
		Now:       now,
		Logger:    lg,
	})

	chatSvc := chat.NewService(chat.ServiceOptions{
		Repo:     chatRepo,
		Resolver: resolver,
		Sleeper:  sleeper,
		IDs:      ids,
		Rand:     rng,
		Now:      now,
	})

	packSvc := packs.NewService(packs.ServiceOptions{
		Repo:        packRepo,
		Invitations: invitationRepo,
		Sleeper:     sleeper,
		IDs:         ids,
		Now:         now,
		Logger:      lg,
	})

	petSvc := pets.NewService(petRepo, ids, now)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-User-Email", "X-Debug-User-Name"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	plans.RegisterRoutes(r, catalog)
	checkout.RegisterRoutes(r, checkoutSvc)
	chat.RegisterRoutes(r, chatSvc)
	packs.RegisterRoutes(r, packSvc)
	pets.RegisterRoutes(r, petSvc)

	return r
}
