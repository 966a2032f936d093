package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/logger"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	lg := logger.NewFromEnv()

	r := router.New(router.Options{
		Logger:   lg,
		SeedDemo: os.Getenv("WAGGI_SEED_DEMO") == "true",
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second, // las simulaciones de pago duermen hasta 5s
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
