package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopscout/config"
	"shopscout/database"
	"shopscout/handlers"
	"shopscout/matching"
	"shopscout/middleware"
	"shopscout/notifier"
	"shopscout/repository"
	"shopscout/scheduler"
	"shopscout/scraper"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.InitDatabase(cfg.Database.ConnString()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	fetcher, err := scraper.NewFetcher(cfg.Browser)
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer fetcher.Close()

	productRepo := repository.NewProductRepository()
	comparisonRepo := repository.NewComparisonRepository()
	settingsRepo := repository.NewSettingsRepository()

	ranker := matching.NewRanker(matching.Weights{
		Title:     cfg.Ranker.TitleWeight,
		Keyword:   cfg.Ranker.KeywordWeight,
		Position:  cfg.Ranker.PositionWeight,
		Price:     cfg.Ranker.PriceWeight,
		Threshold: cfg.Ranker.AcceptThreshold,
	})

	checker := scheduler.NewPriceChecker(
		productRepo,
		comparisonRepo,
		settingsRepo,
		fetcher,
		notifier.NewWebhookNotifier(),
		ranker,
		cfg.Worker,
	)

	if cfg.Worker.Mode == "once" {
		if err := checker.RunOnce(); err != nil {
			log.Fatalf("Check cycle failed: %v", err)
		}
		return
	}

	sched := scheduler.NewScheduler(checker)
	if err := sched.Start(cfg.Worker.IntervalHours); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	if cfg.Server.Enabled {
		h := handlers.NewHandlers(productRepo, comparisonRepo, checker)
		go runStatusServer(cfg.Server, h)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down")
}

// runStatusServer serves the read-only monitoring endpoints in daemon mode.
func runStatusServer(cfg config.ServerConfig, h *handlers.Handlers) {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(5))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/status", h.Status).Methods("GET")
	r.HandleFunc("/metrics", h.Metrics).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	log.Printf("Status server listening on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Printf("Status server stopped: %v", err)
	}
}
