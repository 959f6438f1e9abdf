package main

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garagem/internal/api"
	"garagem/internal/auth"
	"garagem/internal/config"
	"garagem/internal/repository"
	"garagem/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	garageRepo := repository.NewGarageRepository(database)
	parkingRepo := repository.NewParkingRepository(database)
	adminRepo := repository.NewAdminAuthRepository(database)

	pricingSvc := service.NewPricingService()
	garageSvc := service.NewGarageService(garageRepo, cfg.SimulatorURL)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	parkingSvc := service.NewParkingService(parkingRepo, garageRepo, garageSvc, pricingSvc, rng)
	adminAuthSvc := service.NewAdminAuthService(adminRepo, cfg.JWTSecret)

	queue := service.NewEventQueueService(cfg.QueueCapacity, parkingSvc)
	queue.Start()
	defer queue.Stop()

	// Topology load failure is logged, not fatal: the simulator may come up
	// after us and /garage can be re-fetched on the next boot.
	if err := garageSvc.LoadGarageData(context.Background()); err != nil {
		log.Printf("Failed to load garage topology: %v", err)
	}

	jobSvc := service.NewJobService(queue)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", jobSvc.ReportQueueStats); err != nil {
		log.Fatalf("Failed to schedule stats job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	webhookHandler := api.NewWebhookHandler(queue)
	dlqHandler := api.NewDLQHandler(queue)
	revenueHandler := api.NewRevenueHandler(parkingSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	limiter := api.NewRateLimiter(5, 10*time.Second)

	r := mux.NewRouter()

	// Ingestion endpoint (rate limited)
	r.Handle("/webhook", limiter.Middleware(http.HandlerFunc(webhookHandler.HandleEvent))).Methods("POST")

	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.NewRoute().Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/dlq", dlqHandler.GetDLQ).Methods("GET")
	admin.HandleFunc("/dlq/size", dlqHandler.GetDLQSize).Methods("GET")
	admin.HandleFunc("/revenue", revenueHandler.GetRevenue).Methods("GET")
	admin.HandleFunc("/admin/users", adminAuthHandler.CreateAdmin).Methods("POST")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.CombinedLoggingHandler(os.Stdout, r),
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
