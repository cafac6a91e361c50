package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"

	"github.com/elibhq/bookvault/internal/auth"
	"github.com/elibhq/bookvault/pkg/bookvault"
	"github.com/elibhq/bookvault/pkg/bookvault/api"
	"github.com/elibhq/bookvault/pkg/bookvault/config"
	mongorepo "github.com/elibhq/bookvault/pkg/bookvault/repo/mongo"
	s3storage "github.com/elibhq/bookvault/pkg/bookvault/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := mongorepo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(ctx)

	assetStore, err := s3storage.New(s3storage.Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Endpoint:        cfg.S3.Endpoint,
		UsePathStyle:    cfg.S3.UsePathStyle,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	svc, err := bookvault.New(
		bookvault.WithBookRepository(db.Books()),
		bookvault.WithAssetStore(assetStore),
	)
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	tokens := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil)
	authService := auth.New(db.Users(), tokens)

	bookHandler, err := api.NewBookHandler(svc, tokens, cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to create book handler: %v", err)
	}
	userHandler := api.NewUserHandler(authService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status": "healthy", "environment": "%s"}`, cfg.Environment)
	})

	r.Mount("/api/users", userHandler.Routes())
	r.Mount("/api/books", bookHandler.Routes())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Printf("Bookvault server starting on port %s (env: %s)", cfg.Port, cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
