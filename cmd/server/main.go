package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iscottycodes/contentcontest/config"
	"github.com/iscottycodes/contentcontest/internal/auth"
	"github.com/iscottycodes/contentcontest/internal/backend"
	"github.com/iscottycodes/contentcontest/internal/database"
	"github.com/iscottycodes/contentcontest/internal/storage"
	"github.com/iscottycodes/contentcontest/internal/token"
	"github.com/iscottycodes/contentcontest/internal/web/handlers"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("contentcontest-server %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()

	if cfg.JWT.SigningKey == "" {
		key, err := token.GenerateSigningKey()
		if err != nil {
			log.Fatalf("Failed to generate JWT signing key: %v", err)
		}
		log.Println("WARNING: JWT_SIGNING_KEY is empty, API tokens will not survive a restart (set JWT_SIGNING_KEY in production)")
		cfg.JWT.SigningKey = key
	}

	ctx := context.Background()

	// Connect to Firestore, Auth, and Cloud Storage. In development with
	// missing configuration the handles stay nil and each data-access
	// call fails with a configuration error instead of the process
	// refusing to start; production still fails fast.
	clients := &backend.Clients{}
	if missing := cfg.MissingFirebaseVars(); len(missing) > 0 {
		if cfg.IsProduction() {
			log.Fatalf("Missing required Firebase configuration: %s", strings.Join(missing, ", "))
		}
		log.Printf("WARNING: missing Firebase configuration: %s (backend requests will fail until set)", strings.Join(missing, ", "))
	} else {
		c, err := backend.New(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize backend clients: %v", err)
		}
		clients = c
	}
	defer clients.Close()

	db := database.New(clients.Firestore)
	uploader := storage.NewUploader(clients.Bucket, cfg.Firebase.StorageBucket)

	cookieTTL := time.Duration(cfg.Auth.SessionCookieMaxAge) * time.Second
	authService, err := auth.New(ctx, cfg.Firebase.APIKey, clients.Auth, cookieTTL)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	tokenService := token.New(cfg.JWT.SigningKey, cfg.JWT.Issuer)

	// Initialize router.
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Initialize handlers.
	h := handlers.New(db, uploader, cfg, authService, tokenService)

	// Public routes.
	r.Get("/", h.Home)
	r.Get("/contest", h.ContestPage)
	r.Get("/submit", h.SubmitPage)
	r.Post("/submit", h.SubmitPost)
	r.Get("/sponsors", h.Sponsors)
	r.Get("/blog/{type}", h.BlogList)
	r.Get("/blog/{type}/{id}", h.BlogPostView)
	r.Get("/volunteer", h.VolunteerPage)
	r.Post("/volunteer", h.VolunteerPost)
	r.Get("/contact", h.ContactPage)
	r.Post("/contact", h.ContactPost)

	// Admin login (outside the guard).
	r.Get("/admin/login", h.LoginPage)
	r.Post("/admin/login", h.Login)
	r.Post("/admin/forgot-password", h.ForgotPassword)
	r.Get("/admin/logout", h.Logout)

	// Admin routes (session required).
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(authService))

		r.Get("/admin", h.Dashboard)
		r.Get("/admin/submissions", h.AdminSubmissions)
		r.Post("/admin/submissions/{id}", h.AdminSubmissionUpdate)
		r.Get("/admin/sponsors", h.AdminSponsors)
		r.Post("/admin/sponsors/save", h.AdminSponsorSave)
		r.Post("/admin/sponsors/{id}/delete", h.AdminSponsorDelete)
		r.Get("/admin/volunteers", h.AdminVolunteers)
		r.Post("/admin/volunteers/{id}", h.AdminVolunteerUpdate)
		r.Get("/admin/blog", h.AdminBlog)
		r.Post("/admin/blog/save", h.AdminBlogSave)
		r.Post("/admin/blog/{id}/delete", h.AdminBlogDelete)
		r.Get("/admin/contests", h.AdminContests)
		r.Post("/admin/contests/save", h.AdminContestSave)
		r.Post("/admin/contests/{id}/delete", h.AdminContestDelete)
		r.Get("/admin/settings", h.AdminSettings)
		r.Post("/admin/settings", h.AdminSettingsSave)
	})

	// JSON API. Token exchange takes the session cookie; everything else
	// takes the bearer token.
	r.Post("/api/token", h.APIToken)
	r.Group(func(r chi.Router) {
		r.Use(handlers.APIAuthMiddleware(tokenService))

		r.Get("/api/submissions", h.APIListSubmissions)
		r.Patch("/api/submissions/{id}", h.APIUpdateSubmission)
		r.Get("/api/volunteers", h.APIListVolunteers)
		r.Patch("/api/volunteers/{id}", h.APIUpdateVolunteer)
	})

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s (env: %s)", addr, cfg.Server.Env)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
