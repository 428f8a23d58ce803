package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"conferencehub/config"
	"conferencehub/internal/adapters/auth"
	"conferencehub/internal/adapters/email"
	delivery "conferencehub/internal/delivery/http"
	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
	"conferencehub/internal/repository/postgres"
	"conferencehub/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title ConferenceHub API
// @version 1.0
// @description Conference and event management backend: events, sponsors,
// @description caterings, categories, locations, resources, prelegents,
// @description and attendee ticketing.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("Failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("Failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	entityRepos := make(map[string]domain.EntityRepository)
	for _, kind := range domain.Kinds() {
		entityRepos[kind.Singular] = postgres.NewEntityRepository(db, kind)
	}
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	eventSvc := services.NewEventService(eventRepo, entityRepos, serviceTimeout)
	userSvc := services.NewUserService(userRepo, roleRepo, hasher, tokenIssuer,
		time.Duration(cfg.TokenExpiryHours)*time.Hour, emailSvc)
	ticketSvc := services.NewTicketService(ticketRepo, eventRepo, userRepo, emailSvc, logger, serviceTimeout)

	// Controllers
	entityControllers := make([]*controllers.EntityController, 0, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		svc := services.NewEntityService(entityRepos[kind.Singular], serviceTimeout)
		entityControllers = append(entityControllers, controllers.NewEntityController(logger, svc))
	}
	eventController := controllers.NewEventController(logger, eventSvc)
	authController := controllers.NewAuthController(logger, userSvc)
	ticketController := controllers.NewTicketController(logger, ticketSvc)

	mux := delivery.NewRouter(logger, tokenVerifier, entityControllers, eventController, authController, ticketController)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received, cleaning up...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "err", err)
	}
	logger.Info("Server stopped")
}
