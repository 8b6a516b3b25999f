package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/enzocoder/portfolio-api/docs" // swagger docs

	"github.com/enzocoder/portfolio-api/internal/api"
	"github.com/enzocoder/portfolio-api/internal/api/cookie"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/core/service"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/config"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/http/handlers"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/mail"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/queue"
	"github.com/enzocoder/portfolio-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Portfolio API
// @version         1.0
// @description     Backend of a personal portfolio: public stack and work listings, a contact relay and a session-protected dashboard.
// @host            localhost:5000
// @BasePath        /api
// @schemes         http https
func main() {
	// A missing .env is fine; the process environment wins either way.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portfolio-api",
	})

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise storage")
	}
	defer st.close(log)

	// --- Services ---
	users := service.NewUserService(st.users, log)
	sessions := service.NewSessionManager(st.sessions, cfg.Session.TTL, log)
	authService := service.NewAuthService(users, sessions, log)
	stackService := service.NewStackService(st.stacks, st.users, log)
	workService := service.NewWorkService(st.works, st.stacks, st.users, log)

	if cfg.DataStore == config.StoreMemory {
		seedAdmin(ctx, cfg, users, log)
	}

	// --- Contact relay ---
	notifier, err := newNotifier(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mail")
	}
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, notifier, log)
	dispatcher.Start(ctx)
	contactService := service.NewContactService(dispatcher, st.dedup, cfg.Mail.Timeout, log)

	// --- HTTP ---
	e := api.NewRouter(api.Options{
		Logger:         log,
		Debug:          !cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins(),
		BodyLimit:      cfg.BodyLimit,
		Auth:           authService,
		Users:          users,
		Stacks:         stackService,
		Works:          workService,
		Contact:        contactService,
		Jar:            cookie.NewJar(cfg.Session.Cookie, sessionSecret(cfg, log), cfg.Session.TTL, cfg.IsProduction()),
		Health:         handlers.NewHealthDependenciesHandler(st.mongoDB, st.redis),
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("data_store", cfg.DataStore).
			Str("session_store", cfg.Session.Store).
			Bool("mail", cfg.MailEnabled()).
			Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	cancel()

	log.Info().Msg("server exited")
}

// sessionSecret returns SESSION_SECRET. Outside production an empty secret is
// replaced by a random one, which invalidates cookies on every restart.
func sessionSecret(cfg *config.Config, log zerolog.Logger) string {
	if cfg.Session.Secret != "" {
		return cfg.Session.Secret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("failed to generate session secret")
	}
	log.Warn().Msg("SESSION_SECRET is not set, using a random secret for this process")
	return hex.EncodeToString(buf)
}

func newNotifier(cfg *config.Config, log zerolog.Logger) (ports.Notifier, error) {
	if !cfg.MailEnabled() {
		log.Warn().Msg("EMAIL_USER/EMAIL_PASS not set, contact messages will only be logged")
		return mail.NewLogNotifier(log), nil
	}
	smtp, err := mail.NewSMTPNotifier(mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Password,
		To:       cfg.Mail.To,
		Timeout:  cfg.Mail.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return smtp, nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, users *service.UserService, log zerolog.Logger) {
	if !cfg.HasAdmin() {
		log.Warn().Msg("DATA_STORE=memory without ADMIN_* variables, nobody can sign in")
		return
	}
	user, created, err := users.Bootstrap(ctx, ports.CreateUserInput{
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		Username:  cfg.Admin.Username,
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}
	log.Info().Str("username", user.Username).Bool("created", created).Msg("admin account ready")
}
