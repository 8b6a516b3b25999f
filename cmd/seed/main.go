// Command seed creates the first admin account from the ADMIN_* variables.
// Running it again is a no-op once the account exists.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/core/service"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/config"
	mongostore "github.com/enzocoder/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/enzocoder/portfolio-api/pkg/logger"
)

const seedTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "portfolio-seed"})

	if !cfg.HasAdmin() {
		log.Fatal().Msg("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	if cfg.DataStore != config.StoreMongo {
		log.Fatal().Str("data_store", cfg.DataStore).Msg("seeding needs DATA_STORE=mongo")
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()

	repo := mongostore.NewUserRepository(db)
	if err := mongostore.EnsureIndexes(ctx, repo); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	users := service.NewUserService(repo, log)
	user, created, err := users.Bootstrap(ctx, ports.CreateUserInput{
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		Username:  cfg.Admin.Username,
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	if !created {
		log.Info().Str("username", user.Username).Msg("admin already exists, nothing to do")
		return
	}
	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("admin created")
}
