package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/core/service"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/config"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/db/memory"
	mongostore "github.com/enzocoder/portfolio-api/internal/infrastructure/db/mongo"
	redisstore "github.com/enzocoder/portfolio-api/internal/infrastructure/db/redis"
)

// storage holds the adapters selected by DATA_STORE and SESSION_STORE.
type storage struct {
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redis       *goredis.Client

	users    ports.UserRepository
	stacks   ports.StackRepository
	works    ports.WorkRepository
	sessions ports.SessionStore
	dedup    service.ContactDedup
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			if cfg.Session.Store == config.StoreRedis {
				return nil, err
			}
			log.Warn().Err(err).Msg("redis unavailable, contact dedup disabled")
		} else {
			st.redis = rdb
			st.dedup = redisstore.NewContactDedup(rdb, 0)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		}
	}

	switch cfg.DataStore {
	case config.StoreMemory:
		log.Warn().Msg("DATA_STORE=memory, nothing is persisted")
		st.users = memory.NewUserRepository()
		st.stacks = memory.NewStackRepository()
		st.works = memory.NewWorkRepository()
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			st.close(log)
			return nil, err
		}
		st.mongoClient, st.mongoDB = client, db
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		users := mongostore.NewUserRepository(db)
		stacks := mongostore.NewStackRepository(db)
		works := mongostore.NewWorkRepository(db)
		if err := mongostore.EnsureIndexes(ctx, users, stacks, works); err != nil {
			st.close(log)
			return nil, err
		}
		st.users, st.stacks, st.works = users, stacks, works
	}

	switch cfg.Session.Store {
	case config.StoreRedis:
		st.sessions = redisstore.NewSessionStore(st.redis)
	case config.StoreMongo:
		sessions := mongostore.NewSessionStore(st.mongoDB)
		if err := sessions.EnsureIndexes(ctx); err != nil {
			st.close(log)
			return nil, fmt.Errorf("session indexes: %w", err)
		}
		st.sessions = sessions
	default:
		sessions := memory.NewSessionStore()
		go sessions.Run(ctx, 0)
		st.sessions = sessions
	}

	return st, nil
}

func (st *storage) close(log zerolog.Logger) {
	if st.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}
	if st.redis != nil {
		if err := st.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}
}
