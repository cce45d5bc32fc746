package main

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/thinqor/ats-assistant/internal/api/handler"
	"github.com/thinqor/ats-assistant/internal/core/ports"
	"github.com/thinqor/ats-assistant/internal/core/service"
	"github.com/thinqor/ats-assistant/internal/infrastructure/db/mongo"
	"github.com/thinqor/ats-assistant/internal/infrastructure/db/mysql"
	"github.com/thinqor/ats-assistant/internal/infrastructure/db/redis"
	"github.com/thinqor/ats-assistant/internal/infrastructure/llm/gemini"
	"github.com/thinqor/ats-assistant/internal/infrastructure/queue"
	"github.com/thinqor/ats-assistant/internal/pkg/config"
	"github.com/thinqor/ats-assistant/pkg/logger"
)

// app holds the wired services and the connections that must be closed.
type app struct {
	chat      ports.ChatService
	screening ports.ScreeningService
	health    map[string]handler.Pinger

	db          *sql.DB
	redisClient *goredis.Client
	mongoClient *mongodriver.Client
	audit       *queue.Dispatcher
	log         zerolog.Logger
}

// newApp connects to the configured stores and builds the services. Redis
// and MongoDB are optional. Auditing is only wired when withAudit is set.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, withAudit bool) (*app, error) {
	a := &app{log: log, health: map[string]handler.Pinger{}}

	db, err := mysql.Open(mysql.Config{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Name,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	// An unreachable database reads as "no data" to every caller; the pool
	// reconnects on its own.
	if err := mysql.Ping(ctx, db, 0); err != nil {
		log.Warn().Err(err).Str("host", cfg.DB.Host).Msg("mysql unavailable at startup, answering with empty context")
	}
	a.db = db
	repo := mysql.NewATSRepository(db, cfg.DB.QueryTimeout)
	a.health["mysql"] = repo

	llm, err := gemini.New(ctx, gemini.Config{
		APIKey:        cfg.LLM.APIKey,
		Model:         cfg.LLM.Model,
		ChatTimeout:   cfg.LLM.ChatTimeout,
		ScreenTimeout: cfg.LLM.ScreenTimeout,
	}, logger.Component("gemini"))
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	log.Info().Str("model", llm.Model()).Bool("online", llm.Online()).Msg("llm configured")

	var cache ports.ScreeningCache
	if cfg.Redis.Addr != "" {
		rc, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, screening results will not be memoised")
		} else {
			a.redisClient = rc
			sc := redis.NewScreeningCache(rc)
			cache = sc
			a.health["redis"] = sc
		}
	}

	var sink ports.AuditSink
	if withAudit && cfg.Mongo.URI != "" {
		mc, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongodb unavailable, chat audit disabled")
		} else {
			a.mongoClient = mc
			auditRepo := mongo.NewAuditRepository(mdb)
			if err := auditRepo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to create audit indexes")
			}
			a.audit = queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
			sink = a.audit
			a.health["mongodb"] = auditRepo
		}
	}

	accessor := service.NewAccessor(repo, logger.Component("accessor"))
	a.chat = service.NewChatService(accessor, llm, sink, logger.Component("chat"))
	a.screening = service.NewScreeningService(accessor, llm, cache, thresholds(cfg.Scoring),
		logger.Component("screening"))

	return a, nil
}

// Close drains the audit queue and closes every connection.
func (a *app) Close(ctx context.Context) {
	if a.audit != nil {
		a.audit.Close()
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func thresholds(s config.ScoringConfig) service.ScoringThresholds {
	return service.ScoringThresholds{
		Base:             s.Base,
		OverlapWeight:    s.OverlapWeight,
		ExperienceWeight: s.ExperienceWeight,
		Floor:            s.Floor,
		Ceiling:          s.Ceiling,
		Shortlist:        s.Shortlist,
		Reject:           s.Reject,
		LowOverlapRatio:  s.LowOverlapRatio,
	}
}
