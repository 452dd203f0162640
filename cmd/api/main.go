package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/salonat-app/salon-api/internal/assistant"
	"github.com/salonat-app/salon-api/internal/cache"
	"github.com/salonat-app/salon-api/internal/config"
	dbpkg "github.com/salonat-app/salon-api/internal/db"
	"github.com/salonat-app/salon-api/internal/jobs"
	"github.com/salonat-app/salon-api/internal/logger"
	"github.com/salonat-app/salon-api/internal/media"
	"github.com/salonat-app/salon-api/internal/routes"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	// Redis backs the second cache tier. The API still runs without it;
	// the cache degrades to memory only.
	var tier2 cache.Tier2
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisCacheDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unavailable, cache runs in memory only", zap.Error(err))
	} else {
		tier2 = cache.NewRedisTier(redisClient)
	}

	layered := cache.New(map[string]cache.NamespaceConfig{
		"ai_responses":  {TTL: time.Hour, MaxEntries: 500},
		"salon_context": {TTL: 10 * time.Minute, MaxEntries: 1000},
	}, tier2)
	layered.StartSweeper(time.Minute)
	defer layered.Stop()

	var generator assistant.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := assistant.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal("gemini init failed", zap.Error(err))
		}
		generator = g
	} else {
		log.Warn("GEMINI_API_KEY empty, chat serves fallback replies only")
		generator = unavailableGenerator{}
	}

	storage := media.NewStorage(cfg)

	sweeper := jobs.NewAbsentSweeper(db, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("absent sweeper failed to start", zap.Error(err))
	}
	defer sweeper.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Cache:     layered,
		Generator: generator,
		Storage:   storage,
	})

	log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// unavailableGenerator keeps the chat endpoint alive when no model is
// configured; the service turns its error into the canned fallback.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", assistant.ErrEmptyCompletion
}
