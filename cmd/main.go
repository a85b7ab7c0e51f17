package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobboard/chat/internal/api/handler"
	"jobboard/chat/internal/auth"
	"jobboard/chat/internal/chathub"
	"jobboard/chat/internal/config"
	"jobboard/chat/internal/conversation"
	"jobboard/chat/internal/directory"
	"jobboard/chat/internal/localization"
	"jobboard/chat/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func setupDependencies(ctx context.Context, cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	if cfg.AutoMigrate {
		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := storage.OpenRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}
	if rdb == nil {
		log.Println("WARNING: REDIS_ADDR not set, realtime delivery is limited to this instance")
	}

	log.Println("Database and Redis connections established.")
	return db, rdb
}

// greeting renders the seed message for application rooms from the locale files.
func greeting(cfg *config.Config) conversation.Greeting {
	loc, err := localization.NewLocalizer(cfg.LocalesDir, "en")
	if err != nil {
		log.Printf("WARNING: translations unavailable, using built-in greeting: %v", err)
		return nil
	}
	return loc.ApplicationGreeting(cfg.DefaultLanguage)
}

func main() {
	log.Println("Starting chat service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Dependencies
	db, rdb := setupDependencies(ctx, cfg)
	store := storage.NewStorageService(db, rdb)
	dir := directory.NewGormDirectory(db)

	// 2. Realtime gateway
	var (
		guard auth.ReplayGuard = auth.NewMemoryReplayGuard()
		bus   chathub.Broadcaster
	)
	if rdb != nil {
		guard = auth.NewRedisReplayGuard(rdb)
		bus = chathub.NewRedisBroadcaster(rdb, config.MessageBusChannel)
	}
	hub := chathub.NewGateway(
		chathub.NewRegistry(),
		store,
		auth.NewConnectionTokens(cfg.WSTokenSecret, cfg.WSTokenTTL, guard),
		bus,
	)

	// 3. Conversation service
	svc := conversation.NewService(store, store, dir, dir, hub, greeting(cfg))

	// 4. Gin routing
	r := gin.Default()
	handler.NewHandler(svc, hub, auth.NewAccessTokens(cfg.AccessTokenSecret), store, cfg).Register(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error {
		log.Printf("INFO: listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Chat service stopped.")
}
