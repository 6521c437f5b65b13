package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/ai"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/config"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/db"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/frontdesk"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/httpapi"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/httpapi/handlers"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/session"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/store/rabbitmq"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/store/redisstore"
	"github.com/IBRAHIM-rgf/Ai-frontdesk-dem/internal/transcript"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gdb.AutoMigrate(&transcript.Message{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	transcripts := transcript.NewRepo(gdb)

	// Provider registry (route by AI_PROVIDER)
	reg := ai.NewRegistry()
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})
	reg.Register("openrouter", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenRouterModel
		}
		return ai.NewOpenRouterProvider(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, m,
			cfg.OpenRouterSiteURL, cfg.OpenRouterAppName), nil
	})

	provider, err := reg.Get(context.Background(), cfg.AIProvider, "")
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}

	var snaps session.Snapshots
	if cfg.RedisAddr != "" {
		rs, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTimeout)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rs.Close()
		snaps = rs
		log.Printf("session snapshots enabled addr=%s", cfg.RedisAddr)
	}

	var notifier frontdesk.Notifier
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Fatalf("rabbit: %v", err)
		}
		defer pub.Close()
		notifier = pub
		log.Printf("ticket events enabled queue=%s", cfg.RabbitQueue)
	}

	turns := frontdesk.NewService(provider, notifier, transcripts)

	sessions := session.NewManager(cfg.SessionTimeout, snaps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.StartCleanup(ctx, time.Minute)

	h := handlers.NewHandler(cfg, sessions, turns)
	r := httpapi.NewRouter(h, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s provider=%s", cfg.HTTPPort, cfg.AIProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
