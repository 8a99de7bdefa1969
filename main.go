package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/jemalhussen/template-market-bot/internal/config"
	"github.com/jemalhussen/template-market-bot/internal/handlers"
	"github.com/jemalhussen/template-market-bot/internal/logger"
	"github.com/jemalhussen/template-market-bot/internal/middleware"
	"github.com/jemalhussen/template-market-bot/internal/poller"
	"github.com/jemalhussen/template-market-bot/store"
)

func main() {
	_ = config.LoadEnvFile("config.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogSink)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
	if err != nil {
		zlog.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer pgStore.Close()

	redisAddr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	rdb, err := store.NewRedisClient(redisAddr, cfg.RedisPassword, cfg.RedisDB, "template_market")
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	sessionStore := store.NewRedisSessionStore(rdb, cfg.SessionTTL)

	httpClient := &http.Client{
		Timeout: 10 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		cfg.BotToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
	)
	if err != nil {
		zlog.Fatal("failed to create bot", zap.Error(err))
	}

	startHealthServer(cfg.HealthAddr, zlog, b != nil)

	h := handlers.NewHandlers(pgStore, pgStore, sessionStore, cfg, zlog)

	templatePoller := poller.NewPoller(pgStore, pgStore, b, zlog, poller.Config{
		Interval:   cfg.PollInterval,
		FirstDelay: cfg.PollFirstDelay,
	})
	templatePoller.Start()
	defer templatePoller.Stop()

	middlewares := middleware.NewMessageAnalyzer()
	handlerChain := middlewares.AnalyzeMessageMiddleware(h.MainHandler)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	zlog.Info("bot started")
	b.Start(ctx)
}

// startHealthServer exposes the liveness endpoint: process up and whether
// the transport client was constructed.
func startHealthServer(addr string, zlog *zap.Logger, botReady bool) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"bot":    botReady,
		})
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			zlog.Error("health server stopped", zap.Error(err))
		}
	}()
}
