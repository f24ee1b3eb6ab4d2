package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-solo/internal/config"
	"github.com/iamasit07/connect4-solo/internal/logger"
	"github.com/iamasit07/connect4-solo/internal/repository/postgres"
	"github.com/iamasit07/connect4-solo/internal/repository/redis"
	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"github.com/iamasit07/connect4-solo/internal/service/cleanup"
	"github.com/iamasit07/connect4-solo/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-solo/internal/transport/http"
	"github.com/iamasit07/connect4-solo/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-solo/internal/transport/websocket"
	"github.com/iamasit07/connect4-solo/pkg/auth"
)

const defaultTicketSecret = "change-this-ticket-secret"

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logr.Sync()

	if envErr != nil {
		logr.Info("no .env file found, using environment only")
	}
	for _, warning := range cfg.Warnings {
		logr.Warn(warning)
	}
	if cfg.TicketSecret == defaultTicketSecret {
		logr.Warn("TICKET_SECRET is not set, resume tickets use the default secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Results ledger (optional)
	var (
		gameRepo game.GameRepository
		history  transportHttp.HistoryStore
		ledger   transportHttp.ScoreSource
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime())
		if err != nil {
			logr.Fatalw("database unreachable", "error", err)
		}
		defer db.Close()

		logr.Info("running database migrations")
		if err := postgres.RunMigrations(db); err != nil {
			logr.Fatalw("migration failed", "error", err)
		}

		repo := postgres.NewGameRepo(db)
		gameRepo, history, ledger = repo, repo, repo
	} else {
		logr.Warn("DATABASE_URL is not set, finished games will not be recorded")
	}

	// 2. Scoreboard cache (optional)
	var (
		scores game.ScoreRecorder
		cache  transportHttp.ScoreSource
	)
	if cfg.RedisURL != "" {
		if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, logr); client != nil {
			defer client.Close()
			scoreboard := redis.NewScoreboard(client)
			scores, cache = scoreboard, scoreboard
		}
	}

	// 3. Game services
	tickets := auth.NewTickets(cfg.TicketSecret, cfg.TicketTTL())
	sessionManager := game.NewSessionManager(gameRepo, scores, tickets, game.Settings{
		HardDepth:         cfg.SearchDepth,
		DefaultDifficulty: bot.ParseDifficulty(cfg.BotDifficulty, bot.DifficultyHard),
		BotDelay:          cfg.BotMoveDelay(),
		FinishedTTL:       cfg.FinishedSessionTTL(),
		IdleTimeout:       cfg.SessionIdleTimeout(),
	}, logr)
	connManager := websocket.NewConnectionManager()

	cleanup.NewWorker(sessionManager, connManager, cfg.CleanupInterval(), logr).Start(ctx)

	// 4. HTTP handlers
	wsHandler := websocket.NewHandler(connManager, sessionManager, tickets, logr)
	historyHandler := transportHttp.NewHistoryHandler(history, logr)
	scoreboardHandler := transportHttp.NewScoreboardHandler(cache, ledger, logr)
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	healthHandler := transportHttp.NewHealthHandler(sessionManager, connManager)

	if cfg.LogMode != "development" && cfg.LogMode != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, logr.Named("cors")))

	router.GET("/health", healthHandler.Health)
	router.GET("/api/scoreboard", scoreboardHandler.GetScoreboard)
	router.GET("/api/history", historyHandler.GetHistory)
	router.GET("/api/history/:id", historyHandler.GetGameDetails)
	router.GET("/api/games/live", watchHandler.GetLiveGames)
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logr.Infow("server starting", "port", cfg.Port, "search_depth", cfg.SearchDepth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Errorw("server forced to shutdown", "error", err)
	}
	sessionManager.Wait()

	logr.Info("server exited gracefully")
}
