package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	ventasbot "github.com/luiscast/ventasbot"
	"github.com/luiscast/ventasbot/internal/config"
	"github.com/luiscast/ventasbot/internal/dispatcher"
	"github.com/luiscast/ventasbot/internal/handler"
	"github.com/luiscast/ventasbot/internal/middleware"
	"github.com/luiscast/ventasbot/internal/repository"
	"github.com/luiscast/ventasbot/internal/service"
	"github.com/luiscast/ventasbot/internal/session"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(ventasbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	interactions := repository.NewInteractions(pool)
	sessions := session.NewStore(config.MaxSessionTurns)
	completer := service.NewGroqCompleter(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.ModelID)
	responder := service.NewResponder(completer)
	agent := service.NewSQLAgent(completer, pool)
	disp := dispatcher.New(interactions, sessions, responder, agent)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:        b,
		Cfg:        cfg,
		Dispatcher: disp,
		Sessions:   sessions,
		Data:       interactions,
		Agent:      agent,
	})

	// Register command handlers
	h.Register()

	// Register default text handler for free-form messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Start bot
	slog.Info("starting bot", "model", cfg.ModelID)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
