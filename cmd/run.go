package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"roulette/bot"
	"roulette/config"
	"roulette/database"
	"roulette/engine"
	"roulette/events"
	"roulette/httpapi"
	"roulette/infrastructure"
	"roulette/observability"
	"roulette/repository"
	"roulette/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	if err := cfg.ConfigureLogging(); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	log.Info("Starting roulette...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	events.SubscribeAuditLog(eventBus)

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics.Subscribe(eventBus)

	// Initialize event streaming
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := natsClient.Connect(connectCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper()).Subscribe(eventBus)
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize the outcome engine
	eng, err := engine.New(cfg.Probability, engine.NewMathRandSource())
	if err != nil {
		return fmt.Errorf("invalid probability config: %w", err)
	}
	log.WithFields(log.Fields{
		"initial_win":     eng.Config().Initial.Win,
		"house_win":       eng.Config().House.Win,
		"threshold":       eng.Config().Threshold,
		"reset_threshold": eng.Config().ResetThreshold,
	}).Info("Outcome engine ready")

	// Initialize services
	gameStateStore := service.NewGameStateStore(uowFactory)
	rouletteService := service.NewRouletteService(uowFactory, eng, gameStateStore, cfg)
	ledgerService := service.NewLedgerService(uowFactory, cfg)
	historyService := service.NewHistoryService(uowFactory, cfg)
	log.Info("Services initialized successfully")

	// Initialize Discord bot
	var discordBot *bot.Bot
	if cfg.DiscordToken != "" {
		log.Info("Initializing Discord bot...")
		discordBot, err = bot.New(bot.Config{
			Token:        cfg.DiscordToken,
			GuildID:      cfg.GuildID,
			SpinDuration: cfg.SpinDuration,
		}, rouletteService, ledgerService, historyService, eventBus)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		log.Info("Discord bot initialized successfully")
	}

	// Initialize HTTP API
	var server *http.Server
	serverErr := make(chan error, 1)
	if cfg.HTTPAddr != "" {
		server = httpapi.NewServer(cfg.HTTPAddr, httpapi.NewHandler(httpapi.HandlerDeps{
			Roulette: rouletteService,
			Ledger:   ledgerService,
			History:  historyService,
		}))
		go func() {
			log.Infof("HTTP API listening on %s", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	// Wait for context cancellation
	log.Infof("Roulette is running in %s mode...", cfg.Environment)
	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		runErr = fmt.Errorf("HTTP server failed: %w", err)
	}

	// Cleanup resources
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down HTTP server: %v", err)
		}
	}

	if discordBot != nil {
		if err := discordBot.Close(); err != nil {
			log.Errorf("Error closing Discord bot: %v", err)
		}
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.Errorf("Error closing NATS connection: %v", err)
		}
	}

	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down metrics provider: %v", err)
	}

	log.Info("Shutdown completed")
	return runErr
}
