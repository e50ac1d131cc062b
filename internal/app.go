// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "betledger/internal/api"
	"betledger/internal/api/handler"
	"betledger/internal/cache"
	"betledger/internal/config"
	"betledger/internal/events"
	"betledger/internal/repository"
	"betledger/internal/repository/postgres"
	"betledger/internal/service"
	"betledger/internal/util"
	"betledger/pkg/db"
)

// oddsCacheTTL bounds staleness of the public odds listing endpoints.
const oddsCacheTTL = 30 * time.Second

// Application holds all the initialized components of the application.
type Application struct {
	Config   *config.AppConfig
	Logger   *slog.Logger
	DB       *sqlx.DB
	Producer *events.Producer

	// Repositories
	UserRepository    repository.UserRepository
	BalanceRepository repository.BalanceRepository
	EntryRepository   repository.EntryRepository
	TicketRepository  repository.TicketRepository
	EventRepository   repository.EventRepository
	OddsRepository    repository.OddsRepository

	// Services
	BettingService service.BettingService
	WalletService  service.WalletService
	MarketService  service.MarketService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.Migrate(app.DB, app.Config.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	// 4. Optional infrastructure: odds cache and event stream. Both degrade
	// to no-ops when unconfigured.
	var oddsCache *cache.OddsCache
	if app.Config.RedisAddr != "" {
		redisClient, err := cache.ConnectRedis(app.Config.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		oddsCache = cache.New(redisClient, oddsCacheTTL)
		app.Logger.Info("Redis odds cache connected.", "addr", app.Config.RedisAddr)
	}

	app.Producer = events.NewProducer(app.Config.KafkaBrokers)
	if app.Producer != nil {
		app.Logger.Info("Kafka producer initialized.", "brokers", app.Config.KafkaBrokers)
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.BalanceRepository = postgres.NewBalanceRepository(app.DB)
	app.EntryRepository = postgres.NewEntryRepository(app.DB)
	app.TicketRepository = postgres.NewTicketRepository(app.DB)
	app.EventRepository = postgres.NewEventRepository(app.DB)
	app.OddsRepository = postgres.NewOddsRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.BettingService = service.NewBettingService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.BalanceRepository,
		app.EntryRepository,
		app.TicketRepository,
		app.EventRepository,
		app.OddsRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Producer,
		app.Logger,
	)
	app.WalletService = service.NewWalletService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.BalanceRepository,
		app.EntryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.MarketService = service.NewMarketService(
		app.DB,
		app.EventRepository,
		app.OddsRepository,
		oddsCache,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	ticketHandler := handler.NewTicketHandler(app.BettingService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	marketHandler := handler.NewMarketHandler(app.MarketService, app.Logger)
	app.HTTPHandler = router.NewRouter(ticketHandler, walletHandler, marketHandler, []byte(app.Config.JWTSecret), app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			app.Logger.Error("Failed to close Kafka producer", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
