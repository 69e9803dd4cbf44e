package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abokixyz/ramp-bot/internal/engine"
	"github.com/abokixyz/ramp-bot/internal/facades"
	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/middlewares"
	"github.com/abokixyz/ramp-bot/internal/oracle"
	"github.com/abokixyz/ramp-bot/internal/rates"
	"github.com/abokixyz/ramp-bot/internal/repositories"
	"github.com/abokixyz/ramp-bot/internal/services"
	"github.com/abokixyz/ramp-bot/internal/transport/telegram"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	appHost  string
	appPort  string
	logLevel string

	pgHost         string
	pgPort         int
	pgUser         string
	pgPassword     string
	pgDB           string
	pgMaxOpenConns int
	pgMaxIdleConns int

	redisHost     string
	redisPort     int
	redisDB       int
	redisPassword string

	kafkaBroker string
	kafkaTopic  string

	botToken string

	rampBaseURL     string
	rampTimeout     time.Duration
	sessionTTL      time.Duration
	rateCacheTTL    time.Duration
	settleDelay     time.Duration
	shutdownTimeout time.Duration
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, ramp API, and bot configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key string, defaultValue int) (int, error) {
		return strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", 5432); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", 16); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", 8); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", 6379); err != nil {
		return
	}
	if cfg.redisDB, err = getInt("REDIS_DB", 0); err != nil {
		return
	}

	// Kafka config; an empty broker disables publishing.
	cfg.kafkaBroker = getEnv("KAFKA_BROKER", "")
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "ramp-transactions")

	// Telegram config
	cfg.botToken = getEnv("TELEGRAM_BOT_TOKEN", "")

	// Ramp API config
	cfg.rampBaseURL = getEnv("RAMP_API_URL", "http://localhost:3000")
	rampTimeout, err := getInt("RAMP_API_TIMEOUT_SECOND", 10)
	if err != nil {
		return
	}
	cfg.rampTimeout = time.Duration(rampTimeout) * time.Second

	sessionTTL, err := getInt("SESSION_TTL_SECOND", 900)
	if err != nil {
		return
	}
	cfg.sessionTTL = time.Duration(sessionTTL) * time.Second

	rateCacheTTL, err := getInt("RATE_CACHE_TTL_SECOND", 60)
	if err != nil {
		return
	}
	cfg.rateCacheTTL = time.Duration(rateCacheTTL) * time.Second

	settleDelay, err := getInt("SETTLE_DELAY_SECOND", 2)
	if err != nil {
		return
	}
	cfg.settleDelay = time.Duration(settleDelay) * time.Second

	cfg.shutdownTimeout = 10 * time.Second
	return
}

// run initializes the logger, database, Redis, Kafka, Telegram client,
// and operational HTTP server, wires the workflow engine, and handles
// graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for the transaction stream
	var kafkaWriter services.KafkaWriter
	if cfg.kafkaBroker != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.kafkaBroker),
			Topic:    cfg.kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	} else {
		logger.Log.Warn("KAFKA_BROKER not set, transaction publishing disabled")
	}

	// Telegram client
	api, err := tgbotapi.NewBotAPI(cfg.botToken)
	if err != nil {
		logger.Log.Errorw("Telegram connection error", "error", err)
		return err
	}
	logger.Log.Infof("Authorized on Telegram account %s", api.Self.UserName)

	// Ramp provider facade
	aboki := facades.NewAbokiFacade(cfg.rampBaseURL, cfg.rampTimeout)

	// Repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	txWriteRepo := repositories.NewTransactionWriteRepository(db)
	txReadRepo := repositories.NewTransactionReadRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.sessionTTL)
	rateCache := rates.NewCacheRepository(rdb, cfg.rateCacheTTL)

	// Services
	balanceOracle := oracle.NewMockOracle(rand.New(rand.NewSource(time.Now().UnixNano())))
	walletService := services.NewWalletService(userReadRepo, userWriteRepo, aboki, balanceOracle)
	ledgerService := services.NewLedgerService(txWriteRepo, kafkaWriter)
	historyService := services.NewHistoryService(txReadRepo)
	quoteProvider := rates.NewCachedProvider(rates.NewProvider(nil), rateCache)

	// Workflow engine and Telegram transport
	workflow := engine.New(sessionRepo, walletService, quoteProvider, balanceOracle, aboki, ledgerService, cfg.settleDelay)
	bot := telegram.NewBot(api, workflow, walletService, historyService)

	// Operational HTTP server
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := rdb.Ping(req.Context()).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Info("Telegram bot consuming updates")
		if err := bot.Run(ctxShutdown); err != nil && err != context.Canceled {
			errChan <- fmt.Errorf("Telegram bot failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("Stopped gracefully")
	return nil
}
