package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiplabel/cmd"
	httpin "shiplabel/internal/adapters/in/http"
	"shiplabel/internal/jobs"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	if err := runMigrations(dsn, logger); err != nil {
		logger.Error("migrations failed", slog.Any("error", err))
		os.Exit(1)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := app.EventPublisher().Close(); err != nil {
			logger.Warn("failed to close event publisher", slog.Any("error", err))
		}
	}()

	jobManager := jobs.NewJobManager(app.CreateCleanupExpiredDraftsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", slog.Any("error", err))
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		StripeAPIKey:        goDotEnvVariable("STRIPE_API_KEY"),
		EasyPostBaseURL:     goDotEnvVariable("EASYPOST_BASE_URL"),
		EasyPostAPIKey:      goDotEnvVariable("EASYPOST_API_KEY"),
		AddressAIBaseURL:    goDotEnvVariable("ADDRESS_AI_BASE_URL"),
		KafkaHost:           goDotEnvVariable("KAFKA_HOST"),
		KafkaShipmentsTopic: goDotEnvVariable("KAFKA_SHIPMENTS_TOPIC"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func runMigrations(dsn string, logger *slog.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.SessionStore(),
		app.CreateStartCheckoutCommandHandler(),
		app.CreateSubmitAddressesCommandHandler(),
		app.CreateSubmitPackageCommandHandler(),
		app.CreateFetchRatesCommandHandler(),
		app.CreateSelectRateCommandHandler(),
		app.CreateBeginPaymentCommandHandler(),
		app.CreateConfirmPaymentCommandHandler(),
		app.CreateResumeCheckoutCommandHandler(),
		app.CreateGoBackCommandHandler(),
		app.CreateVoidShipmentCommandHandler(),
		app.CreateSaveAddressCommandHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetShipmentsForBuyerQueryHandler(),
		app.CreateGetSavedAddressesQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped", slog.Any("error", err))
		}
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	<-signalCh
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("error", err))
	}
}
