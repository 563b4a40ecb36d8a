package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fieldsync/cmd"
	"fieldsync/internal/adapters/out/googlecalendar"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	loadDotEnv()
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rules, err := cmd.LoadRules(configs.RulesFile)
	if err != nil {
		log.Fatalf("Error loading rules: %v", err)
	}

	gormDB := mustConnectDB(configs)
	if err = cmd.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	calendars := googlecalendar.NewClient(configs.Location,
		option.WithCredentialsFile(configs.GoogleCredentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)

	app, err := cmd.NewCompositionRoot(configs, rules, gormDB, calendars, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, jobManager, configs.HTTPPort)
}

func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func getConfigs() cmd.Config {
	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "UTC"))
	if err != nil {
		log.Fatalf("Invalid TIMEZONE: %v", err)
	}

	config := cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                envOrDefault("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		RulesFile:             envOrDefault("RULES_FILE", "rules.yaml"),
		Location:              loc,
		ReconcileAt:           mustTimeOfDay("RECONCILE_AT", envOrDefault("RECONCILE_AT", "02:00")),
		ScanDelay:             mustDuration("SCAN_DELAY", envOrDefault("SCAN_DELAY", "500ms")),
		MaxRangeDays:          mustInt("MAX_RANGE_DAYS", envOrDefault("MAX_RANGE_DAYS", "31")),
	}

	if raw := os.Getenv("COLUMN_REPAIR_AT"); raw != "" {
		at := mustTimeOfDay("COLUMN_REPAIR_AT", raw)
		config.ColumnRepairAt = &at
	}

	return config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustTimeOfDay(key, raw string) kernel.TimeOfDay {
	at, err := kernel.NormalizeTimeOfDay(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return at
}

func mustDuration(key, raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return d
}

func mustInt(key, raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func startWebServer(app cmd.CompositionRoot, jobManager *jobs.JobManager, port string) {
	e := echo.New()
	e.HideBanner = true
	app.CreateHTTPServer(jobManager).Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
