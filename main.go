package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/naseer2426/clova-ocr/internal/api"
	"github.com/naseer2426/clova-ocr/internal/config"
	"github.com/naseer2426/clova-ocr/internal/db"
	"github.com/naseer2426/clova-ocr/internal/metrics"
	"github.com/naseer2426/clova-ocr/internal/ocr"
	"github.com/naseer2426/clova-ocr/internal/ocrservice"
	"github.com/naseer2426/clova-ocr/internal/record"
	"github.com/naseer2426/clova-ocr/internal/telegram"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := initEnv(log); err != nil {
		log.WithError(err).Fatal("failed to load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.AutoMigrate(database); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	service := ocrservice.NewService(
		ocr.NewRequestBuilder(cfg.Clova.Version, cfg.Clova.ImageFormat, cfg.Clova.ImageName, cfg.Clova.RequestIDPrefix),
		ocr.NewClovaOCR(cfg.Clova.APIURL, cfg.Clova.SecretKey, cfg.Clova.Timeout, log),
		record.NewStore(record.NewGormRepository(database), log),
		metrics.New(registry),
		log,
	)

	router := &api.Router{
		OCR:      &api.OCRHandler{Service: service, Log: log},
		Telegram: initTelegramWebhook(cfg, service, log),
		Gatherer: registry,
	}

	log.WithField("addr", cfg.Addr()).Info("starting server")
	if err := router.Setup().Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

func initEnv(log logrus.FieldLogger) error {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		// Only fail if the file exists but could not be read; envs may be provided by the environment
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("could not load .env")
			return err
		}
	}
	return nil
}

func initTelegramWebhook(cfg *config.Config, service *ocrservice.Service, log logrus.FieldLogger) *api.TelegramWebhook {
	if cfg.Telegram.BotToken == "" {
		return nil
	}
	return &api.TelegramWebhook{
		TelegramAPI: telegram.NewTelegramAPI(cfg.Telegram.BotToken),
		OCR:         service,
		Log:         log,
	}
}
