package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quillfeed/quillfeed/internal/blogservice"
	"github.com/quillfeed/quillfeed/internal/common"
	"github.com/quillfeed/quillfeed/internal/engagementservice"
	"github.com/quillfeed/quillfeed/internal/mailservice"
	"github.com/quillfeed/quillfeed/internal/userservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	userService       *userservice.UserService
	blogService       *blogservice.BlogService
	engagementService *engagementservice.EngagementService
	mailService       *mailservice.MailService
	broker            *common.MessageBroker
	metrics           *common.Metrics
	registry          *prometheus.Registry
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	registry := prometheus.NewRegistry()

	// Initialize the services
	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db, broker, cache, cfg.JWTSecret),
		blogService:       blogservice.NewBlogService(db),
		engagementService: engagementservice.NewEngagementService(db),
		mailService:       mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:            broker,
		metrics:           common.NewMetrics(registry),
		registry:          registry,
	}
	defer app.mailService.Close()

	// Initialize the consumer
	go app.mailService.SendWelcomeEmail()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
