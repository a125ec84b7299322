package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelwise/api"
	"github.com/Domenick1991/travelwise/config"
	"github.com/Domenick1991/travelwise/internal/bootstrap"
	"github.com/Domenick1991/travelwise/internal/cache"
	"github.com/Domenick1991/travelwise/internal/kafka"
	"github.com/Domenick1991/travelwise/internal/repository"
	"github.com/Domenick1991/travelwise/internal/service/auth"
	"github.com/Domenick1991/travelwise/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.BookingsTTL())
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	bookingService := booking.NewBookingService(
		bookingRepo,
		userRepo,
		authService,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	userHandler := api.NewUserHandler(authService, cfg.IsProduction())
	bookingHandler := api.NewBookingHandler(bookingService, cfg.IsProduction())

	logrus.Infof("starting travelwise server on %s", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, userHandler, bookingHandler); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
