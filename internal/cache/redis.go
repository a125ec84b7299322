package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/travelwise/config"
	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	bookingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookingsTTL: bookingsTTL,
	}
}

func (c *RedisCache) GetBookings(ctx context.Context) ([]domain.Booking, error) {
	data, err := c.client.Get(ctx, bookingsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetBookings(ctx context.Context, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingsKey(), payload, c.bookingsTTL).Err()
}

func (c *RedisCache) InvalidateBookings(ctx context.Context) error {
	return c.client.Del(ctx, bookingsKey()).Err()
}

func bookingsKey() string {
	return "cache:bookings"
}
