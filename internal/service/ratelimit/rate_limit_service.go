package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Service is a fixed-window rate limiter keyed by caller identity. It guards
// record submission against abuse; listing and reads are never limited.
type Service interface {
	// Allow increments the counter for key and reports whether the caller is
	// still under limit within the window
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Config configures the rate limiter
type Config struct {
	Enabled  bool
	RedisURL string
	Limit    int
	Window   time.Duration
}

type redisService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewService creates a Redis-backed rate limiter, or a noop one when disabled
func NewService(config Config, logger *logrus.Logger) (Service, error) {
	if !config.Enabled {
		logger.Info("rate limiting disabled")
		return &noopService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"limit":  config.Limit,
		"window": config.Window,
	}).Info("rate limiting service initialized")

	return &redisService{client: client, logger: logger}, nil
}

func (s *redisService) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := incr.Val()
	allowed := count <= int64(limit)

	s.logger.WithFields(logrus.Fields{
		"key":     key,
		"count":   count,
		"limit":   limit,
		"allowed": allowed,
	}).Debug("rate limit check")

	return allowed, nil
}

// noopService allows everything
type noopService struct{}

func (noopService) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
