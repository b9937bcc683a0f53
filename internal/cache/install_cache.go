package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"salesboard/internal/models"
)

// InstallCache — read-through кэш установок поверх Postgres.
// Источник истины всегда БД: кэш best-effort, любая ошибка только логируется.
type InstallCache struct {
	rdb *redis.Client
	ttl time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewInstallCache(opts Options) (*InstallCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &InstallCache{rdb: rdb, ttl: ttl}, nil
}

func key(portalID int64) string {
	return fmt.Sprintf("install:%d", portalID)
}

// В models.Install токены помечены json:"-", поэтому в redis кладём
// отдельную структуру со всеми полями.
type cachedInstall struct {
	ID           int       `json:"id"`
	PortalID     int64     `json:"portal_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Get — nil при промахе, при отключённом кэше и при любой ошибке.
func (c *InstallCache) Get(ctx context.Context, portalID int64) *models.Install {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, key(portalID)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.Printf("[cache][get] portal_id=%d: %v", portalID, err)
		return nil
	}
	var rec cachedInstall
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Printf("[cache][get] portal_id=%d: повреждённая запись, сбрасываем: %v", portalID, err)
		_ = c.rdb.Del(ctx, key(portalID)).Err()
		return nil
	}
	return &models.Install{
		ID:           rec.ID,
		PortalID:     rec.PortalID,
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    rec.ExpiresAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func (c *InstallCache) Set(ctx context.Context, install *models.Install) {
	if c == nil || c.rdb == nil || install == nil {
		return
	}
	raw, err := json.Marshal(cachedInstall{
		ID:           install.ID,
		PortalID:     install.PortalID,
		AccessToken:  install.AccessToken,
		RefreshToken: install.RefreshToken,
		ExpiresAt:    install.ExpiresAt,
		CreatedAt:    install.CreatedAt,
		UpdatedAt:    install.UpdatedAt,
	})
	if err != nil {
		log.Printf("[cache][set] portal_id=%d: marshal: %v", install.PortalID, err)
		return
	}
	if err := c.rdb.Set(ctx, key(install.PortalID), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache][set] portal_id=%d: %v", install.PortalID, err)
	}
}

// Invalidate вызывается на каждую запись в БД, до повторного прогрева.
func (c *InstallCache) Invalidate(ctx context.Context, portalID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(portalID)).Err(); err != nil {
		log.Printf("[cache][invalidate] portal_id=%d: %v", portalID, err)
	}
}

func (c *InstallCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
