package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coachcrm/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CacheService fronts Redis for the read paths that tolerate staleness:
// intake form definitions and dashboard stats. Profile completion is never
// cached; it is derived on every read.
type CacheService interface {
	// Form definition caching
	GetForm(ctx context.Context, formID uuid.UUID) (*models.Form, error)
	SetForm(ctx context.Context, form *models.Form, ttl time.Duration) error
	DeleteForm(ctx context.Context, formID uuid.UUID) error

	// Dashboard stats caching
	GetTrainerStats(ctx context.Context, trainerID uuid.UUID) (map[string]interface{}, error)
	SetTrainerStats(ctx context.Context, trainerID uuid.UUID, stats map[string]interface{}, ttl time.Duration) error
	DeleteTrainerStats(ctx context.Context, trainerID uuid.UUID) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetForm(ctx context.Context, formID uuid.UUID) (*models.Form, error) {
	key := fmt.Sprintf("coachcrm:form:%s", formID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var form models.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *redisCacheService) SetForm(ctx context.Context, form *models.Form, ttl time.Duration) error {
	key := fmt.Sprintf("coachcrm:form:%s", form.ID.String())
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteForm(ctx context.Context, formID uuid.UUID) error {
	key := fmt.Sprintf("coachcrm:form:%s", formID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetTrainerStats(ctx context.Context, trainerID uuid.UUID) (map[string]interface{}, error) {
	key := fmt.Sprintf("coachcrm:stats:%s", trainerID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *redisCacheService) SetTrainerStats(ctx context.Context, trainerID uuid.UUID, stats map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("coachcrm:stats:%s", trainerID.String())
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteTrainerStats(ctx context.Context, trainerID uuid.UUID) error {
	key := fmt.Sprintf("coachcrm:stats:%s", trainerID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
