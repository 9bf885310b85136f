// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

const defaultPrefix = "decide:"

// Repository implements store.Repository on Redis.
type Repository struct {
	client *redis.Client
	prefix string
}

// New connects to redisURL and checks the connection.
func New(ctx context.Context, redisURL string) (*Repository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient creates a repository from an existing client.
func NewWithClient(client *redis.Client) *Repository {
	return &Repository{client: client, prefix: defaultPrefix}
}

func (r *Repository) key(id string) string {
	return r.prefix + "decision:" + id
}

func (r *Repository) indexKey(status models.Status) string {
	if status == "" {
		return r.prefix + "decisions"
	}
	return r.prefix + "decisions:" + string(status)
}

// Insert stores d and adds it to the index sets in one transaction, so a
// stored decision is always listed.
func (r *Repository) Insert(ctx context.Context, d models.Decision) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	key := r.key(d.ID)
	exists := fmt.Errorf("decision %s already exists", d.ID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("lookup decision: %w", err)
		}
		if n > 0 {
			return exists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			pipe.SAdd(ctx, r.indexKey(""), d.ID)
			pipe.SAdd(ctx, r.indexKey(d.Status), d.ID)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return exists
	}
	if err != nil && err != exists {
		return fmt.Errorf("save decision: %w", err)
	}
	return err
}

func (r *Repository) Get(ctx context.Context, id string) (models.Decision, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return models.Decision{}, fmt.Errorf("%w: decision %s", decision.ErrNotFound, id)
	}
	if err != nil {
		return models.Decision{}, fmt.Errorf("lookup decision: %w", err)
	}
	return decode(raw)
}

func (r *Repository) List(ctx context.Context, status models.Status) ([]models.Decision, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey(status)).Result()
	if err != nil {
		return nil, fmt.Errorf("list decision ids: %w", err)
	}
	decisions := []models.Decision{}
	if len(ids) == 0 {
		return decisions, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load decisions: %w", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Indexed but deleted out from under us.
			continue
		}
		d, err := decode(raw)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

// Update stores d if the stored version still equals expectedVersion. The
// check and the write run under WATCH, so a concurrent writer makes the
// transaction fail with store.ErrConflict.
func (r *Repository) Update(ctx context.Context, d models.Decision, expectedVersion int64) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	key := r.key(d.ID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return fmt.Errorf("%w: decision %s", decision.ErrNotFound, d.ID)
		}
		if err != nil {
			return fmt.Errorf("lookup decision: %w", err)
		}
		current, err := decode(raw)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return fmt.Errorf("%w: decision %s at version %d, expected %d",
				store.ErrConflict, d.ID, current.Version, expectedVersion)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			if current.Status != d.Status {
				pipe.SRem(ctx, r.indexKey(current.Status), d.ID)
				pipe.SAdd(ctx, r.indexKey(d.Status), d.ID)
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: decision %s", store.ErrConflict, d.ID)
	}
	if err != nil {
		return fmt.Errorf("update decision: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Repository) Close() error {
	return r.client.Close()
}

func decode(raw string) (models.Decision, error) {
	var d models.Decision
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return models.Decision{}, fmt.Errorf("unmarshal decision: %w", err)
	}
	if d.Ballots == nil {
		d.Ballots = map[string]string{}
	}
	return d, nil
}
