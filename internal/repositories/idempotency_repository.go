package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// pendingMarker occupies a reserved key until the checkout either completes
// (replaced by the order ID) or releases it.
const pendingMarker = "pending"

// IdempotencyRepository stores checkout idempotency keys in redis with a
// TTL. A retried checkout with the same key returns the original order
// instead of creating a duplicate.
type IdempotencyRepository interface {
	// Lookup returns the order ID recorded for the key, if any.
	Lookup(ctx context.Context, userID uuid.UUID, key string) (uuid.UUID, bool, error)

	// Reserve claims the key for an in-flight checkout. Returns false when
	// another attempt already holds it.
	Reserve(ctx context.Context, userID uuid.UUID, key string) (bool, error)

	// Complete records the created order against the key.
	Complete(ctx context.Context, userID uuid.UUID, key string, orderID uuid.UUID) error

	// Release frees the key after a failed checkout so the client can retry.
	Release(ctx context.Context, userID uuid.UUID, key string) error
}

type idempotencyRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyRepo(client *redis.Client, ttl time.Duration) IdempotencyRepository {
	return &idempotencyRepository{client: client, ttl: ttl}
}

func idempotencyKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("checkout:idem:%s:%s", userID, key)
}

func (r *idempotencyRepository) Lookup(ctx context.Context, userID uuid.UUID, key string) (uuid.UUID, bool, error) {
	value, err := r.client.Get(ctx, idempotencyKey(userID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	if value == pendingMarker {
		return uuid.Nil, false, nil
	}

	orderID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt idempotency record: %w", err)
	}

	return orderID, true, nil
}

func (r *idempotencyRepository) Reserve(ctx context.Context, userID uuid.UUID, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, idempotencyKey(userID, key), pendingMarker, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}

	return ok, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, userID uuid.UUID, key string, orderID uuid.UUID) error {
	err := r.client.Set(ctx, idempotencyKey(userID, key), orderID.String(), r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to record idempotency result: %w", err)
	}

	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, userID uuid.UUID, key string) error {
	err := r.client.Del(ctx, idempotencyKey(userID, key)).Err()
	if err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}

	return nil
}
