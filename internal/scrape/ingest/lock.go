// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hondana/internal/platform/constants"
)

// # Redis Ingestion Lock

// redisLocker implements [Locker] on a shared Redis instance so ingestion
// stays serialized per source URL even across replicas.
type redisLocker struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisLocker constructs the Redis backed ingestion [Locker].
func NewRedisLocker(client *redis.Client, logger *slog.Logger) Locker {
	return &redisLocker{client: client, logger: logger}
}

// lockKey namespaces the source URL into the cache taxonomy.
func lockKey(sourceURL string) string {
	return constants.RedisPrefixIngestLock + sourceURL
}

/*
Acquire takes the ingestion lock via SETNX with a TTL backstop.

Description: The TTL guarantees a crashed ingestion cannot wedge its
source URL forever; the lock simply expires and the next request proceeds.

Returns:
  - bool: true if this caller now holds the lock
  - error: Redis connectivity failures
*/
func (locker *redisLocker) Acquire(context context.Context, sourceURL string) (bool, error) {
	acquired, err := locker.client.SetNX(context, lockKey(sourceURL), "1", constants.IngestLockTTL).Result()
	if err != nil {
		return false, err
	}

	if !acquired {
		locker.logger.Info("ingest_lock_contended", slog.String("source_url", sourceURL))
	}
	return acquired, nil
}

// Release drops the lock early. Failures are logged, not returned; the
// TTL expiry covers them.
func (locker *redisLocker) Release(context context.Context, sourceURL string) {
	if err := locker.client.Del(context, lockKey(sourceURL)).Err(); err != nil {
		locker.logger.Warn("ingest_lock_release_failed",
			slog.String("source_url", sourceURL),
			slog.Any("error", err),
		)
	}
}
