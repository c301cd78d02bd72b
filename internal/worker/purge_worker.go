package worker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/config"
	"github.com/studyscope/studyscope-backend/internal/storage"
)

// PurgeQueue pushes archived spreadsheet keys onto purge_stored_files_queue.
type PurgeQueue struct {
	rdb *redis.Client
}

// NewPurgeQueue creates a new PurgeQueue.
func NewPurgeQueue(rdb *redis.Client) *PurgeQueue {
	return &PurgeQueue{rdb: rdb}
}

// Enqueue schedules key for deletion from storage.
func (q *PurgeQueue) Enqueue(ctx context.Context, key string) error {
	return q.rdb.RPush(ctx, config.WorkerKey.PurgeStoredFilesQueue, key).Err()
}

// PurgeWorker consumes purge_stored_files_queue and deletes the archived files.
type PurgeWorker struct {
	rdb   *redis.Client
	store storage.Storage
	log   zerolog.Logger
}

// NewPurgeWorker creates a new PurgeWorker.
func NewPurgeWorker(rdb *redis.Client, store storage.Storage, log zerolog.Logger) *PurgeWorker {
	return &PurgeWorker{
		rdb:   rdb,
		store: store,
		log:   log.With().Str("component", "purge_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *PurgeWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *PurgeWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PurgeStoredFilesQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	if err := w.purge(ctx, result[1]); err != nil {
		w.log.Error().Err(err).Str("key", result[1]).Msg("Purge error, retrying in 5s")
		_ = w.requeue(ctx, result[1])
		time.Sleep(5 * time.Second)
	}
}

// purge deletes one archived file. Keys storage refuses are dropped, not retried.
func (w *PurgeWorker) purge(ctx context.Context, key string) error {
	err := w.store.Delete(ctx, key)
	if errors.Is(err, storage.ErrInvalidKey) {
		w.log.Warn().Str("key", key).Msg("Dropping invalid purge key")
		return nil
	}
	if err != nil {
		return err
	}
	w.log.Debug().Str("key", key).Msg("Purged stored file")
	return nil
}

// requeue pushes key back for a later retry. It survives cancellation of ctx
// so a shutdown does not lose the key; a failed push is logged with the key.
func (w *PurgeWorker) requeue(ctx context.Context, key string) error {
	err := w.rdb.RPush(context.WithoutCancel(ctx), config.WorkerKey.PurgeStoredFilesQueue, key).Err()
	if err != nil {
		w.log.Error().Err(err).Str("key", key).Msg("Failed to requeue purge key, file left in storage")
	}
	return err
}

// drain processes all remaining items in the queue before shutdown.
func (w *PurgeWorker) drain(ctx context.Context) {
	drained := 0
	for {
		key, err := w.rdb.LPop(ctx, config.WorkerKey.PurgeStoredFilesQueue).Result()
		if err != nil {
			break
		}

		if err := w.purge(ctx, key); err != nil {
			w.log.Error().Err(err).Str("key", key).Msg("Drain purge error")
			_ = w.requeue(ctx, key)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
