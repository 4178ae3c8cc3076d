package job

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"heritage-archive-api/internal/repository"
)

// viewCountKeyPrefix must match the prefix the article service increments
const viewCountKeyPrefix = "article:views:"

// flushTimeout bounds a single flush run
const flushTimeout = 30 * time.Second

// ViewCountFlushJob periodically folds the per-article view counters kept in
// Redis into the articles table. Reads stay cheap between runs because only
// Redis is touched on the hot path.
type ViewCountFlushJob struct {
	articleRepo repository.ArticleRepository
	redis       *redis.Client
	logger      *zap.Logger
}

// NewViewCountFlushJob creates a new ViewCountFlushJob instance
func NewViewCountFlushJob(
	articleRepo repository.ArticleRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *ViewCountFlushJob {
	return &ViewCountFlushJob{
		articleRepo: articleRepo,
		redis:       redisClient,
		logger:      logger,
	}
}

// Run flushes every pending view counter to the database. Counters are
// consumed with GETDEL so views recorded during the flush land in the next
// run instead of being lost.
func (j *ViewCountFlushJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	var (
		cursor  uint64
		flushed int
		failed  int
	)

	for {
		keys, next, err := j.redis.Scan(ctx, cursor, viewCountKeyPrefix+"*", 100).Result()
		if err != nil {
			j.logger.Error("Failed to scan view counter keys", zap.Error(err))
			return
		}

		for _, key := range keys {
			if j.flushKey(ctx, key) {
				flushed++
			} else {
				failed++
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if flushed > 0 || failed > 0 {
		j.logger.Info("View count flush completed",
			zap.Int("flushed", flushed),
			zap.Int("failed", failed),
		)
	}
}

// flushKey consumes a single counter and applies it to the article row
func (j *ViewCountFlushJob) flushKey(ctx context.Context, key string) bool {
	articleID, err := uuid.Parse(strings.TrimPrefix(key, viewCountKeyPrefix))
	if err != nil {
		j.logger.Warn("Dropping malformed view counter key", zap.String("key", key))
		j.redis.Del(ctx, key)
		return false
	}

	raw, err := j.redis.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		j.logger.Error("Failed to consume view counter",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}

	delta, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || delta <= 0 {
		j.logger.Warn("Dropping non-numeric view counter",
			zap.String("key", key),
			zap.String("value", raw),
		)
		return false
	}

	if err := j.articleRepo.IncrementViewCount(ctx, articleID, delta); err != nil {
		// Push the counter back so the views survive until the next run
		j.redis.IncrBy(ctx, key, delta)
		j.logger.Error("Failed to apply view counter to database",
			zap.String("article_id", articleID.String()),
			zap.Int64("delta", delta),
			zap.Error(err),
		)
		return false
	}

	return true
}
