package job

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// purgeTimeout bounds a single purge run
const purgeTimeout = 2 * time.Minute

// PurgeJob permanently removes rows that have been soft deleted for longer
// than the retention window
type PurgeJob struct {
	db        *gorm.DB
	retention time.Duration
	logger    *zap.Logger
}

// NewPurgeJob creates a new PurgeJob instance
func NewPurgeJob(db *gorm.DB, retention time.Duration, logger *zap.Logger) *PurgeJob {
	return &PurgeJob{
		db:        db,
		retention: retention,
		logger:    logger,
	}
}

// Run hard-deletes every soft-deleted row older than the retention window
func (j *PurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	cutoff := time.Now().Add(-j.retention)

	// Children before parents so foreign keys stay satisfied
	models := []interface{}{
		&domain.Comment{},
		&domain.Article{},
		&domain.Artifact{},
		&domain.OralHistory{},
		&domain.ResearchItem{},
		&domain.EducationResource{},
		&domain.Event{},
		&domain.Donation{},
		&domain.Order{},
		&domain.Product{},
		&domain.User{},
	}

	var purged int64
	for _, model := range models {
		result := j.db.WithContext(ctx).Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(model)
		if result.Error != nil {
			j.logger.Error("Failed to purge soft-deleted rows",
				zap.Error(result.Error),
			)
			continue
		}
		purged += result.RowsAffected
	}

	if purged > 0 {
		j.logger.Info("Purged soft-deleted rows",
			zap.Int64("rows", purged),
			zap.Time("cutoff", cutoff),
		)
	}
}
