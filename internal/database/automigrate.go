package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// migrationModels lists every domain model in dependency order (referenced
// tables first, so foreign key constraints can be created on first run)
func migrationModels() []modelInfo {
	return []modelInfo{
		{&domain.User{}, "users"},
		{&domain.Article{}, "articles"},
		{&domain.Comment{}, "comments"},
		{&domain.CommentLike{}, "comment_likes"},
		{&domain.Artifact{}, "artifacts"},
		{&domain.OralHistory{}, "oral_histories"},
		{&domain.ResearchItem{}, "research_items"},
		{&domain.EducationResource{}, "education_resources"},
		{&domain.Event{}, "events"},
		{&domain.Donation{}, "donations"},
		{&domain.Product{}, "products"},
		{&domain.Order{}, "orders"},
		{&domain.OrderItem{}, "order_items"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	models := migrationModels()
	targets := make([]interface{}, 0, len(models))
	for _, m := range models {
		targets = append(targets, m.model)
	}
	if err := db.AutoMigrate(targets...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate runs auto-migration model by model, logging whether each
// table existed beforehand. For existing tables GORM only applies schema
// differences (new columns, indexes).
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	models := migrationModels()

	logger.Info("Starting safe auto-migration", zap.Int("total_models", len(models)))

	for _, m := range models {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed", zap.Int("tables_migrated", len(models)))
	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with linear backoff between
// attempts, so the service survives a database that is still coming up.
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
