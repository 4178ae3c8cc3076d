package database

import (
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "archive:query_start"

// MetricsRecorder receives per-query timings and pool statistics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks hooks query, insert, update and delete so every
// statement reports its duration, target table and error to the recorder.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	startTimer := func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	}
	report := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			start, ok := db.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
		}
	}

	db.Callback().Query().Before("gorm:query").Register("metrics:query_before", startTimer)
	db.Callback().Query().After("gorm:query").Register("metrics:query_after", report("select"))

	db.Callback().Create().Before("gorm:create").Register("metrics:create_before", startTimer)
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", report("insert"))

	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", startTimer)
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", report("update"))

	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer)
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", report("delete"))
}

// StartDBStatsCollector samples the connection pool every 15 seconds until
// the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
