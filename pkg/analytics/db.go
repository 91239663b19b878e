package analytics

import (
	"gorm.io/gorm"
)

type Database struct {
	orm *gorm.DB
}

func NewDatabase(orm *gorm.DB) Database {
	return Database{orm: orm}
}

// ListVariantConversions groups completed-puzzle events by variant and counts
// attempts and conversions per group. Variants with no rows do not appear.
func (db Database) ListVariantConversions() ([]VariantConversionRow, error) {
	var rows []VariantConversionRow
	err := db.orm.Model(&Event{}).
		Select("variant, count(*) AS total, sum(CASE WHEN converted THEN 1 ELSE 0 END) AS conversions").
		Where("event = ?", EventPuzzleCompleted).
		Group("variant").
		Order("variant").
		Scan(&rows).Error
	if err != nil {
		return nil, QueryError{Err: err}
	}
	return rows, nil
}

func (db Database) ListVariantTimings() ([]VariantTimingsRow, error) {
	var rows []VariantTimingsRow
	err := db.orm.Model(&VariantTimingsRow{}).
		Order("variant").
		Find(&rows).Error
	if err != nil {
		return nil, QueryError{Err: err}
	}
	return rows, nil
}

func (db Database) ListFunnelStages() ([]FunnelRow, error) {
	var rows []FunnelRow
	err := db.orm.Model(&FunnelRow{}).
		Order("variant, stage_order").
		Find(&rows).Error
	if err != nil {
		return nil, QueryError{Err: err}
	}
	return rows, nil
}

func (db Database) ListRecentCompletions(limit int) ([]Event, error) {
	var events []Event
	err := db.orm.Model(&Event{}).
		Where("event = ? AND completion_time_seconds IS NOT NULL", EventPuzzleCompleted).
		Order(`"timestamp" DESC`).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, QueryError{Err: err}
	}
	return events, nil
}
