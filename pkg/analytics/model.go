package analytics

import "time"

const EventPuzzleCompleted = "puzzle_completed"

type Event struct {
	ID                    uint   `gorm:"primarykey"`
	Event                 string `gorm:"index"`
	Variant               string `gorm:"index"`
	Converted             bool
	CompletionTimeSeconds *float64
	CorrectWordsCount     int
	TotalGuessesCount     int
	Timestamp             time.Time `gorm:"column:timestamp"`
	UserID                string
}

func (Event) TableName() string {
	return "posthog_events"
}

// VariantTimingsRow maps the v_variant_stats view. Read-only.
type VariantTimingsRow struct {
	Variant              string
	TotalCompletions     int64
	UniqueUsers          int64
	AvgCompletionTime    *float64
	MedianCompletionTime *float64
	MinCompletionTime    *float64
	MaxCompletionTime    *float64
	P25CompletionTime    *float64
	P75CompletionTime    *float64
	P90CompletionTime    *float64
	P95CompletionTime    *float64
}

func (VariantTimingsRow) TableName() string {
	return "v_variant_stats"
}

// FunnelRow maps the v_conversion_funnel view. Read-only.
type FunnelRow struct {
	Variant     string
	Stage       string
	StageOrder  int
	EventCount  int64
	UniqueUsers int64
}

func (FunnelRow) TableName() string {
	return "v_conversion_funnel"
}

// VariantConversionRow is the scan target of the per-variant group-by over
// posthog_events.
type VariantConversionRow struct {
	Variant     string
	Total       int64
	Conversions int64
}
