package api

import "time"

// VariantStats is one aggregated row of the variant conversion report.
// ConversionRate is nil when the variant has no recorded attempts.
type VariantStats struct {
	Variant        string   `json:"variant"`
	Count          int64    `json:"count"`
	ConversionRate *float64 `json:"conversion_rate"`
}

// VariantTimings mirrors one row of the v_variant_stats view: completion-time
// percentiles per variant. Percentile fields are nil when the view reports no
// completions for the variant.
type VariantTimings struct {
	Variant              string   `json:"variant"`
	TotalCompletions     int64    `json:"total_completions"`
	UniqueUsers          int64    `json:"unique_users"`
	AvgCompletionTime    *float64 `json:"avg_completion_time"`
	MedianCompletionTime *float64 `json:"median_completion_time"`
	MinCompletionTime    *float64 `json:"min_completion_time"`
	MaxCompletionTime    *float64 `json:"max_completion_time"`
	P25CompletionTime    *float64 `json:"p25_completion_time"`
	P75CompletionTime    *float64 `json:"p75_completion_time"`
	P90CompletionTime    *float64 `json:"p90_completion_time"`
	P95CompletionTime    *float64 `json:"p95_completion_time"`
}

// FunnelStage is one row of the conversion funnel
// (Started -> Completed -> Repeated), per variant.
type FunnelStage struct {
	Variant     string `json:"variant"`
	Stage       string `json:"stage"`
	StageOrder  int    `json:"stage_order"`
	EventCount  int64  `json:"event_count"`
	UniqueUsers int64  `json:"unique_users"`
}

type Completion struct {
	Variant               string    `json:"variant"`
	CompletionTimeSeconds float64   `json:"completion_time_seconds"`
	CorrectWordsCount     int       `json:"correct_words_count"`
	TotalGuessesCount     int       `json:"total_guesses_count"`
	Timestamp             time.Time `json:"timestamp"`
	UserID                string    `json:"user_id"`
}

// VariantSummary is the per-variant half of a Comparison. Nil fields mean the
// variant has no data to compute them from.
type VariantSummary struct {
	Completions          int64    `json:"completions"`
	ConversionRate       *float64 `json:"conversion_rate"`
	AvgCompletionTime    *float64 `json:"avg_completion_time"`
	MedianCompletionTime *float64 `json:"median_completion_time"`
}

// Comparison reports variant B against variant A. Comparative fields are nil
// whenever either side lacks the data to anchor them (no rows, or a zero
// baseline rate).
type Comparison struct {
	ConversionLift        *float64 `json:"conversion_lift"`
	TimeDifferenceSeconds *float64 `json:"time_difference_seconds"`
	PercentageDifference  *float64 `json:"percentage_difference"`
	Interpretation        *string  `json:"interpretation"`

	VariantA *VariantSummary `json:"variant_a"`
	VariantB *VariantSummary `json:"variant_b"`
}

type ServiceInfo struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
