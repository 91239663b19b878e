package analytics

import (
	"math"

	"github.com/soma-project/soma-analytics/pkg/analytics/api"
)

const (
	VariantA = "A"
	VariantB = "B"
)

// conversionRate returns conversions/total, or nil when there are no
// attempts to divide by.
func conversionRate(conversions, total int64) *float64 {
	if total == 0 {
		return nil
	}
	rate := float64(conversions) / float64(total)
	return &rate
}

// lift returns the relative change of other over base as a ratio. It is
// defined only when both rates exist and the baseline is non-zero.
func lift(base, other *float64) *float64 {
	if base == nil || other == nil || *base == 0 {
		return nil
	}
	l := (*other - *base) / *base
	return &l
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func buildVariantStats(rows []VariantConversionRow) []api.VariantStats {
	stats := make([]api.VariantStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, api.VariantStats{
			Variant:        row.Variant,
			Count:          row.Total,
			ConversionRate: conversionRate(row.Conversions, row.Total),
		})
	}
	return stats
}

func buildVariantTimings(rows []VariantTimingsRow) []api.VariantTimings {
	timings := make([]api.VariantTimings, 0, len(rows))
	for _, row := range rows {
		timings = append(timings, api.VariantTimings{
			Variant:              row.Variant,
			TotalCompletions:     row.TotalCompletions,
			UniqueUsers:          row.UniqueUsers,
			AvgCompletionTime:    row.AvgCompletionTime,
			MedianCompletionTime: row.MedianCompletionTime,
			MinCompletionTime:    row.MinCompletionTime,
			MaxCompletionTime:    row.MaxCompletionTime,
			P25CompletionTime:    row.P25CompletionTime,
			P75CompletionTime:    row.P75CompletionTime,
			P90CompletionTime:    row.P90CompletionTime,
			P95CompletionTime:    row.P95CompletionTime,
		})
	}
	return timings
}

func buildFunnelStages(rows []FunnelRow) []api.FunnelStage {
	stages := make([]api.FunnelStage, 0, len(rows))
	for _, row := range rows {
		stages = append(stages, api.FunnelStage{
			Variant:     row.Variant,
			Stage:       row.Stage,
			StageOrder:  row.StageOrder,
			EventCount:  row.EventCount,
			UniqueUsers: row.UniqueUsers,
		})
	}
	return stages
}

func buildCompletions(events []Event) []api.Completion {
	completions := make([]api.Completion, 0, len(events))
	for _, e := range events {
		var seconds float64
		if e.CompletionTimeSeconds != nil {
			seconds = *e.CompletionTimeSeconds
		}
		completions = append(completions, api.Completion{
			Variant:               e.Variant,
			CompletionTimeSeconds: seconds,
			CorrectWordsCount:     e.CorrectWordsCount,
			TotalGuessesCount:     e.TotalGuessesCount,
			Timestamp:             e.Timestamp,
			UserID:                e.UserID,
		})
	}
	return completions
}

// buildComparison reports variant B against variant A. Every comparative field
// degrades to nil instead of failing when one side lacks data.
func buildComparison(conversions []VariantConversionRow, timings []VariantTimingsRow) api.Comparison {
	var convA, convB *VariantConversionRow
	for i := range conversions {
		switch conversions[i].Variant {
		case VariantA:
			convA = &conversions[i]
		case VariantB:
			convB = &conversions[i]
		}
	}

	var timingA, timingB *VariantTimingsRow
	for i := range timings {
		switch timings[i].Variant {
		case VariantA:
			timingA = &timings[i]
		case VariantB:
			timingB = &timings[i]
		}
	}

	cmp := api.Comparison{
		VariantA: summarizeVariant(convA, timingA),
		VariantB: summarizeVariant(convB, timingB),
	}

	if cmp.VariantA != nil && cmp.VariantB != nil {
		cmp.ConversionLift = lift(cmp.VariantA.ConversionRate, cmp.VariantB.ConversionRate)
	}

	if timingA != nil && timingB != nil &&
		timingA.AvgCompletionTime != nil && timingB.AvgCompletionTime != nil {
		rawDiff := *timingB.AvgCompletionTime - *timingA.AvgCompletionTime
		diff := roundTo(rawDiff, 2)
		cmp.TimeDifferenceSeconds = &diff

		if *timingA.AvgCompletionTime != 0 {
			pct := roundTo(rawDiff / *timingA.AvgCompletionTime * 100, 1)
			cmp.PercentageDifference = &pct
			interpretation := interpretTimeDifference(pct)
			cmp.Interpretation = &interpretation
		}
	}

	return cmp
}

func summarizeVariant(conv *VariantConversionRow, timing *VariantTimingsRow) *api.VariantSummary {
	if conv == nil && timing == nil {
		return nil
	}

	summary := api.VariantSummary{}
	if conv != nil {
		summary.Completions = conv.Total
		summary.ConversionRate = conversionRate(conv.Conversions, conv.Total)
	}
	if timing != nil {
		if timing.TotalCompletions > summary.Completions {
			summary.Completions = timing.TotalCompletions
		}
		summary.AvgCompletionTime = timing.AvgCompletionTime
		summary.MedianCompletionTime = timing.MedianCompletionTime
	}
	return &summary
}

func interpretTimeDifference(pct float64) string {
	switch {
	case pct > 20:
		return "variant B is significantly harder (more than 20% slower)"
	case pct < -20:
		return "variant B is significantly easier (more than 20% faster)"
	case math.Abs(pct) > 10:
		return "moderate difficulty difference (10-20%)"
	default:
		return "similar difficulty (under 10% difference)"
	}
}
