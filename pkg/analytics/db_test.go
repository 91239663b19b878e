package analytics

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDatabase(t *testing.T) (Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	orm, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewDatabase(orm), mock
}

func TestListVariantConversions(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT variant, count\(\*\) AS total, sum\(CASE WHEN converted THEN 1 ELSE 0 END\) AS conversions FROM "posthog_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"variant", "total", "conversions"}).
			AddRow("A", 100, 60).
			AddRow("B", 100, 80))

	rows, err := db.ListVariantConversions()
	require.NoError(t, err)
	require.Equal(t, []VariantConversionRow{
		{Variant: "A", Total: 100, Conversions: 60},
		{Variant: "B", Total: 100, Conversions: 80},
	}, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListVariantConversionsEmpty(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT variant, count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"variant", "total", "conversions"}))

	rows, err := db.ListVariantConversions()
	require.NoError(t, err, "an empty result set is not an error")
	require.Empty(t, rows)
}

func TestListVariantConversionsQueryError(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT variant, count\(\*\)`).
		WillReturnError(errors.New(`relation "posthog_events" does not exist`))

	_, err := db.ListVariantConversions()
	require.Error(t, err)

	var qerr QueryError
	require.ErrorAs(t, err, &qerr)
	require.Contains(t, qerr.Error(), "does not exist")
}

func TestListVariantTimings(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT \* FROM "v_variant_stats" ORDER BY variant`).
		WillReturnRows(sqlmock.NewRows([]string{"variant", "total_completions", "unique_users", "avg_completion_time", "median_completion_time"}).
			AddRow("A", 100, 42, 101.5, 98.0).
			AddRow("B", 90, 40, 130.25, 120.0))

	rows, err := db.ListVariantTimings()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "A", rows[0].Variant)
	require.EqualValues(t, 100, rows[0].TotalCompletions)
	require.NotNil(t, rows[0].AvgCompletionTime)
	require.InDelta(t, 101.5, *rows[0].AvgCompletionTime, 1e-9)
	require.Nil(t, rows[0].P95CompletionTime)
}

func TestListFunnelStages(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT \* FROM "v_conversion_funnel" ORDER BY variant, stage_order`).
		WillReturnRows(sqlmock.NewRows([]string{"variant", "stage", "stage_order", "event_count", "unique_users"}).
			AddRow("A", "Started", 1, 200, 150).
			AddRow("A", "Completed", 2, 100, 90))

	rows, err := db.ListFunnelStages()
	require.NoError(t, err)
	require.Equal(t, []FunnelRow{
		{Variant: "A", Stage: "Started", StageOrder: 1, EventCount: 200, UniqueUsers: 150},
		{Variant: "A", Stage: "Completed", StageOrder: 2, EventCount: 100, UniqueUsers: 90},
	}, rows)
}

func TestListRecentCompletions(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT \* FROM "posthog_events" WHERE event = .+ AND completion_time_seconds IS NOT NULL ORDER BY "timestamp" DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"variant", "completion_time_seconds", "user_id"}).
			AddRow("B", 88.5, "user-2").
			AddRow("A", 120.0, "user-1"))

	events, err := db.ListRecentCompletions(100)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "B", events[0].Variant)
	require.NotNil(t, events[0].CompletionTimeSeconds)
	require.InDelta(t, 88.5, *events[0].CompletionTimeSeconds, 1e-9)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentCompletionsQueryError(t *testing.T) {
	db, mock := setupMockDatabase(t)

	mock.ExpectQuery(`SELECT \* FROM "posthog_events"`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := db.ListRecentCompletions(10)

	var qerr QueryError
	require.ErrorAs(t, err, &qerr)
}
