package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/soma-project/soma-analytics/pkg/analytics/api"
	"go.uber.org/zap"
)

const (
	ServiceName    = "soma-analytics"
	ServiceVersion = "1.0.0"

	defaultCompletionsLimit = 100
	maxCompletionsLimit     = 500
)

func (h *HttpHandler) Register(e *echo.Echo) {
	e.GET("/", h.ServiceInfo)
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/variant-stats", h.GetVariantStats)
	g.GET("/variant-timings", h.GetVariantTimings)
	g.GET("/conversion-funnel", h.GetConversionFunnel)
	g.GET("/recent-completions", h.GetRecentCompletions)
	g.GET("/comparison", h.GetComparison)
}

func bindValidate(ctx echo.Context, i interface{}) error {
	if err := ctx.Bind(i); err != nil {
		return err
	}

	if err := ctx.Validate(i); err != nil {
		return err
	}

	return nil
}

func (h *HttpHandler) internalError(ctx echo.Context, err error) error {
	h.logger.Error("request failed",
		zap.String("path", ctx.Path()),
		zap.Error(err),
	)
	return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}

// ServiceInfo godoc
//
//	@Summary	Service info
//	@Produce	json
//	@Success	200	{object}	api.ServiceInfo
//	@Router		/ [get]
func (h *HttpHandler) ServiceInfo(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.ServiceInfo{
		Service: ServiceName,
		Version: ServiceVersion,
		Endpoints: []string{
			"/api/variant-stats",
			"/api/variant-timings",
			"/api/conversion-funnel",
			"/api/recent-completions",
			"/api/comparison",
		},
	})
}

// Health godoc
//
//	@Summary	Health check
//	@Produce	json
//	@Success	200	{object}	api.HealthStatus
//	@Router		/health [get]
func (h *HttpHandler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// GetVariantStats godoc
//
//	@Summary		Variant conversion stats
//	@Description	returns per-variant attempt counts and conversion rates
//	@Tags			analytics
//	@Produce		json
//	@Success		200	{object}	[]api.VariantStats
//	@Router			/api/variant-stats [get]
func (h *HttpHandler) GetVariantStats(ctx echo.Context) error {
	rows, err := h.db.ListVariantConversions()
	if err != nil {
		return h.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, buildVariantStats(rows))
}

// GetVariantTimings godoc
//
//	@Summary		Variant completion-time stats
//	@Description	returns per-variant completion time percentiles from the v_variant_stats view
//	@Tags			analytics
//	@Produce		json
//	@Success		200	{object}	[]api.VariantTimings
//	@Router			/api/variant-timings [get]
func (h *HttpHandler) GetVariantTimings(ctx echo.Context) error {
	rows, err := h.db.ListVariantTimings()
	if err != nil {
		return h.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, buildVariantTimings(rows))
}

// GetConversionFunnel godoc
//
//	@Summary		Conversion funnel
//	@Description	returns funnel stages (Started -> Completed -> Repeated) per variant
//	@Tags			analytics
//	@Produce		json
//	@Success		200	{object}	[]api.FunnelStage
//	@Router			/api/conversion-funnel [get]
func (h *HttpHandler) GetConversionFunnel(ctx echo.Context) error {
	rows, err := h.db.ListFunnelStages()
	if err != nil {
		return h.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, buildFunnelStages(rows))
}

type getRecentCompletionsRequest struct {
	Limit int `query:"limit" validate:"omitempty,gte=1"`
}

// GetRecentCompletions godoc
//
//	@Summary		Recent completions
//	@Description	returns the latest completed puzzles, newest first
//	@Tags			analytics
//	@Produce		json
//	@Param			limit	query		int	false	"maximum rows to return (default 100, capped at 500)"
//	@Success		200		{object}	[]api.Completion
//	@Router			/api/recent-completions [get]
func (h *HttpHandler) GetRecentCompletions(ctx echo.Context) error {
	var req getRecentCompletionsRequest
	if err := bindValidate(ctx, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultCompletionsLimit
	}
	if limit > maxCompletionsLimit {
		limit = maxCompletionsLimit
	}

	events, err := h.db.ListRecentCompletions(limit)
	if err != nil {
		return h.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, buildCompletions(events))
}

// GetComparison godoc
//
//	@Summary		Variant comparison
//	@Description	returns conversion lift and completion-time difference of variant B over variant A
//	@Tags			analytics
//	@Produce		json
//	@Success		200	{object}	api.Comparison
//	@Router			/api/comparison [get]
func (h *HttpHandler) GetComparison(ctx echo.Context) error {
	conversions, err := h.db.ListVariantConversions()
	if err != nil {
		return h.internalError(ctx, err)
	}

	timings, err := h.db.ListVariantTimings()
	if err != nil {
		return h.internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, buildComparison(conversions, timings))
}
