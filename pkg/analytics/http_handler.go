package analytics

import (
	"github.com/soma-project/soma-analytics/pkg/config"
	"github.com/soma-project/soma-analytics/pkg/internal/postgres"
	"go.uber.org/zap"
)

type HttpHandler struct {
	db     Database
	logger *zap.Logger
}

func InitializeHttpHandler(cnf config.Postgres, logger *zap.Logger) (*HttpHandler, error) {
	cfg := postgres.Config{
		URI: cnf.URL,
	}
	cfg.Connection.MaxOpen = cnf.MaxOpenConns
	cfg.Connection.MaxIdle = cnf.MaxIdleConns

	orm, err := postgres.NewClient(&cfg, logger)
	if err != nil {
		return nil, ConnectionError{Err: err}
	}
	logger.Info("connected to the postgres database")

	return &HttpHandler{
		db:     NewDatabase(orm),
		logger: logger,
	}, nil
}
