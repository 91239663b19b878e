package analytics

import (
	"context"
	"fmt"
	"os"

	"github.com/soma-project/soma-analytics/pkg/config"
	"github.com/soma-project/soma-analytics/pkg/internal/httpserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	DatabaseURL = os.Getenv("DATABASE_URL")
	HttpAddress = os.Getenv("HTTP_ADDRESS")
)

type ServiceConfig struct {
	Postgres config.Postgres   `koanf:"postgres"`
	Http     config.HttpServer `koanf:"http"`
}

func DefaultConfig() ServiceConfig {
	var cnf ServiceConfig
	cnf.Http.Address = ":8000"
	return cnf
}

func Command() *cobra.Command {
	return &cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			var cnf ServiceConfig
			if err := config.ReadFromEnv(&cnf, DefaultConfig()); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			if cnf.Postgres.URL == "" {
				cnf.Postgres.URL = DatabaseURL
			}
			if HttpAddress != "" {
				cnf.Http.Address = HttpAddress
			}

			return start(cmd.Context(), cnf)
		},
	}
}

func start(ctx context.Context, cnf ServiceConfig) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}

	handler, err := InitializeHttpHandler(cnf.Postgres, logger)
	if err != nil {
		return fmt.Errorf("init http handler: %w", err)
	}

	return httpserver.RegisterAndStart(logger, cnf.Http.Address, handler)
}
