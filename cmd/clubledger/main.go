package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fitstack/clubledger/internal/config"
	"github.com/fitstack/clubledger/internal/logger"
	"github.com/fitstack/clubledger/internal/migration"
	"github.com/fitstack/clubledger/internal/observability/metrics"
	"github.com/fitstack/clubledger/internal/server"
	"github.com/fitstack/clubledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		metrics.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
