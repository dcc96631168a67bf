package report

import (
	"github.com/fitstack/clubledger/internal/report/repository"
	"github.com/fitstack/clubledger/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
