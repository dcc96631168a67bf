package receivable

import (
	"github.com/fitstack/clubledger/internal/receivable/repository"
	"github.com/fitstack/clubledger/internal/receivable/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receivable.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
