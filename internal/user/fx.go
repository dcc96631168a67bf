package user

import (
	"github.com/fitstack/clubledger/internal/user/repository"
	"github.com/fitstack/clubledger/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
