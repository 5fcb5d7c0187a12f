package healthcheck

import (
	"github.com/x-xyz/gomarket/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo is one dependency that has to answer for the service to be healthy
type HealthCheckRepo interface {
	Ping(context ctx.Ctx) error
	Name() string
}
