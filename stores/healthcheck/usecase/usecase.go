package usecase

import (
	"fmt"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	hcdomain "github.com/x-xyz/gomarket/domain/healthcheck"
)

type impl struct {
	repos []hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repos ...hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repos: repos,
	}
}

// Check pings every dependency and fails on the first one down
func (im *impl) Check(context ctx.Ctx) error {
	for _, r := range im.repos {
		if err := r.Ping(context); err != nil {
			context.WithFields(log.Fields{"err": err, "dep": r.Name()}).Warn("health check failed")
			return fmt.Errorf("%s: %w", r.Name(), err)
		}
	}
	return nil
}
