package middlewares

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	SessionService contracts.SessionService
	Enforcer       *casbin.Enforcer
	HTTPMetrics    contracts.HTTPMetrics
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	sessionService contracts.SessionService,
	enforcer *casbin.Enforcer,
	metrics contracts.HTTPMetrics,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		SessionService: sessionService,
		Enforcer:       enforcer,
		HTTPMetrics:    metrics,
	}
}
