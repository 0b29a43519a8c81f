package auth

import (
	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/otp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideAuthService(cfg *config.Config, db *gorm.DB, otpSvc *otp.Service, logger *logging.Service) *Service {
	return NewService(cfg, db, otpSvc, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideAuthService),
)
