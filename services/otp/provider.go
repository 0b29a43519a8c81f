package otp

import (
	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/mail"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideOTPService(cfg *config.Config, db *gorm.DB, mailSvc *mail.Service, logger *logging.Service) *Service {
	return NewService(cfg, db, mailSvc, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideOTPService),
)
