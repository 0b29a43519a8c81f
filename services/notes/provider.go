package notes

import (
	"github.com/jotapp/jot/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideNotesService(db *gorm.DB, logger *logging.Service) *Service {
	return NewService(db, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideNotesService),
)
