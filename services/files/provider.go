package files

import (
	"github.com/jotapp/jot/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideFilesService(db *gorm.DB, store ObjectStore, logger *logging.Service) *Service {
	return NewService(db, store, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideFilesService),
)
