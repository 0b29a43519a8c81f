package folders

import (
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/notes"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideFoldersService(db *gorm.DB, notesSvc *notes.Service, logger *logging.Service) *Service {
	return NewService(db, notesSvc, logger)
}

var Module = fx.Options(
	fx.Provide(ProvideFoldersService),
)
