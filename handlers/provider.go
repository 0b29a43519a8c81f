package handlers

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewAuthHandler),
	fx.Provide(NewProfileHandler),
	fx.Provide(NewNotesHandler),
	fx.Provide(NewFoldersHandler),
	fx.Provide(NewFilesHandler),
)
