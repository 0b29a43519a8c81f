package main

import (
	"github.com/jotapp/jot/app"
	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/database"
	"github.com/jotapp/jot/handlers"
	"github.com/jotapp/jot/server"
	"github.com/jotapp/jot/services/auth"
	"github.com/jotapp/jot/services/files"
	"github.com/jotapp/jot/services/folders"
	"github.com/jotapp/jot/services/jwt"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/mail"
	"github.com/jotapp/jot/services/notes"
	"github.com/jotapp/jot/services/otp"
	"github.com/jotapp/jot/storage/minio"
	"go.uber.org/fx"
)

func main() {
	app.New(
		config.NewProvider(nil),
		logging.Module,
		fx.Supply(database.WithModels(
			&auth.User{},
			&otp.Code{},
			&notes.Note{},
			&folders.Folder{},
			&files.File{},
		)),
		database.Module,
		jwt.Module,
		mail.Module,
		otp.Module,
		auth.Module,
		notes.Module,
		folders.Module,
		files.Module,
		minio.Module,
		handlers.Module,
		server.NewProvider(),
		fx.Invoke(handlers.RegisterRoutes),
	).Run()
}
