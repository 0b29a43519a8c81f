package handlers

import (
	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/middleware/jwtcookie"
	"github.com/jotapp/jot/middleware/ratelimit"
	"github.com/jotapp/jot/server"
	"github.com/jotapp/jot/services/jwt"
	"github.com/jotapp/jot/services/logging"
)

// RegisterRoutes wires every endpoint. The auth group is public (issuance is
// rate limited); everything else sits behind the session cookie middleware.
func RegisterRoutes(
	srv *server.Server,
	cfg *config.Config,
	jwtSvc *jwt.Service,
	logger *logging.Service,
	authH *AuthHandler,
	profileH *ProfileHandler,
	notesH *NotesHandler,
	foldersH *FoldersHandler,
	filesH *FilesHandler,
) {
	srv.Use(logging.RequestLogger(logger))

	authGroup := srv.Group("/api/auth")
	if cfg.RateLimit.Enabled {
		authGroup.POST("/send-otp", authH.SendOTP, ratelimit.Middleware(&ratelimit.Config{
			Rate:   cfg.RateLimit.Rate,
			Period: cfg.RateLimit.Period,
		}))
	} else {
		authGroup.POST("/send-otp", authH.SendOTP)
	}
	authGroup.POST("/verify-otp", authH.VerifyOTP)
	authGroup.POST("/signup", authH.Signup)
	authGroup.POST("/login", authH.Login)
	authGroup.POST("/logout", authH.Logout)

	api := srv.Group("/api", jwtcookie.RequireSession(jwtSvc))

	api.GET("/user/profile", profileH.Get)
	api.PUT("/user/profile", profileH.Update)

	api.GET("/notes", notesH.List)
	api.POST("/notes", notesH.Create)
	api.GET("/notes/:id", notesH.Get)
	api.PUT("/notes/:id", notesH.Update)
	api.DELETE("/notes/:id", notesH.Delete)

	api.GET("/folders", foldersH.List)
	api.POST("/folders", foldersH.Create)
	api.PUT("/folders/:id", foldersH.Update)
	api.DELETE("/folders/:id", foldersH.Delete)

	api.GET("/files", filesH.List)
	api.POST("/files", filesH.Upload)
	api.PATCH("/files", filesH.Move)
	api.GET("/files/:id", filesH.Get)
	api.DELETE("/files/:id", filesH.Delete)
}
