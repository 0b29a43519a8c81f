package handlers

import (
	"errors"
	"net/http"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/middleware/jwtcookie"
	"github.com/jotapp/jot/services/auth"
	"github.com/jotapp/jot/services/logging"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	config  *config.Config
	authSvc *auth.Service
	logger  *logging.Service
}

func NewProfileHandler(cfg *config.Config, authSvc *auth.Service, logger *logging.Service) *ProfileHandler {
	return &ProfileHandler{config: cfg, authSvc: authSvc, logger: logger}
}

type profileResponse struct {
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	MobileNumber      string `json:"mobileNumber"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// Get handles GET /api/user/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.authSvc.GetUser(jwtcookie.GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		}
		return internalError(c, h.config, h.logger, err, "Failed to fetch profile")
	}

	return c.JSON(http.StatusOK, profileResponse{
		Email:             user.Email,
		FullName:          user.FullName,
		MobileNumber:      user.MobileNumber,
		ProfilePictureURL: user.ProfilePictureURL,
	})
}

type updateProfileRequest struct {
	FullName          *string `json:"fullName"`
	MobileNumber      *string `json:"mobileNumber"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// Update handles PUT /api/user/profile. Only fields present in the body are
// changed.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	user, err := h.authSvc.UpdateProfile(jwtcookie.GetUserID(c), auth.ProfileUpdate{
		FullName:          req.FullName,
		MobileNumber:      req.MobileNumber,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		}
		return internalError(c, h.config, h.logger, err, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Profile updated successfully",
		"email":             user.Email,
		"fullName":          user.FullName,
		"mobileNumber":      user.MobileNumber,
		"profilePictureUrl": user.ProfilePictureURL,
	})
}
