package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/auth"
	"github.com/jotapp/jot/services/jwt"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/otp"
	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
)

type AuthHandler struct {
	config  *config.Config
	authSvc *auth.Service
	otpSvc  *otp.Service
	jwtSvc  *jwt.Service
	logger  *logging.Service
}

func NewAuthHandler(cfg *config.Config, authSvc *auth.Service, otpSvc *otp.Service, jwtSvc *jwt.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		config:  cfg,
		authSvc: authSvc,
		otpSvc:  otpSvc,
		jwtSvc:  jwtSvc,
		logger:  logger,
	}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email is required")
	}

	email := otp.NormalizeEmail(req.Email)
	if email == "" {
		return errorJSON(c, http.StatusBadRequest, "Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid email address")
	}

	if _, err := h.otpSvc.Issue(email); err != nil {
		if errors.Is(err, otp.ErrMailFailed) {
			if !h.config.App.IsProduction() {
				return errorJSON(c, http.StatusInternalServerError, "Failed to send OTP: "+err.Error())
			}
			return errorJSON(c, http.StatusInternalServerError, "Failed to send OTP")
		}
		return internalError(c, h.config, h.logger, err, "Failed to send OTP")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and OTP are required")
	}
	if req.Email == "" || req.OTP == "" {
		return errorJSON(c, http.StatusBadRequest, "Email and OTP are required")
	}

	err := h.otpSvc.Verify(req.Email, req.OTP)
	if err != nil {
		var invalidCode *otp.InvalidCodeError
		switch {
		case errors.Is(err, otp.ErrCodeNotFound):
			return errorJSON(c, http.StatusBadRequest, "OTP not found or expired")
		case errors.Is(err, otp.ErrCodeExpired):
			return errorJSON(c, http.StatusBadRequest, "OTP expired")
		case errors.Is(err, otp.ErrMaxAttempts):
			return errorJSON(c, http.StatusBadRequest, "Maximum attempts reached. Please request a new code.")
		case errors.As(err, &invalidCode):
			return errorJSON(c, http.StatusBadRequest,
				fmt.Sprintf("Invalid code. %d attempt(s) left.", invalidCode.AttemptsLeft))
		default:
			return internalError(c, h.config, h.logger, err, "Failed to verify OTP")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified. Continue to create your password."})
}

type signupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
}

// Signup handles POST /api/auth/signup. A verified OTP record is consumed and
// a session cookie is issued alongside the created account.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.authSvc.Signup(req.Email, req.Password, req.FullName, req.MobileNumber)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordPolicy):
			return errorJSON(c, http.StatusBadRequest,
				fmt.Sprintf("Password must be at least %d characters", h.config.Auth.PasswordMinLength))
		case errors.Is(err, auth.ErrUserExists):
			return errorJSON(c, http.StatusConflict, "User already exists with this email")
		case errors.Is(err, otp.ErrNotVerified):
			return errorJSON(c, http.StatusBadRequest, "Email not verified. Please verify OTP first.")
		case errors.Is(err, otp.ErrCodeExpired):
			return errorJSON(c, http.StatusBadRequest, "OTP expired. Please request a new code.")
		default:
			return internalError(c, h.config, h.logger, err, "Failed to create account")
		}
	}

	if err := h.issueSession(c, user); err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to create session")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"email":   user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}
	if req.Email == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return internalError(c, h.config, h.logger, err, "Failed to log in")
	}

	if err := h.issueSession(c, user); err != nil {
		return internalError(c, h.config, h.logger, err, "Failed to create session")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged in successfully",
		"email":   user.Email,
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.jwtSvc.ClearSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) issueSession(c echo.Context, user *auth.User) error {
	token, err := h.jwtSvc.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	c.SetCookie(h.jwtSvc.SessionCookie(token))

	ua := useragent.Parse(c.Request().UserAgent())
	h.logger.Info("session issued",
		zap.Uint("user_id", user.ID),
		zap.String("browser", ua.Name),
		zap.String("os", ua.OS),
		zap.Bool("mobile", ua.Mobile))
	return nil
}
