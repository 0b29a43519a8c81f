package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/otp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordHashingFailed = errors.New("failed to hash password")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserExists            = errors.New("user already exists with this email")
	ErrUserNotFound          = errors.New("user not found")
	ErrPasswordPolicy        = errors.New("password policy violation")
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	otp    *otp.Service
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, otpSvc *otp.Service, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config: cfg,
		db:     db,
		otp:    otpSvc,
		logger: logger,
	}
}

func (s *Service) ValidatePassword(password string) error {
	if len(password) < s.config.Auth.PasswordMinLength {
		s.logger.Warn("password validation failed: insufficient length",
			zap.Int("length", len(password)),
			zap.Int("min_required", s.config.Auth.PasswordMinLength))
		return fmt.Errorf("%w: password must be at least %d characters",
			ErrPasswordPolicy, s.config.Auth.PasswordMinLength)
	}
	return nil
}

func (s *Service) HashPassword(password string) (string, error) {
	if err := s.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return "", ErrPasswordHashingFailed
	}

	return string(hash), nil
}

func (s *Service) VerifyPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Signup consumes a verified one-time code and creates the credential record.
// The code row must exist, be verified, and still be inside its expiry window.
func (s *Service) Signup(email, password, fullName, mobileNumber string) (*User, error) {
	email = otp.NormalizeEmail(email)

	s.logger.Info("signup requested", zap.String("email", email))

	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		s.logger.Warn("signup attempted for existing account", zap.String("email", email))
		return nil, ErrUserExists
	}

	if _, err := s.otp.GetVerified(email); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		Password:     hash,
		FullName:     strings.TrimSpace(fullName),
		MobileNumber: strings.TrimSpace(mobileNumber),
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Final consumption: the code row must never verify another signup.
	if err := s.otp.Consume(email); err != nil {
		s.logger.Error("user created but code consumption failed",
			zap.Error(err),
			zap.String("email", email))
	}

	s.logger.Info("user created", zap.String("email", email), zap.Uint("user_id", user.ID))
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the response does not leak which emails are registered.
func (s *Service) Login(email, password string) (*User, error) {
	email = otp.NormalizeEmail(email)

	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login attempted for unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.VerifyPassword(user.Password, password); err != nil {
		s.logger.Warn("login failed: wrong password", zap.String("email", email))
		return nil, err
	}

	return &user, nil
}

func (s *Service) GetUser(userID uint) (*User, error) {
	var user User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// ProfileUpdate carries optional display-field changes. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	FullName          *string
	MobileNumber      *string
	ProfilePictureURL *string
}

func (s *Service) UpdateProfile(userID uint, update ProfileUpdate) (*User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.MobileNumber != nil {
		user.MobileNumber = strings.TrimSpace(*update.MobileNumber)
	}
	if update.ProfilePictureURL != nil {
		user.ProfilePictureURL = strings.TrimSpace(*update.ProfilePictureURL)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.Uint("user_id", userID))
	return user, nil
}
