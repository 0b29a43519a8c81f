package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCodeNotFound = errors.New("code not found or expired")
	ErrCodeExpired  = errors.New("code has expired")
	ErrMaxAttempts  = errors.New("maximum verification attempts reached")
	ErrNotVerified  = errors.New("email has not been verified")
	ErrMailFailed   = errors.New("failed to send verification code")
)

// InvalidCodeError is returned on a wrong code while attempts remain.
type InvalidCodeError struct {
	AttemptsLeft int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code, %d attempt(s) left", e.AttemptsLeft)
}

type MailSender interface {
	SendOTP(to, code string, validity time.Duration) error
	Configured() bool
}

type Service struct {
	config *config.Config
	db     *gorm.DB
	mail   MailSender
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, mail MailSender, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		mail:   mail,
		logger: logger,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Issue replaces any live code for the email with a fresh one and mails it.
// The row is created before the send, so a failed send leaves a valid,
// undelivered code behind; the caller only learns that delivery failed.
func (s *Service) Issue(email string) (*Code, error) {
	email = NormalizeEmail(email)

	s.logger.Info("issuing verification code", zap.String("email", email))

	if s.mail == nil || !s.mail.Configured() {
		s.logger.Error("verification code requested but mail transport is not configured")
		return nil, ErrMailFailed
	}

	result := s.db.Where("email = ?", email).Delete(&Code{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to clear previous codes: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		s.logger.Debug("replaced existing verification code",
			zap.String("email", email),
			zap.Int64("rows_removed", result.RowsAffected))
	}

	codeValue, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	code := &Code{
		Email:    email,
		Code:     codeValue,
		Attempts: 0,
		Verified: false,
	}
	if err := s.db.Create(code).Error; err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mail.SendOTP(email, codeValue, s.config.OTP.Expiry); err != nil {
		s.logger.Error("verification code stored but delivery failed",
			zap.Error(err),
			zap.String("email", email))
		return nil, fmt.Errorf("%w: %v", ErrMailFailed, err)
	}

	s.logger.Info("verification code sent",
		zap.String("email", email),
		zap.Time("expires_at", code.ExpiresAt(s.config.OTP.Expiry)))
	return code, nil
}

// Verify checks a submitted code. A match marks the row verified but leaves it
// in place for signup to consume. Wrong codes burn attempts; the increment is
// a conditional update keyed on the previously-read value so two concurrent
// attempts cannot both count as the same attempt number.
func (s *Service) Verify(email, submitted string) error {
	email = NormalizeEmail(email)

	var code Code
	if err := s.db.Where("email = ?", email).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("verification attempted with no live code", zap.String("email", email))
			return ErrCodeNotFound
		}
		return fmt.Errorf("failed to look up verification code: %w", err)
	}

	if time.Since(code.CreatedAt) > s.config.OTP.Expiry {
		s.deleteCode(&code)
		s.logger.Warn("verification attempted with expired code", zap.String("email", email))
		return ErrCodeExpired
	}

	if code.Attempts >= s.config.OTP.MaxAttempts {
		s.deleteCode(&code)
		s.logger.Warn("verification attempted after attempts exhausted", zap.String("email", email))
		return ErrMaxAttempts
	}

	if code.Code != submitted {
		newAttempts := code.Attempts + 1

		result := s.db.Model(&Code{}).
			Where("id = ? AND attempts = ?", code.ID, code.Attempts).
			Update("attempts", newAttempts)
		if result.Error != nil {
			return fmt.Errorf("failed to record failed attempt: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// A concurrent request already moved the counter; the state this
			// attempt was judged against no longer exists.
			return ErrCodeNotFound
		}

		if newAttempts >= s.config.OTP.MaxAttempts {
			s.deleteCode(&code)
			s.logger.Warn("verification attempts exhausted, code deleted",
				zap.String("email", email))
			return ErrMaxAttempts
		}

		attemptsLeft := s.config.OTP.MaxAttempts - newAttempts
		s.logger.Warn("wrong verification code submitted",
			zap.String("email", email),
			zap.Int("attempts_left", attemptsLeft))
		return &InvalidCodeError{AttemptsLeft: attemptsLeft}
	}

	if err := s.db.Model(&code).Update("verified", true).Error; err != nil {
		return fmt.Errorf("failed to mark code verified: %w", err)
	}

	s.logger.Info("verification code accepted", zap.String("email", email))
	return nil
}

// GetVerified returns the live verified code row for the email, re-checking
// the expiry window even though verification already enforced it.
func (s *Service) GetVerified(email string) (*Code, error) {
	email = NormalizeEmail(email)

	var code Code
	if err := s.db.Where("email = ?", email).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotVerified
		}
		return nil, fmt.Errorf("failed to look up verification code: %w", err)
	}

	if !code.Verified {
		return nil, ErrNotVerified
	}

	if time.Since(code.CreatedAt) > s.config.OTP.Expiry {
		s.deleteCode(&code)
		s.logger.Warn("verified code went stale before signup", zap.String("email", email))
		return nil, ErrCodeExpired
	}

	return &code, nil
}

// Consume deletes the code row after a successful signup so it cannot be
// replayed.
func (s *Service) Consume(email string) error {
	email = NormalizeEmail(email)

	if err := s.db.Where("email = ?", email).Delete(&Code{}).Error; err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	return nil
}

func (s *Service) deleteCode(code *Code) {
	if err := s.db.Delete(code).Error; err != nil {
		s.logger.Error("failed to delete verification code",
			zap.Error(err),
			zap.String("email", code.Email))
	}
}

// generateCode draws a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
