package auth

import (
	"testing"
	"time"

	"github.com/jotapp/jot/services/otp"
	"github.com/jotapp/jot/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *otp.Service, *gorm.DB) {
	db := testutils.SetupTestDB(t, &User{}, &otp.Code{})
	cfg := testutils.GetTestConfig()

	mailMock := &testutils.MockMailSender{}
	mailMock.On("Configured").Return(true)
	mailMock.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	otpSvc := otp.NewService(cfg, db, mailMock, nil)
	return NewService(cfg, db, otpSvc, nil), otpSvc, db
}

func verifyEmail(t *testing.T, otpSvc *otp.Service, email string) {
	code, err := otpSvc.Issue(email)
	require.NoError(t, err)
	require.NoError(t, otpSvc.Verify(email, code.Code))
}

func TestService_ValidatePassword(t *testing.T) {
	svc, _, _ := setupService(t)

	t.Run("long enough", func(t *testing.T) {
		assert.NoError(t, svc.ValidatePassword("secret1"))
	})

	t.Run("exactly minimum length", func(t *testing.T) {
		assert.NoError(t, svc.ValidatePassword("secret"))
	})

	t.Run("too short", func(t *testing.T) {
		err := svc.ValidatePassword("short")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPasswordPolicy)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})
}

func TestService_HashAndVerifyPassword(t *testing.T) {
	svc, _, _ := setupService(t)

	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")))

	assert.NoError(t, svc.VerifyPassword(hash, "secret1"))
	assert.ErrorIs(t, svc.VerifyPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestService_Signup(t *testing.T) {
	t.Run("full flow creates user and consumes the code", func(t *testing.T) {
		svc, otpSvc, db := setupService(t)
		verifyEmail(t, otpSvc, "alice@example.com")

		user, err := svc.Signup("Alice@Example.com", "secret1", " Alice ", " 0712345678 ")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.FullName)
		assert.Equal(t, "0712345678", user.MobileNumber)
		assert.NotEqual(t, "secret1", user.Password)

		var count int64
		db.Model(&otp.Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("password too short", func(t *testing.T) {
		svc, otpSvc, _ := setupService(t)
		verifyEmail(t, otpSvc, "alice@example.com")

		_, err := svc.Signup("alice@example.com", "short", "", "")
		assert.ErrorIs(t, err, ErrPasswordPolicy)
	})

	t.Run("email not verified", func(t *testing.T) {
		svc, otpSvc, _ := setupService(t)
		_, err := otpSvc.Issue("alice@example.com")
		require.NoError(t, err)

		_, err = svc.Signup("alice@example.com", "secret1", "", "")
		assert.ErrorIs(t, err, otp.ErrNotVerified)
	})

	t.Run("no code at all", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Signup("alice@example.com", "secret1", "", "")
		assert.ErrorIs(t, err, otp.ErrNotVerified)
	})

	t.Run("verified code gone stale", func(t *testing.T) {
		svc, otpSvc, db := setupService(t)
		verifyEmail(t, otpSvc, "alice@example.com")

		stale := time.Now().Add(-6 * time.Minute)
		require.NoError(t, db.Model(&otp.Code{}).Where("email = ?", "alice@example.com").
			Update("created_at", stale).Error)

		_, err := svc.Signup("alice@example.com", "secret1", "", "")
		assert.ErrorIs(t, err, otp.ErrCodeExpired)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, otpSvc, _ := setupService(t)
		verifyEmail(t, otpSvc, "alice@example.com")

		_, err := svc.Signup("alice@example.com", "secret1", "", "")
		require.NoError(t, err)

		verifyEmail(t, otpSvc, "alice@example.com")
		_, err = svc.Signup("alice@example.com", "secret1", "", "")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("code cannot be replayed for a second signup", func(t *testing.T) {
		svc, otpSvc, _ := setupService(t)
		verifyEmail(t, otpSvc, "alice@example.com")

		_, err := svc.Signup("alice@example.com", "secret1", "", "")
		require.NoError(t, err)

		_, err = otpSvc.GetVerified("alice@example.com")
		assert.ErrorIs(t, err, otp.ErrNotVerified)
	})
}

func TestService_Login(t *testing.T) {
	svc, otpSvc, _ := setupService(t)
	verifyEmail(t, otpSvc, "alice@example.com")
	_, err := svc.Signup("alice@example.com", "secret1", "Alice", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login("Alice@Example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("alice@example.com", "wrong11")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email uses the same error", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	svc, otpSvc, _ := setupService(t)
	verifyEmail(t, otpSvc, "alice@example.com")
	created, err := svc.Signup("alice@example.com", "secret1", "Alice", "0712345678")
	require.NoError(t, err)

	t.Run("nil fields are left unchanged", func(t *testing.T) {
		newName := "Alice B"
		user, err := svc.UpdateProfile(created.ID, ProfileUpdate{FullName: &newName})
		require.NoError(t, err)

		assert.Equal(t, "Alice B", user.FullName)
		assert.Equal(t, "0712345678", user.MobileNumber)
	})

	t.Run("values are trimmed", func(t *testing.T) {
		pic := "  https://cdn.example.com/alice.png  "
		user, err := svc.UpdateProfile(created.ID, ProfileUpdate{ProfilePictureURL: &pic})
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/alice.png", user.ProfilePictureURL)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(9999, ProfileUpdate{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_GetUser(t *testing.T) {
	svc, otpSvc, _ := setupService(t)
	verifyEmail(t, otpSvc, "alice@example.com")
	created, err := svc.Signup("alice@example.com", "secret1", "Alice", "")
	require.NoError(t, err)

	user, err := svc.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
