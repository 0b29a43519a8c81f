package otp

import (
	"strconv"
	"testing"
	"time"

	"github.com/jotapp/jot/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB, *testutils.MockMailSender) {
	db := testutils.SetupTestDB(t, &Code{})
	mailMock := &testutils.MockMailSender{}
	mailMock.On("Configured").Return(true)
	mailMock.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(testutils.GetTestConfig(), db, mailMock, nil)
	return svc, db, mailMock
}

func storedCode(t *testing.T, db *gorm.DB, email string) Code {
	var code Code
	err := db.Where("email = ?", email).First(&code).Error
	require.NoError(t, err)
	return code
}

func wrongCode(right string) string {
	if right == "999999" {
		return "100000"
	}
	n, _ := strconv.Atoi(right)
	return strconv.Itoa(n + 1)
}

func TestService_Issue(t *testing.T) {
	t.Run("creates a six digit code", func(t *testing.T) {
		svc, db, _ := setupService(t)

		code, err := svc.Issue("Alice@Example.com")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", code.Email)
		assert.Len(t, code.Code, 6)
		assert.Equal(t, 0, code.Attempts)
		assert.False(t, code.Verified)

		n, err := strconv.Atoi(code.Code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)

		var count int64
		db.Model(&Code{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("replaces previous code for the same email", func(t *testing.T) {
		svc, db, _ := setupService(t)

		_, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		second, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		var count int64
		db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)

		stored := storedCode(t, db, "alice@example.com")
		assert.Equal(t, second.Code, stored.Code)
	})

	t.Run("replacement resets attempts and verified state", func(t *testing.T) {
		svc, db, _ := setupService(t)

		_, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		code := storedCode(t, db, "alice@example.com")
		err = svc.Verify("alice@example.com", wrongCode(code.Code))
		var invalidErr *InvalidCodeError
		require.ErrorAs(t, err, &invalidErr)

		_, err = svc.Issue("alice@example.com")
		require.NoError(t, err)

		fresh := storedCode(t, db, "alice@example.com")
		assert.Equal(t, 0, fresh.Attempts)
		assert.False(t, fresh.Verified)
	})

	t.Run("mail not configured", func(t *testing.T) {
		db := testutils.SetupTestDB(t, &Code{})
		mailMock := &testutils.MockMailSender{}
		mailMock.On("Configured").Return(false)
		svc := NewService(testutils.GetTestConfig(), db, mailMock, nil)

		_, err := svc.Issue("alice@example.com")
		assert.ErrorIs(t, err, ErrMailFailed)

		var count int64
		db.Model(&Code{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("send failure leaves the stored code behind", func(t *testing.T) {
		db := testutils.SetupTestDB(t, &Code{})
		mailMock := &testutils.MockMailSender{}
		mailMock.On("Configured").Return(true)
		mailMock.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
		svc := NewService(testutils.GetTestConfig(), db, mailMock, nil)

		_, err := svc.Issue("alice@example.com")
		assert.ErrorIs(t, err, ErrMailFailed)

		var count int64
		db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestService_Verify(t *testing.T) {
	t.Run("correct code marks verified without deleting", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		err = svc.Verify("alice@example.com", issued.Code)
		require.NoError(t, err)

		stored := storedCode(t, db, "alice@example.com")
		assert.True(t, stored.Verified)
	})

	t.Run("no code for email", func(t *testing.T) {
		svc, _, _ := setupService(t)

		err := svc.Verify("nobody@example.com", "123456")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("expired code is deleted", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		stale := time.Now().Add(-6 * time.Minute)
		require.NoError(t, db.Model(&Code{}).Where("id = ?", issued.ID).
			Update("created_at", stale).Error)

		err = svc.Verify("alice@example.com", issued.Code)
		assert.ErrorIs(t, err, ErrCodeExpired)

		var count int64
		db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("wrong code burns an attempt", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		err = svc.Verify("alice@example.com", wrongCode(issued.Code))
		var invalidErr *InvalidCodeError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, 2, invalidErr.AttemptsLeft)

		stored := storedCode(t, db, "alice@example.com")
		assert.Equal(t, 1, stored.Attempts)
		assert.False(t, stored.Verified)
	})

	t.Run("third wrong code deletes the record", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)
		bad := wrongCode(issued.Code)

		err = svc.Verify("alice@example.com", bad)
		var invalidErr *InvalidCodeError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, 2, invalidErr.AttemptsLeft)

		err = svc.Verify("alice@example.com", bad)
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, 1, invalidErr.AttemptsLeft)

		err = svc.Verify("alice@example.com", bad)
		assert.ErrorIs(t, err, ErrMaxAttempts)

		var count int64
		db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(0), count)

		// The next attempt finds nothing, even with the right code.
		err = svc.Verify("alice@example.com", issued.Code)
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("correct code after failed attempts still verifies", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)
		bad := wrongCode(issued.Code)

		var invalidErr *InvalidCodeError
		require.ErrorAs(t, svc.Verify("alice@example.com", bad), &invalidErr)
		require.ErrorAs(t, svc.Verify("alice@example.com", bad), &invalidErr)

		err = svc.Verify("alice@example.com", issued.Code)
		require.NoError(t, err)

		stored := storedCode(t, db, "alice@example.com")
		assert.True(t, stored.Verified)
		assert.Equal(t, 2, stored.Attempts)
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		svc, _, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		err = svc.Verify("ALICE@Example.COM", issued.Code)
		assert.NoError(t, err)
	})
}

func TestService_GetVerified(t *testing.T) {
	t.Run("unverified code", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Issue("alice@example.com")
		require.NoError(t, err)

		_, err = svc.GetVerified("alice@example.com")
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("no code at all", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.GetVerified("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("verified code inside the window", func(t *testing.T) {
		svc, _, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)
		require.NoError(t, svc.Verify("alice@example.com", issued.Code))

		code, err := svc.GetVerified("alice@example.com")
		require.NoError(t, err)
		assert.True(t, code.Verified)
	})

	t.Run("verified code gone stale is deleted", func(t *testing.T) {
		svc, db, _ := setupService(t)

		issued, err := svc.Issue("alice@example.com")
		require.NoError(t, err)
		require.NoError(t, svc.Verify("alice@example.com", issued.Code))

		stale := time.Now().Add(-6 * time.Minute)
		require.NoError(t, db.Model(&Code{}).Where("id = ?", issued.ID).
			Update("created_at", stale).Error)

		_, err = svc.GetVerified("alice@example.com")
		assert.ErrorIs(t, err, ErrCodeExpired)

		var count int64
		db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestService_Consume(t *testing.T) {
	svc, db, _ := setupService(t)

	issued, err := svc.Issue("alice@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Verify("alice@example.com", issued.Code))

	require.NoError(t, svc.Consume("alice@example.com"))

	var count int64
	db.Model(&Code{}).Where("email = ?", "alice@example.com").Count(&count)
	assert.Equal(t, int64(0), count)

	// Consuming again is a no-op.
	assert.NoError(t, svc.Consume("alice@example.com"))
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM  "))
	assert.Equal(t, "alice@example.com", NormalizeEmail("alice@example.com"))
}
