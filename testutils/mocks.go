package testutils

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMailSender satisfies the OTP service's mail dependency.
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendOTP(to, code string, validity time.Duration) error {
	args := m.Called(to, code, validity)
	return args.Error(0)
}

func (m *MockMailSender) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockObjectStore satisfies the file service's storage dependency.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
