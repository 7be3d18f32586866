package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ushki/dndsheet/internal/service"
)

func newTestTokenProvider(t *testing.T) *service.TokenProvider {
	t.Helper()
	p, err := service.NewTokenProvider([]byte("test-secret-0123456789"), "dndsheet-test", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return p
}

func TestTokenRoundTrip(t *testing.T) {
	p := newTestTokenProvider(t)

	pair, err := p.Issue("aragorn")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	username, err := p.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "aragorn", username)

	username, err = p.Parse(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "aragorn", username)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	p := newTestTokenProvider(t)
	other, err := service.NewTokenProvider([]byte("another-secret-entirely"), "dndsheet-test", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := p.Issue("aragorn")
	require.NoError(t, err)

	_, err = other.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenExpiredRejected(t *testing.T) {
	p, err := service.NewTokenProvider([]byte("test-secret-0123456789"), "dndsheet-test", time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)

	pair, err := p.Issue("aragorn")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = p.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenGarbageRejected(t *testing.T) {
	p := newTestTokenProvider(t)

	_, err := p.Parse("not.a.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestTokenProviderRejectsBadConfig(t *testing.T) {
	_, err := service.NewTokenProvider(nil, "x", time.Minute, time.Minute)
	assert.Error(t, err)

	_, err = service.NewTokenProvider([]byte("secret"), "x", 0, time.Minute)
	assert.Error(t, err)
}
