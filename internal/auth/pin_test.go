package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/holdapp/hold/internal/logging"
)

func newTestStore(t *testing.T) *PINStore {
	t.Helper()
	keyring.MockInit()
	s := NewPINStore(4, 6, logging.Default())
	t.Cleanup(func() { _ = s.Reset() })
	return s
}

func TestSetAndVerify(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("4821"))
	assert.True(t, s.Configured())

	assert.NoError(t, s.Verify("4821"))
	assert.ErrorIs(t, s.Verify("0000"), ErrPINMismatch)
}

func TestVerifyWithoutPIN(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.Configured())
	assert.ErrorIs(t, s.Verify("1234"), ErrNotConfigured)
}

func TestSetRejectsInvalidPINs(t *testing.T) {
	s := newTestStore(t)

	for _, pin := range []string{"", "123", "1234567", "12a4", "12 34"} {
		assert.ErrorIs(t, s.Set(pin), ErrInvalidPIN, "pin %q", pin)
	}
	assert.False(t, s.Configured())
}

func TestSetStoresDigestNotPlaintext(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("4821"))

	raw, err := keyring.Get(keyringService, userCodeKey)
	require.NoError(t, err)
	assert.NotEqual(t, "4821", raw)
	assert.Contains(t, raw, "$2", "bcrypt digest expected")
}

func TestSetReplacesExistingPIN(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("1111"))
	require.NoError(t, s.Set("2222"))

	assert.ErrorIs(t, s.Verify("1111"), ErrPINMismatch)
	assert.NoError(t, s.Verify("2222"))
}

func TestResetIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("4821"))
	require.NoError(t, s.Reset())
	assert.False(t, s.Configured())

	assert.NoError(t, s.Reset(), "second reset is a no-op")
}
