// Package auth gates access to clipboard history behind a PIN held in the
// platform keyring. This is secret storage and comparison, not a hardened
// security primitive: if the keyring is unavailable the app fails open to
// the first-run setup flow rather than locking the user out.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"

	"github.com/holdapp/hold/internal/logging"
)

const (
	// keyringService namespaces Hold's entry in the platform keyring.
	keyringService = "hold"
	// userCodeKey is the single key holding the PIN digest. Its presence
	// signals "PIN configured"; absence routes to first-run setup.
	userCodeKey = "userCode"
)

var (
	ErrNotConfigured = errors.New("auth: no PIN configured")
	ErrPINMismatch   = errors.New("auth: incorrect PIN")
	ErrInvalidPIN    = errors.New("auth: PIN must be 4-6 digits")
)

// PINStore manages the stored PIN digest.
type PINStore struct {
	service string
	minLen  int
	maxLen  int
	log     *logging.Logger
}

func NewPINStore(minLen, maxLen int, log *logging.Logger) *PINStore {
	return &PINStore{
		service: keyringService,
		minLen:  minLen,
		maxLen:  maxLen,
		log:     log,
	}
}

// Configured reports whether a PIN is set. Keyring unavailability reads as
// "not configured" so startup routes to setup instead of crashing.
func (s *PINStore) Configured() bool {
	_, err := keyring.Get(s.service, userCodeKey)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			s.log.Warnf("keyring unavailable, routing to setup: %v", err)
		}
		return false
	}
	return true
}

// Set validates and stores a new PIN, replacing any existing one. Only the
// bcrypt digest reaches the keyring.
func (s *PINStore) Set(pin string) error {
	if err := s.validate(pin); err != nil {
		return err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("digest PIN: %w", err)
	}

	if err := keyring.Set(s.service, userCodeKey, string(digest)); err != nil {
		return fmt.Errorf("store PIN: %w", err)
	}
	return nil
}

// Verify checks pin against the stored digest.
func (s *PINStore) Verify(pin string) error {
	digest, err := keyring.Get(s.service, userCodeKey)
	if err != nil {
		return ErrNotConfigured
	}

	if bcrypt.CompareHashAndPassword([]byte(digest), []byte(pin)) != nil {
		return ErrPINMismatch
	}
	return nil
}

// Reset removes the stored PIN. Resetting when none is stored is a no-op.
func (s *PINStore) Reset() error {
	err := keyring.Delete(s.service, userCodeKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete PIN: %w", err)
	}
	return nil
}

func (s *PINStore) validate(pin string) error {
	if len(pin) < s.minLen || len(pin) > s.maxLen {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if !strings.ContainsRune("0123456789", r) {
			return ErrInvalidPIN
		}
	}
	return nil
}
