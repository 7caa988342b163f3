// Package keyring stores lift's secrets in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/foundersandcoders/lift/internal/constants"
)

var (
	ErrNotFound           = errors.New("secret not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Secret names one keyring entry under the lift service.
type Secret string

const (
	ConnectionString Secret = constants.DefaultKeyringUser
	APIToken         Secret = constants.APITokenKeyringUser
)

func (s Secret) Get() (string, error) {
	v, err := keyring.Get(constants.AppName, string(s))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func (s Secret) Set(value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", s)
	}
	if err := keyring.Set(constants.AppName, string(s), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", s, err)
	}
	return nil
}

func (s Secret) Delete() error {
	if err := keyring.Delete(constants.AppName, string(s)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", s, err)
	}
	return nil
}

// Lookup returns the secret, or "" when it is missing or the keyring is
// unreachable.
func (s Secret) Lookup() string {
	v, err := s.Get()
	if err != nil {
		return ""
	}
	return v
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
