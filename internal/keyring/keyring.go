// Package keyring stores the Notion integration token in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	Service = "firstdynamics"
	User    = "notion-token"
)

var (
	// ErrNotFound is returned when no token is stored.
	ErrNotFound = errors.New("token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken returns the stored token or ErrNotFound.
func GetToken() (string, error) {
	token, err := keyring.Get(Service, User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(Service, User, token); err != nil {
		return fmt.Errorf("storing token in keyring: %w", err)
	}
	return nil
}

func DeleteToken() error {
	err := keyring.Delete(Service, User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting token from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers at all. A missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
