// Package credential stores the WaterWise session token in the system
// keyring so the terminal client stays logged in across runs.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "waterwise"

// sessionTokenKey is the keyring entry holding the current session token.
const sessionTokenKey = "session-token"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/waterwise/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("waterwise-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// SessionToken retrieves the stored session token. Returns an empty
// string if no token is stored.
func SessionToken() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(sessionTokenKey)
	if err == keyring.ErrKeyNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting session token: %w", err)
	}

	return string(item.Data), nil
}

// SetSessionToken stores the session token in the system keyring.
func SetSessionToken(token string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  sessionTokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("setting session token: %w", err)
	}

	return nil
}

// ClearSessionToken removes the stored session token, logging the
// user out of subsequent runs.
func ClearSessionToken() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(sessionTokenKey)
	if err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("clearing session token: %w", err)
	}

	return nil
}
