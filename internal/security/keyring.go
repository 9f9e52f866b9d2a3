// Package security provides secure credential handling for hdfs-connect.
package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/acolita/hdfs-connect/internal/ports"
)

// KeyringStore stores secrets in the OS keyring (macOS Keychain, Linux
// Secret Service, Windows Credential Manager).
type KeyringStore struct {
	enabled bool
	mu      sync.RWMutex
}

// NewKeyringStore creates a new keyring store.
// If the system keyring is not available, the store is disabled.
func NewKeyringStore() *KeyringStore {
	ks := &KeyringStore{enabled: true}

	if err := keyring.Set(KeyringService, checkKey, "check"); err != nil {
		slog.Debug("keyring not available, secrets will not be persisted",
			slog.String("error", err.Error()),
		)
		ks.enabled = false
		return ks
	}
	_ = keyring.Delete(KeyringService, checkKey)

	slog.Debug("keyring storage enabled")
	return ks
}

// Enabled returns true if the keyring is available and enabled.
func (ks *KeyringStore) Enabled() bool {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return ks.enabled
}

// SetEnabled allows enabling/disabling keyring usage.
func (ks *KeyringStore) SetEnabled(enabled bool) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.enabled = enabled
}

// Set stores secret under key. The value is base64 encoded.
func (ks *KeyringStore) Set(key string, secret []byte) error {
	if !ks.Enabled() {
		return errors.New(errKeyringNotAvailable)
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err := keyring.Set(KeyringService, key, encoded); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}

	slog.Debug("stored secret in keyring", slog.String("entry", key))
	return nil
}

// Get returns the secret stored under key, or nil if there is none.
func (ks *KeyringStore) Get(key string) ([]byte, error) {
	if !ks.Enabled() {
		return nil, errors.New(errKeyringNotAvailable)
	}

	encoded, err := keyring.Get(KeyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	secret, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return secret, nil
}

// Delete removes the secret stored under key.
func (ks *KeyringStore) Delete(key string) error {
	if !ks.Enabled() {
		return errors.New(errKeyringNotAvailable)
	}

	if err := keyring.Delete(KeyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// PassphraseKey returns the keyring entry holding the ticket-cache
// passphrase of the named preferences profile.
func PassphraseKey(profile string) string {
	return fmt.Sprintf(keyPassphraseFmt, profile)
}

var _ ports.SecretStore = (*KeyringStore)(nil)
