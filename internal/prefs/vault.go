package prefs

import (
	"errors"
	"fmt"

	zkr "github.com/zalando/go-keyring"
)

// DefaultKeyringService is the OS keychain service credentials are filed under.
const DefaultKeyringService = "prefsctl"

// Vault stores session credentials outside the preferences file.
type Vault interface {
	Get(account string) (string, error)
	Set(account, secret string) error
	Delete(account string) error
}

// KeyringVault keeps credentials in the OS keychain.
type KeyringVault struct {
	Service string
}

// NewKeyringVault returns a vault for service, or the default service when empty.
func NewKeyringVault(service string) *KeyringVault {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringVault{Service: service}
}

// Get retrieves the credential for account.
func (k *KeyringVault) Get(account string) (string, error) {
	secret, err := zkr.Get(k.Service, account)
	if err != nil {
		if errors.Is(err, zkr.ErrNotFound) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("keychain get: %w", err)
	}
	return secret, nil
}

// Set stores the credential for account.
func (k *KeyringVault) Set(account, secret string) error {
	if err := zkr.Set(k.Service, account, secret); err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

// Delete removes the credential for account. A missing entry is not an error.
func (k *KeyringVault) Delete(account string) error {
	if err := zkr.Delete(k.Service, account); err != nil && !errors.Is(err, zkr.ErrNotFound) {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}

// KeyringAvailable probes the keychain with a write/delete cycle.
func KeyringAvailable(service string) bool {
	if service == "" {
		service = DefaultKeyringService
	}
	probe := service + "-probe"
	if err := zkr.Set(probe, "probe", "ok"); err != nil {
		return false
	}
	_ = zkr.Delete(probe, "probe")
	return true
}

// NopVault discards credentials. Used when the keychain is disabled.
type NopVault struct{}

func (NopVault) Get(string) (string, error) { return "", ErrNoCredential }

func (NopVault) Set(string, string) error { return nil }

func (NopVault) Delete(string) error { return nil }
