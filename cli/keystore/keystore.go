// Package keystore keeps Albert API keys in an encrypted file under the
// user's Albert directory.
package keystore

import (
	"errors"
	"path/filepath"

	"github.com/petal-labs/albert-go/cli/config"
)

// Keystore stores API keys by reference name.
type Keystore interface {
	// Set stores a key under name, replacing any previous value.
	Set(name, value string) error
	// Get retrieves a value by name. Returns *ErrKeyNotFound if absent.
	Get(name string) (string, error)
	Delete(name string) error
	// List returns all stored names, sorted.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// IsNotFound reports whether err is an *ErrKeyNotFound.
func IsNotFound(err error) bool {
	var nf *ErrKeyNotFound
	return errors.As(err, &nf)
}

// DefaultKeystorePath returns ~/.albert/keys.enc (%USERPROFILE%\.albert on Windows).
func DefaultKeystorePath() string {
	return filepath.Join(config.Dir(), "keys.enc")
}

// NewKeystore opens the default keystore with the default master key chain.
func NewKeystore() (Keystore, error) {
	return NewFileKeystoreWithSource(DefaultKeystorePath(), DefaultMasterKeySource())
}
