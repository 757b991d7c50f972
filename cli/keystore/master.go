package keystore

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// EnvMasterKey names the variable holding the keystore master key.
const EnvMasterKey = "ALBERT_MASTER_KEY"

// ErrNoMasterKey is returned by a source that has nothing to offer.
var ErrNoMasterKey = errors.New("keystore: no master key available")

// MasterKeySource yields the secret the keystore encryption key is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// MasterKeyFunc adapts a function to MasterKeySource.
type MasterKeyFunc func() ([]byte, error)

// GetMasterKey implements MasterKeySource.
func (f MasterKeyFunc) GetMasterKey() ([]byte, error) { return f() }

// StaticMasterKey always returns the same key. Mostly useful in tests.
type StaticMasterKey []byte

// GetMasterKey implements MasterKeySource.
func (k StaticMasterKey) GetMasterKey() ([]byte, error) {
	if len(k) == 0 {
		return nil, ErrNoMasterKey
	}
	return []byte(k), nil
}

// EnvMasterKeySource reads the master key from an environment variable.
type EnvMasterKeySource struct {
	Var string
}

// GetMasterKey implements MasterKeySource.
func (s EnvMasterKeySource) GetMasterKey() ([]byte, error) {
	name := s.Var
	if name == "" {
		name = EnvMasterKey
	}
	v := os.Getenv(name)
	if v == "" {
		return nil, ErrNoMasterKey
	}
	return []byte(v), nil
}

// PromptMasterKeySource asks for the master key on a terminal without echo.
// It yields ErrNoMasterKey when In is not a terminal.
type PromptMasterKeySource struct {
	In     *os.File
	Out    io.Writer
	Prompt string
}

// GetMasterKey implements MasterKeySource.
func (s PromptMasterKeySource) GetMasterKey() ([]byte, error) {
	in := s.In
	if in == nil {
		in = os.Stdin
	}
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNoMasterKey
	}

	out := s.Out
	if out == nil {
		out = os.Stderr
	}
	prompt := s.Prompt
	if prompt == "" {
		prompt = "Keystore master key: "
	}
	fmt.Fprint(out, prompt)
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("read master key: %w", err)
	}
	if len(key) == 0 {
		return nil, ErrNoMasterKey
	}
	return key, nil
}

// MachineMasterKeySource derives a key from the host and user names.
// It is predictable and only protects against casual reads of the file.
type MachineMasterKeySource struct{}

// GetMasterKey implements MasterKeySource.
func (MachineMasterKeySource) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	sum := sha256.Sum256([]byte(hostname + ":" + username + ":albert-keystore"))
	return sum[:], nil
}

// ChainMasterKeySource tries each source in order and returns the first key.
// A source failing with ErrNoMasterKey is skipped; any other error stops the chain.
type ChainMasterKeySource []MasterKeySource

// GetMasterKey implements MasterKeySource.
func (c ChainMasterKeySource) GetMasterKey() ([]byte, error) {
	for _, src := range c {
		key, err := src.GetMasterKey()
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrNoMasterKey) {
			return nil, err
		}
	}
	return nil, ErrNoMasterKey
}

// DefaultMasterKeySource is ALBERT_MASTER_KEY, then a terminal prompt, then
// the machine-derived key.
func DefaultMasterKeySource() MasterKeySource {
	return ChainMasterKeySource{
		EnvMasterKeySource{},
		PromptMasterKeySource{},
		MachineMasterKeySource{},
	}
}
