package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File layout: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext].
// The header is authenticated as GCM additional data.
const (
	magicHeader   = "ALBK"
	formatVersion = byte(0x01)
	saltLength    = 16
	nonceLength   = 12
	headerLength  = len(magicHeader) + 1 + saltLength + nonceLength
)

// Argon2id parameters (OWASP recommended).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// ErrCorrupt is returned when the keystore file cannot be decoded or
// authenticated, including when the master key is wrong.
var ErrCorrupt = errors.New("keystore: file is corrupt or the master key is wrong")

// FileKeystore implements Keystore as a JSON map sealed with AES-256-GCM.
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore opens a keystore at path using the machine-derived key.
func NewFileKeystore(path string) (*FileKeystore, error) {
	return NewFileKeystoreWithSource(path, MachineMasterKeySource{})
}

// NewFileKeystoreWithSource opens a keystore at path with the master key
// from source. The file itself is read lazily.
func NewFileKeystoreWithSource(path string, source MasterKeySource) (*FileKeystore, error) {
	masterKey, err := source.GetMasterKey()
	if err != nil {
		return nil, err
	}

	return &FileKeystore{
		path:      path,
		masterKey: masterKey,
	}, nil
}

// Path returns the backing file path.
func (f *FileKeystore) Path() string { return f.path }

// Set stores a key-value pair.
func (f *FileKeystore) Set(name, value string) error {
	if name == "" {
		return errors.New("keystore: empty key name")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	data[name] = value
	return f.saveData(data)
}

// Get retrieves a value by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return "", err
	}

	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}
	return value, nil
}

// Delete removes a key by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}

	delete(data, name)
	return f.saveData(data)
}

// List returns all stored key names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileKeystore) loadData() (map[string]string, error) {
	data := make(map[string]string)

	sealed, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if len(sealed) == 0 {
		return data, nil
	}

	plaintext, err := f.open(sealed)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return data, nil
}

func (f *FileKeystore) saveData(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sealed, err := f.seal(plaintext)
	if err != nil {
		return err
	}

	// Write to a sibling then rename so a crash never leaves a torn file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func deriveKey(masterKey, salt []byte) []byte {
	return argon2.IDKey(masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (f *FileKeystore) seal(plaintext []byte) ([]byte, error) {
	header := make([]byte, headerLength)
	copy(header, magicHeader)
	header[len(magicHeader)] = formatVersion

	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	gcm, err := newGCM(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}
	return gcm.Seal(header, nonce, plaintext, header), nil
}

func (f *FileKeystore) open(sealed []byte) ([]byte, error) {
	if !isKeystoreFile(sealed) {
		return nil, ErrCorrupt
	}

	header := sealed[:headerLength]
	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]

	gcm, err := newGCM(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, sealed[headerLength:], header)
	if err != nil {
		return nil, ErrCorrupt
	}
	return plaintext, nil
}

func isKeystoreFile(data []byte) bool {
	return len(data) >= headerLength &&
		string(data[:len(magicHeader)]) == magicHeader &&
		data[len(magicHeader)] == formatVersion
}

var _ Keystore = (*FileKeystore)(nil)
