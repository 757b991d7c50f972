package core

import "os"

// Secret holds an API credential and keeps it out of logs and serialized output.
// String, GoString, JSON and text marshaling all yield a redacted placeholder.
//
//	key := core.NewSecret("sk-abc123")
//	fmt.Println(key)        // [REDACTED]
//	key.Expose()            // "sk-abc123"
type Secret struct {
	value string
}

const redacted = "[REDACTED]"

// NewSecret wraps a credential value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// SecretFromEnv reads a credential from the named environment variable.
// The returned Secret is empty when the variable is unset.
func SecretFromEnv(name string) Secret {
	return Secret{value: os.Getenv(name)}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText implements encoding.TextMarshaler, which also covers YAML.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Expose returns the raw credential. Only the transport should need it.
func (s Secret) Expose() string {
	return s.value
}

// Bearer returns the Authorization header value for this credential.
func (s Secret) Bearer() string {
	return "Bearer " + s.value
}

// IsEmpty reports whether no credential is set.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
