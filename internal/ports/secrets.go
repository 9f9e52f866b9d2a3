package ports

// SecretStore persists secrets outside the preferences file.
type SecretStore interface {
	// Enabled reports whether the store can be used.
	Enabled() bool

	// Get returns the secret stored under key, or nil if there is none.
	Get(key string) ([]byte, error)

	// Set stores secret under key.
	Set(key string, secret []byte) error

	// Delete removes the secret stored under key. Missing keys are not an error.
	Delete(key string) error
}
