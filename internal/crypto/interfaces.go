package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_crypto.go -package=mock

// CredentialStore is an opaque secure store for small secrets (session
// tokens). Save and Delete report success as a bool rather than an error:
// callers treat a failed save as "session will not survive restart" and
// carry on.
type CredentialStore interface {
	// Save seals data and persists it under key, overwriting any prior
	// value. Returns false when sealing or persistence fails.
	Save(key string, data []byte) bool

	// Load opens the sealed value stored under key. The second return is
	// false when no value exists or it cannot be opened.
	Load(key string) ([]byte, bool)

	// Delete removes the value stored under key. Returns false only on a
	// filesystem failure; deleting an absent key succeeds.
	Delete(key string) bool
}
