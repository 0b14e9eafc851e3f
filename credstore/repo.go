// Package credstore persists the bearer token across process restarts. It is
// the only durable client-side credential state; the session service is its
// single writer.
package credstore

// Repo defines the interface for credential storage operations.
type Repo interface {
	// Save persists the token, overwriting any prior value. Persistence
	// failure is a silent no-op: the session simply won't survive a restart.
	Save(token string)

	// Load reads the persisted token. ok is false when no token is stored.
	Load() (token string, ok bool)

	// Clear removes the persisted token. Safe to call when nothing is stored.
	Clear()
}
