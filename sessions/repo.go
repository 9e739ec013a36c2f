package sessions

// Store defines the interface for session storage operations. Records are
// created on a successful code exchange and mutated in place on refresh;
// nothing deletes them short of process termination.
type Store interface {
	// Create generates a fresh session handle and stores a TokenRecord
	// whose expiry is now plus expiresIn seconds. Returns the handle.
	Create(accessToken, refreshToken string, expiresIn int) (string, error)

	// Get retrieves a session's record by handle
	Get(sessionID string) (TokenRecord, error)

	// Update mutates a record in place after a refresh. An empty
	// refreshToken retains the stored one (Spotify does not always
	// rotate refresh tokens).
	Update(sessionID, accessToken string, expiresIn int, refreshToken string) error
}
