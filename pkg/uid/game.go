package uid

import "github.com/google/uuid"

// GenerateGameID returns a random UUID for a human vs bot game.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateMatchID returns a random UUID for an arena match.
func GenerateMatchID() string {
	return uuid.NewString()
}

// IsValid reports whether id parses as a UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
