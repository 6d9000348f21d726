package uid

import "github.com/google/uuid"

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// Short returns the first segment of an identifier, for compact log lines.
func Short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
