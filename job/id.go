package job

import "github.com/google/uuid"

// NewID generates a random job id for callers that do not supply one
// at enqueue time.
func NewID() string {
	return uuid.New().String()
}
