package types

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// idPattern is the 8-4-4-4-12 hex layout shared by every generated ID. It is
// stricter than uuid.Parse, which also accepts braces, the urn prefix and
// the undashed form.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NewID generates a UUID v7 for entity IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// ValidateID checks the syntax of a user, profile, or post ID. It never
// consults a store.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return nil
}
