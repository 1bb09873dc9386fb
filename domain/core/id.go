package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	PostID        ID
	PublicationID ID
)

// String conversions for domain IDs
func (id PostID) String() string        { return ID(id).String() }
func (id PublicationID) String() string { return ID(id).String() }

// ParsePostID parses a string into PostID
func ParsePostID(s string) (PostID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("post ID cannot be empty")
	}
	return PostID(s), nil
}

// ParsePublicationID parses a string into PublicationID
func ParsePublicationID(s string) (PublicationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("publication ID cannot be empty")
	}
	return PublicationID(s), nil
}
