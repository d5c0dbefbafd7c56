package user

import "github.com/google/uuid"

// User represents a user entity in the system.
// Values are never mutated once constructed; stores hand out copies.
type User struct {
	ID    uuid.UUID `json:"id"`    // ID is the unique identifier for the user
	Name  string    `json:"name"`  // Name is the full name of the user
	Email string    `json:"email"` // Email is the email address of the user
}

// New creates a User value.
func New(id uuid.UUID, name, email string) User {
	return User{ID: id, Name: name, Email: email}
}
