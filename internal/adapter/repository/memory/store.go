package memory

import (
	domain "decorator-user-service/internal/domain/user"

	"github.com/google/uuid"
)

// Well-known identifiers of the seeded users.
var (
	AliceID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	BobID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// Store is a read-only, in-process collection of users.
type Store struct {
	users []domain.User
}

// NewStore creates a Store holding a private copy of users.
func NewStore(users ...domain.User) *Store {
	owned := make([]domain.User, len(users))
	copy(owned, users)
	return &Store{users: owned}
}

// NewSeedStore creates a Store with the fixed seed users.
func NewSeedStore() *Store {
	return NewStore(
		domain.New(AliceID, "Alice Smith", "alice@example.com"),
		domain.New(BobID, "Bob Jones", "bob@example.com"),
	)
}

// Len returns the number of users in the store.
func (s *Store) Len() int {
	return len(s.users)
}
