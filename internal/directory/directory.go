package directory

import (
	"log"

	"github.com/taskflow-hq/taskflow-api/internal/repository"
)

// Directory resolves opaque user identifiers to contact addresses. The
// contract is best-effort: unresolvable ids are dropped silently.
type Directory interface {
	ResolveEmails(userIDs []string) []string
}

// StoreDirectory resolves addresses by point lookups against the Users
// store, skipping and logging individual failures.
type StoreDirectory struct {
	users repository.UserRepository
}

// NewStoreDirectory creates a store-backed Directory.
func NewStoreDirectory(users repository.UserRepository) *StoreDirectory {
	return &StoreDirectory{users: users}
}

// ResolveEmails looks up each user ID and returns the addresses that
// resolved.
func (d *StoreDirectory) ResolveEmails(userIDs []string) []string {
	var emails []string
	for _, id := range userIDs {
		user, err := d.users.FindByID(id)
		if err != nil {
			log.Printf("Error fetching email for user ID %s: %v", id, err)
			continue
		}
		emails = append(emails, user.Email)
	}
	return emails
}
