package directory

import (
	"log"
)

// Member is a single entry in an identity-directory group listing.
type Member struct {
	Username string
	Email    string
	Sub      string
}

// GroupClient lists the members of a named group page by page. An empty
// next token on the response means the listing is exhausted.
type GroupClient interface {
	ListUsersInGroup(group, nextToken string) (members []Member, next string, err error)
}

// GroupDirectory resolves addresses by listing all members of a fixed
// group and filtering client-side by membership in the requested ids.
type GroupDirectory struct {
	client GroupClient
	group  string
}

// NewGroupDirectory creates a group-listing Directory.
func NewGroupDirectory(client GroupClient, group string) *GroupDirectory {
	return &GroupDirectory{client: client, group: group}
}

// ResolveEmails pages through the group until exhausted and returns the
// addresses of members whose sub appears in userIDs. A listing failure is
// logged and yields no addresses.
func (d *GroupDirectory) ResolveEmails(userIDs []string) []string {
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}

	var emails []string
	token := ""
	for {
		members, next, err := d.client.ListUsersInGroup(d.group, token)
		if err != nil {
			log.Printf("Error fetching user emails from group %s: %v", d.group, err)
			return nil
		}

		for _, m := range members {
			if wanted[m.Sub] && m.Email != "" {
				emails = append(emails, m.Email)
			}
		}

		if next == "" {
			break
		}
		token = next
	}

	return emails
}
