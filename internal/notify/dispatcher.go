package notify

import (
	"errors"
	"strings"
)

var ErrNoRecipients = errors.New("at least one recipient is required")

// Dispatcher publishes task notifications on a shared topic. Broadcast
// sends one message carrying all recipients in a single attribute;
// FilteredSend sends one message per recipient so that each recipient's
// subscription filter matches only messages addressed to them.
type Dispatcher struct {
	topic      *Topic
	adminEmail string
	group      string
}

// NewDispatcher creates a Dispatcher publishing to topic. The admin email
// is CC'd on broadcasts; group tags filtered sends.
func NewDispatcher(topic *Topic, adminEmail, group string) *Dispatcher {
	return &Dispatcher{
		topic:      topic,
		adminEmail: adminEmail,
		group:      group,
	}
}

// Broadcast publishes one message addressed to all recipients plus the
// admin, comma-joined in the emails attribute.
func (d *Dispatcher) Broadcast(recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	all := append(append([]string{}, recipients...), d.adminEmail)
	d.topic.Publish(Message{
		Subject: subject,
		Body:    body,
		Attributes: map[string]string{
			"emails": strings.Join(all, ","),
		},
	})

	return nil
}

// FilteredSend publishes one message per recipient with email and group
// attributes, so only that recipient's subscription filter matches.
func (d *Dispatcher) FilteredSend(recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	for _, recipient := range recipients {
		d.topic.Publish(Message{
			Subject: subject,
			Body:    body,
			Attributes: map[string]string{
				"email": recipient,
				"group": d.group,
			},
		})
	}

	return nil
}

// Subscribe registers email on the topic with a filter policy scoping it
// to its own filtered sends.
func (d *Dispatcher) Subscribe(email string) error {
	return d.topic.Subscribe(email, map[string][]string{
		"email": {email},
		"group": {d.group},
	}, nil)
}
