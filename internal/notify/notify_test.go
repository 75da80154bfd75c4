package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	endpoint string
	messages []Message
}

func (r *recorder) deliver(endpoint string, msg Message) {
	r.endpoint = endpoint
	r.messages = append(r.messages, msg)
}

func TestSubscribe_RequiresEndpoint(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	err := topic.Subscribe("", nil, nil)
	assert.ErrorIs(t, err, ErrEndpointRequired)
}

func TestPublish_NoPolicyReceivesEverything(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	rec := &recorder{}
	require.NoError(t, topic.Subscribe("ops@example.com", nil, rec.deliver))

	delivered := topic.Publish(Message{Subject: "hello", Attributes: map[string]string{"email": "x"}})

	assert.Equal(t, 1, delivered)
	require.Len(t, rec.messages, 1)
	assert.Equal(t, "ops@example.com", rec.endpoint)
	assert.NotEmpty(t, rec.messages[0].ID)
}

func TestPublish_FilterPolicyMatching(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	alice := &recorder{}
	bob := &recorder{}
	require.NoError(t, topic.Subscribe("alice@example.com", map[string][]string{
		"email": {"alice@example.com"},
		"group": {"Team-Members"},
	}, alice.deliver))
	require.NoError(t, topic.Subscribe("bob@example.com", map[string][]string{
		"email": {"bob@example.com"},
		"group": {"Team-Members"},
	}, bob.deliver))

	delivered := topic.Publish(Message{
		Subject: "for alice",
		Attributes: map[string]string{
			"email": "alice@example.com",
			"group": "Team-Members",
		},
	})

	assert.Equal(t, 1, delivered)
	assert.Len(t, alice.messages, 1)
	assert.Empty(t, bob.messages)

	// A message missing a policy key matches no filtered subscription
	delivered = topic.Publish(Message{
		Subject:    "untagged",
		Attributes: map[string]string{"emails": "a,b"},
	})
	assert.Zero(t, delivered)
}

func TestBroadcast_JoinsRecipientsWithAdmin(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	rec := &recorder{}
	require.NoError(t, topic.Subscribe("audit@example.com", nil, rec.deliver))

	d := NewDispatcher(topic, "admin@example.com", "Team-Members")
	err := d.Broadcast([]string{"alice@example.com", "bob@example.com"}, "New Task Assigned: Ship v1", "body")
	require.NoError(t, err)

	require.Len(t, rec.messages, 1)
	assert.Equal(t, "alice@example.com,bob@example.com,admin@example.com", rec.messages[0].Attributes["emails"])
	assert.Equal(t, "New Task Assigned: Ship v1", rec.messages[0].Subject)
}

func TestBroadcast_RequiresRecipients(t *testing.T) {
	d := NewDispatcher(NewTopic("t"), "admin@example.com", "Team-Members")
	assert.ErrorIs(t, d.Broadcast(nil, "s", "b"), ErrNoRecipients)
}

func TestFilteredSend_OneMessagePerRecipient(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	all := &recorder{}
	require.NoError(t, topic.Subscribe("audit@example.com", nil, all.deliver))

	d := NewDispatcher(topic, "admin@example.com", "Team-Members")
	err := d.FilteredSend([]string{"alice@example.com", "bob@example.com"}, "Task Reminder: Ship v1", "body")
	require.NoError(t, err)

	require.Len(t, all.messages, 2)
	assert.Equal(t, "alice@example.com", all.messages[0].Attributes["email"])
	assert.Equal(t, "bob@example.com", all.messages[1].Attributes["email"])
	assert.Equal(t, "Team-Members", all.messages[0].Attributes["group"])
}

func TestFilteredSend_RequiresRecipients(t *testing.T) {
	d := NewDispatcher(NewTopic("t"), "admin@example.com", "Team-Members")
	assert.ErrorIs(t, d.FilteredSend(nil, "s", "b"), ErrNoRecipients)
}

func TestDispatcherSubscribe_ScopesToOwnSends(t *testing.T) {
	topic := NewTopic("notify-on-create-task")
	d := NewDispatcher(topic, "admin@example.com", "Team-Members")

	require.NoError(t, d.Subscribe("alice@example.com"))

	// Only the message addressed to alice matches her filter policy
	delivered := topic.Publish(Message{
		Attributes: map[string]string{"email": "alice@example.com", "group": "Team-Members"},
	})
	assert.Equal(t, 1, delivered)

	delivered = topic.Publish(Message{
		Attributes: map[string]string{"email": "bob@example.com", "group": "Team-Members"},
	})
	assert.Zero(t, delivered)
}
