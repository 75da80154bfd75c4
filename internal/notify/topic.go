package notify

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var ErrEndpointRequired = errors.New("subscription endpoint is required")

// Message is a single publication on a topic. Attributes drive
// subscription filter matching.
type Message struct {
	ID         string
	Subject    string
	Body       string
	Attributes map[string]string
}

// DeliveryFunc receives messages matched to a subscription's endpoint.
type DeliveryFunc func(endpoint string, msg Message)

type subscription struct {
	endpoint     string
	filterPolicy map[string][]string
	deliver      DeliveryFunc
}

// matches reports whether the message passes the subscription's filter
// policy. A subscription without a policy receives everything; a policy
// matches when every policy key is present on the message with one of the
// allowed values.
func (s *subscription) matches(msg Message) bool {
	for key, allowed := range s.filterPolicy {
		value, ok := msg.Attributes[key]
		if !ok {
			return false
		}

		found := false
		for _, v := range allowed {
			if v == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Topic is an in-process broadcast channel with attribute-based
// subscription filtering.
type Topic struct {
	name string

	mu   sync.RWMutex
	subs []*subscription
}

// NewTopic creates a named topic.
func NewTopic(name string) *Topic {
	return &Topic{name: name}
}

// Subscribe registers an endpoint on the topic. The filter policy may be
// nil, in which case the endpoint receives every publication. The delivery
// func may be nil; matched messages are then only logged.
func (t *Topic) Subscribe(endpoint string, filterPolicy map[string][]string, deliver DeliveryFunc) error {
	if endpoint == "" {
		return ErrEndpointRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.subs = append(t.subs, &subscription{
		endpoint:     endpoint,
		filterPolicy: filterPolicy,
		deliver:      deliver,
	})

	log.Printf("Subscription registered for %s on topic %s", endpoint, t.name)
	return nil
}

// Publish delivers the message to every matching subscription and returns
// the number of deliveries.
func (t *Topic) Publish(msg Message) int {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	delivered := 0
	for _, sub := range t.subs {
		if !sub.matches(msg) {
			continue
		}
		if sub.deliver != nil {
			sub.deliver(sub.endpoint, msg)
		} else {
			log.Printf("Message %s delivered to %s: %s", msg.ID, sub.endpoint, msg.Subject)
		}
		delivered++
	}

	return delivered
}
