// Package notify composes the expiration alert email and hands it to a
// transport: implicit-TLS SMTP or AWS SES.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Subject is the subject line of every alert.
const Subject = "Pantry Expiration Alert"

// Message is one outbound plain-text email.
type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier sends expiration alerts from a fixed address.
type Notifier struct {
	from   string
	sender Sender
}

// New returns a Notifier that sends from the given address through sender.
func New(from string, sender Sender) *Notifier {
	return &Notifier{from: from, sender: sender}
}

// Alert sends one message listing items to the address to. When items is
// empty nothing is sent and Alert returns false.
func (n *Notifier) Alert(ctx context.Context, to string, items types.PantryTable) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	msg := Compose(n.from, to, items)
	if err := n.sender.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Compose builds the alert message for items.
func Compose(from, to string, items types.PantryTable) Message {
	var b strings.Builder
	b.WriteString("Hey!\n\nThese pantry items are expiring soon:\n\n")
	for _, r := range items {
		date := r.ExpirationDate
		if d, ok := r.Expires(time.UTC); ok {
			date = d.Format(types.DateLayout)
		}
		fmt.Fprintf(&b, "• %s (Expires: %s)\n", r.Item, date)
	}
	b.WriteString("\nMake sure to use them up or toss what's bad!\n")

	return Message{
		ID:      newMessageID(from),
		From:    from,
		To:      to,
		Subject: Subject,
		Body:    b.String(),
	}
}

// newMessageID returns an RFC 5322 message id under the sender's domain.
func newMessageID(from string) string {
	domain := "pantry.local"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.Must(uuid.NewV7()).String(), domain)
}
