package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelwise/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notification messages. Delivery is a stand-in:
// messages are logged until an SMTP relay is wired into the deployment.
type Sender struct {
	from string
}

func NewSender(from string) *Sender {
	return &Sender{from: from}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	logrus.WithFields(logrus.Fields{
		"from":      s.from,
		"to":        event.Email,
		"reference": event.Reference,
	}).Infof("notify: %s", subject(event))
	return nil
}

func subject(event kafka.BookingEvent) string {
	switch event.Type {
	case "booking_created":
		return fmt.Sprintf("Your booking %s to %s is confirmed", event.Reference, event.Destination)
	case "booking_cancelled":
		return fmt.Sprintf("Your booking %s has been cancelled", event.Reference)
	case "booking_updated":
		return fmt.Sprintf("Your booking %s has been updated", event.Reference)
	default:
		return fmt.Sprintf("Update on booking %s", event.Reference)
	}
}
