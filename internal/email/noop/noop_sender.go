package noop

import (
	"context"
	"log"

	"gstbooks/internal/port"
)

type noopSender struct{}

// NewNoopSender returns an EmailSender that logs instead of sending.
// Used in development and test environments.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	log.Printf("[noop email] invoice %s to %s <%s> (%d byte attachment)",
		msg.InvoiceNumber, msg.ToName, msg.ToAddress, len(msg.Attachment))
	return nil
}
