package port

import "context"

// InvoiceEmail carries everything needed to deliver an invoice to a
// customer: the rendered document plus addressing metadata.
type InvoiceEmail struct {
	ToAddress     string
	ToName        string
	InvoiceNumber string
	TotalAmount   string
	OrgName       string
	Attachment    []byte
	AttachmentExt string
}

// EmailSender abstracts outbound email delivery.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
