package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstbooks/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates an EmailSender backed by Amazon SES v2.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	raw, err := buildRawMessage(s.fromAddress, s.fromName, msg)
	if err != nil {
		return fmt.Errorf("building invoice email: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("sending invoice email: %w", err)
	}
	return nil
}

// buildRawMessage assembles a multipart MIME message with an HTML body
// and the rendered invoice attached. SES simple content does not
// support attachments, so the raw API is used.
func buildRawMessage(fromAddress, fromName string, msg port.InvoiceEmail) ([]byte, error) {
	boundary := fmt.Sprintf("gstbooks-%d", time.Now().UnixNano())
	subject := fmt.Sprintf("Invoice %s from %s", msg.InvoiceNumber, msg.OrgName)
	filename := fmt.Sprintf("invoice-%s.%s", msg.InvoiceNumber, msg.AttachmentExt)
	contentType := mime.TypeByExtension("." + msg.AttachmentExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), fromAddress)
	fmt.Fprintf(&buf, "To: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", msg.ToName), msg.ToAddress)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(buildHTMLBody(msg))
	buf.WriteString("\r\n")

	if len(msg.Attachment) > 0 {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", filename)
		buf.WriteString("\r\n")

		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

func buildHTMLBody(msg port.InvoiceEmail) string {
	name := msg.ToName
	if name == "" {
		name = "Customer"
	}
	return fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Please find attached invoice <strong>%s</strong> for <strong>%s</strong> from %s.</p>
<p>If you have any questions about this invoice, reply to this email.</p>
<p>Regards,<br>%s</p>
</body></html>`, name, msg.InvoiceNumber, msg.TotalAmount, msg.OrgName, msg.OrgName)
}
