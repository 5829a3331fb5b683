package mail

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/jordan-wright/email"
)

// Message is a single outbound report: HTML body plus one named CSV
// attachment.
type Message struct {
	From           string
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// Sender delivers a message best-effort. There is no retry and no
// delivery confirmation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sesAPI interface {
	SendEmail(
		ctx context.Context,
		params *sesv2.SendEmailInput,
		optFns ...func(*sesv2.Options),
	) (*sesv2.SendEmailOutput, error)
}

// SESSender sends the assembled MIME message through SES v2.
type SESSender struct {
	client sesAPI
}

func NewSESSender(cfg awssdk.Config) *SESSender {
	return &SESSender{
		client: sesv2.NewFromConfig(cfg),
	}
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	raw, err := buildRawMessage(msg)
	if err != nil {
		return err
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

func buildRawMessage(msg Message) ([]byte, error) {
	e := email.NewEmail()
	e.From = msg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTMLBody)

	if len(msg.Attachment) > 0 {
		_, err := e.Attach(bytes.NewReader(msg.Attachment), msg.AttachmentName, "text/csv")
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", msg.AttachmentName, err)
		}
	}

	raw, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble email: %w", err)
	}
	return raw, nil
}
