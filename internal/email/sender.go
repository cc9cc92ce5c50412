// Package email composes and delivers transactional mail via SESv2.
package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/shopstack-dev/storefront/internal/aws"
)

// Sender sends composed messages through SES.
type Sender struct {
	client aws.SESAPI
	from   string
}

// NewSender returns a Sender bound to a verified from-address.
func NewSender(client aws.SESAPI, from string) *Sender {
	return &Sender{client: client, from: from}
}

// Send delivers a message. The caller decides whether a failure matters;
// for order confirmations it never does.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &msg.Subject},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: &msg.Body},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
