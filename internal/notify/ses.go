package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer sends notifications through Amazon SES with text and HTML
// alternatives.
type SESMailer struct {
	client *sesv2.Client
	sender string
}

// NewSESMailer returns a mailer sending from the given address.
func NewSESMailer(cfg aws.Config, sender string) *SESMailer {
	return &SESMailer{
		client: sesv2.NewFromConfig(cfg),
		sender: sender,
	}
}

// Send delivers one email.
func (m *SESMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(textBody)},
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
