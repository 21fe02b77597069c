package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers messages through the SendGrid v3 API.
type SendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(msg Message) error {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)

	m := sgmail.NewV3Mail()
	m.SetFrom(from)
	m.Subject = msg.Subject
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))

	personalization := sgmail.NewPersonalization()
	for _, rcpt := range msg.Recipients {
		personalization.AddTos(sgmail.NewEmail("", rcpt))
	}
	for key, value := range msg.Model {
		personalization.SetDynamicTemplateData(key, value)
	}
	m.AddPersonalizations(personalization)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(m)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
