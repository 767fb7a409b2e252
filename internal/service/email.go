package service

import (
	"context"
	"fmt"
	"strings"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d, body: %s", ErrUpstream, response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendDigest(ctx context.Context, to, toName, areaName string, digest *domain.Digest, unsubscribeURL string) error {
	subject := fmt.Sprintf("Cleanspot digest for %s", areaName)

	var plain strings.Builder
	var html strings.Builder

	fmt.Fprintf(&plain, "Hello %s,\n\nHere is what happened in %s since your last digest:\n\n", toName, areaName)
	fmt.Fprintf(&html, "<html><body><h2>What happened in %s</h2>", areaName)

	writeBucket := func(title string, records []domain.ActivityRecord) {
		if len(records) == 0 {
			return
		}
		fmt.Fprintf(&plain, "%s (%d):\n", title, len(records))
		fmt.Fprintf(&html, "<h3>%s (%d)</h3><ul>", title, len(records))
		for _, rec := range records {
			place := "an unresolved location"
			if rec.Area != nil {
				place = describeArea(rec.Area)
			}
			fmt.Fprintf(&plain, "  - %s #%d at %s, reported by %s\n", rec.Type, rec.EntityID, place, rec.Reporter)
			fmt.Fprintf(&html, "<li><strong>%s #%d</strong> at %s, reported by %s</li>", rec.Type, rec.EntityID, place, rec.Reporter)
		}
		plain.WriteString("\n")
		html.WriteString("</ul>")
	}

	writeBucket("New reports", digest.Created)
	writeBucket("Updated reports", digest.Updated)
	writeBucket("Cleaned up", digest.Cleaned)

	fmt.Fprintf(&plain, "To stop receiving these digests, open: %s\n\nThe Cleanspot Team", unsubscribeURL)
	fmt.Fprintf(&html, `<p><a href="%s">Unsubscribe from this digest</a></p><p>The Cleanspot Team</p></body></html>`, unsubscribeURL)

	return s.send(ctx, to, toName, subject, plain.String(), html.String())
}

func (s *emailService) SendEventConfirmation(ctx context.Context, to, toName string, event *domain.Event) error {
	subject := fmt.Sprintf("Reminder: %s starts soon", event.Name)
	plain := fmt.Sprintf(`Hello %s,

The cleanup event "%s" you joined starts on %s.

Please confirm you are still coming in the Cleanspot app.

The Cleanspot Team`, toName, event.Name, event.StartTime.Format("Monday, 2 January 2006 at 15:04"))

	html := fmt.Sprintf(`<html><body><p>Hello %s,</p>
<p>The cleanup event <strong>%s</strong> you joined starts on %s.</p>
<p>Please confirm you are still coming in the Cleanspot app.</p>
<p>The Cleanspot Team</p></body></html>`,
		toName, event.Name, event.StartTime.Format("Monday, 2 January 2006 at 15:04"))

	return s.send(ctx, to, toName, subject, plain, html)
}

func (s *emailService) SendEventFeedback(ctx context.Context, to, toName string, event *domain.Event) error {
	subject := fmt.Sprintf("How was %s?", event.Name)
	plain := fmt.Sprintf(`Hello %s,

Thank you for taking part in "%s". We would love to hear how it went. Please leave your feedback in the Cleanspot app.

The Cleanspot Team`, toName, event.Name)

	html := fmt.Sprintf(`<html><body><p>Hello %s,</p>
<p>Thank you for taking part in <strong>%s</strong>. We would love to hear how it went. Please leave your feedback in the Cleanspot app.</p>
<p>The Cleanspot Team</p></body></html>`, toName, event.Name)

	return s.send(ctx, to, toName, subject, plain, html)
}

// describeArea renders the most specific populated name of an area.
func describeArea(a *domain.Area) string {
	for _, name := range []string{a.Street, a.SubLocality, a.Locality, a.AA3, a.AA2, a.AA1, a.Country, a.Continent} {
		if name != "" {
			return name
		}
	}
	return fmt.Sprintf("area %d", a.ID)
}
