package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Resend sends through the Resend API.
type Resend struct {
	client *resend.Client
	From   string
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{client: resend.NewClient(apiKey), From: from}
}

func (r *Resend) Send(ctx context.Context, to, subject, text, html string) error {
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			return fmt.Errorf("resend rate limited, resets in %ss: %w", rateLimitErr.Reset, err)
		}
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
