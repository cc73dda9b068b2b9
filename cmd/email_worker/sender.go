package main

import (
	"errors"
	"fmt"

	"github.com/hawkcentral/campus-events/config"
	"github.com/hawkcentral/campus-events/pkg/mailer"
)

// newSender picks the transport named by MAIL_PROVIDER.
func newSender(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.MailProvider {
	case "mailgun", "":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, errors.New("MAILGUN_DOMAIN and MAILGUN_API_KEY are required")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom), nil
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("RESEND_API_KEY is required")
		}
		return mailer.NewResend(cfg.ResendAPIKey, cfg.MailFrom), nil
	}
	return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
}
