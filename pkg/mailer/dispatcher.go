package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/hawkcentral/campus-events/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota // sent
	Drop                   // malformed, never retry
	Requeue                // transient send failure
)

// Dispatcher renders queued jobs and hands them to a Sender.
type Dispatcher struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewDispatcher(sender Sender, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Handle processes one raw queue message.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		d.Logger.WithError(err).Warn("bad email message")
		return Drop
	}
	subject, text, html, err := d.render(&job)
	if err != nil {
		d.Logger.WithError(err).WithField("template", job.Template).Error("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, d.SendTimeout)
	defer cancel()
	if err := d.Sender.Send(c, job.To, subject, text, html); err != nil {
		d.Logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("send failed")
		return Requeue
	}
	d.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return Ack
}

func (d *Dispatcher) render(job *EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errors.New("job has no recipient")
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", errors.New("job has neither template nor body")
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || v == "" {
		job.Data["Email"] = job.To
	}
	return mailtpl.Render(job.Template, job.Data)
}
