// Package automation runs the scheduled follow-up mailer.
package automation

import (
	"context"
	"errors"
	"time"

	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/metrics"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/placeholder"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/status"
	dto "smart-fuel-crm/pkg/models"
)

const (
	defaultSubjectPrefix = "متابعة بخصوص "
	defaultBody          = "هذه رسالة متابعة بخصوص محادثتنا السابقة."
	autoFeedback         = "تم إرسال بريد إلكتروني تلقائي للمتابعة."
)

// Invalidator drops a user's cached schedule after the mailer changes it.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// NameResolver returns the author name recorded on logged follow-ups.
type NameResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// FollowUpMailer emails every client whose follow-up is due today using the
// owner's saved email template, then records the contact.
type FollowUpMailer struct {
	repos  *repository.Repositories
	sender mail.Sender
	names  NameResolver
	notify Invalidator
}

func NewFollowUpMailer(repos *repository.Repositories, sender mail.Sender, names NameResolver, notify Invalidator) *FollowUpMailer {
	return &FollowUpMailer{repos: repos, sender: sender, names: names, notify: notify}
}

// Run processes the follow-ups scheduled on today. One failing follow-up is
// logged and skipped; it does not stop the run. Sent counts every email that
// went out, even when recording it failed afterwards.
func (m *FollowUpMailer) Run(ctx context.Context, today time.Time) (dto.RunResult, error) {
	due, err := m.repos.FollowUps.DueOn(ctx, today.Format(models.DateLayout))
	if err != nil {
		return dto.RunResult{}, err
	}
	res := dto.RunResult{Total: len(due)}
	if len(due) == 0 {
		logger.Infow("no follow-ups to send today", "date", today.Format(models.DateLayout))
		return res, nil
	}

	for _, f := range due {
		sent, err := m.process(ctx, f)
		if sent {
			res.Sent++
		}
		if err != nil {
			logger.Errorw("follow-up email failed", "follow_up_id", f.ID, "sent", sent, "error", err)
		}
	}
	logger.Infow("follow-up mailer finished", "sent", res.Sent, "total", res.Total)
	return res, nil
}

func (m *FollowUpMailer) process(ctx context.Context, f models.FollowUp) (bool, error) {
	client := f.Client
	if client == nil || client.Email == nil || *client.Email == "" {
		logger.Warnw("skipping follow-up: client data or email is missing", "follow_up_id", f.ID)
		return false, nil
	}

	tpl, err := m.repos.Templates.Get(ctx, f.UserID, models.ChannelEmail)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Warnw("skipping follow-up: no email template", "user_id", f.UserID)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	msg := compose(*client, tpl)
	if _, err := m.sender.Send(ctx, msg); err != nil {
		return false, err
	}
	metrics.EmailsSent.WithLabelValues(metrics.SourceScheduler).Inc()

	// The schedule is cleared first so a later run the same day cannot resend.
	if err := m.repos.FollowUps.ClearNextDate(ctx, f.ID); err != nil {
		return true, err
	}
	if m.notify != nil {
		m.notify.Invalidate(ctx, f.UserID)
	}

	author, err := m.names.DisplayName(ctx, f.UserID)
	if err != nil {
		return true, err
	}
	feedback := autoFeedback
	entry := models.FollowUp{
		ClientID:     client.ID,
		UserID:       f.UserID,
		Feedback:     &feedback,
		Status:       currentStatus(client.Status),
		UserFullName: author,
	}
	if err := m.repos.FollowUps.AddAndUpdateClient(ctx, &entry); err != nil {
		return true, err
	}
	metrics.FollowUpsLogged.WithLabelValues(metrics.KindAutoEmail).Inc()
	return true, nil
}

// compose renders the template, falling back to the default subject and body
// when either renders empty.
func compose(c models.Client, tpl *models.MessageTemplate) mail.Message {
	fields := c.Placeholders()
	subject := placeholder.RenderPtr(tpl.Subject, fields)
	if subject == "" {
		subject = defaultSubjectPrefix + c.CompanyName
	}
	body := placeholder.RenderPtr(tpl.Body, fields)
	if body == "" {
		body = defaultBody
	}
	msg := mail.Message{To: *c.Email, Subject: subject, Body: body}
	if tpl.CC != nil {
		msg.CC = *tpl.CC
	}
	for _, a := range tpl.Attachments {
		msg.Attachments = append(msg.Attachments, mail.Attachment{Filename: a.FileName, Path: a.FileURL})
	}
	return msg
}

func currentStatus(s *string) string {
	if s == nil || *s == "" {
		return status.FleetOngoing
	}
	return *s
}
