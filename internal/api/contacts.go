package api

import (
	"context"
	"errors"

	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/metrics"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/placeholder"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/whatsapp"
	dto "smart-fuel-crm/pkg/models"
)

// Feedback recorded with the follow-up that a contact action logs.
const (
	emailFeedback    = "تم إرسال بريد إلكتروني باستخدام القالب."
	whatsAppFeedback = "تم إرسال رسالة واتساب باستخدام القالب."
)

type contactTarget struct {
	email  *string
	phone  *string
	fields placeholder.Fields
}

// contactLinks renders the user's saved template into a mailto or wa.me link.
type contactLinks struct {
	templates   *repository.TemplateRepository
	countryCode string
}

// sent is the outcome of building a link, before anything is logged.
type sent struct {
	link     dto.ContactLink
	feedback string
	kind     string
}

func (l contactLinks) build(ctx context.Context, userID, channel string, t contactTarget) (sent, error) {
	tpl, err := l.templates.Get(ctx, userID, channel)
	if errors.Is(err, repository.ErrNotFound) {
		tpl = nil
	} else if err != nil {
		return sent{}, err
	}

	out := sent{link: dto.ContactLink{Channel: channel}}
	switch channel {
	case models.ChannelEmail:
		draft, err := mail.BuildMailto(t.email, tpl, t.fields)
		if err != nil {
			return sent{}, err
		}
		out.link.URL = draft.URI()
		out.link.Body = draft.Body
		out.feedback = emailFeedback
		out.kind = metrics.KindEmail
	case models.ChannelWhatsApp:
		url, err := whatsapp.BuildLink(t.phone, l.countryCode, tpl, t.fields)
		if err != nil {
			return sent{}, err
		}
		out.link.URL = url
		out.link.Body = whatsapp.Message(tpl, t.fields)
		out.feedback = whatsAppFeedback
		out.kind = metrics.KindWhatsApp
	default:
		return sent{}, badRequest("unknown channel " + channel)
	}
	return out, nil
}

func validChannel(channel string) bool {
	return channel == models.ChannelEmail || channel == models.ChannelWhatsApp
}
