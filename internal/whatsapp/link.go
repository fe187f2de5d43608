// Package whatsapp builds wa.me deep links from a client record and a saved template.
package whatsapp

import (
	"errors"
	"net/url"
	"strings"

	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/placeholder"
)

const baseURL = "https://wa.me/"

const attachmentsHeader = "\n\nيمكنك تحميل المرفقات من الروابط التالية:"

var ErrNoPhone = errors.New("client has no phone number")

// NormalizePhone keeps ASCII digits only and makes sure the number carries the
// country calling code. A single trunk zero is dropped before the code is added.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if countryCode == "" || strings.HasPrefix(digits, countryCode) {
		return digits
	}
	return countryCode + strings.TrimPrefix(digits, "0")
}

// Message renders the template body and appends attachment links as plain text.
func Message(tpl *models.MessageTemplate, fields placeholder.Fields) string {
	if tpl == nil {
		return ""
	}
	msg := placeholder.RenderPtr(tpl.Body, fields)
	if len(tpl.Attachments) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		b.WriteString(attachmentsHeader)
		for _, a := range tpl.Attachments {
			b.WriteString("\n- " + a.FileName + ": " + a.FileURL)
		}
		msg = b.String()
	}
	return msg
}

// BuildLink returns the wa.me link for phone. A nil template yields a link
// without prefilled text.
func BuildLink(phone *string, countryCode string, tpl *models.MessageTemplate, fields placeholder.Fields) (string, error) {
	if phone == nil {
		return "", ErrNoPhone
	}
	number := NormalizePhone(*phone, countryCode)
	if number == "" {
		return "", ErrNoPhone
	}

	link := baseURL + number
	if text := Message(tpl, fields); text != "" {
		link += "?" + url.Values{"text": {text}}.Encode()
	}
	return link, nil
}
