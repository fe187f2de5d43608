// Package mail builds mailto links from saved templates and relays outbound
// email through the Resend API.
package mail

import (
	"errors"
	"net/url"
	"strings"

	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/placeholder"
)

const attachmentsHeader = "\n\n\nAttachments (download links):"

var ErrNoEmail = errors.New("client has no email address")

// Draft is a rendered email ready to be put in a mailto link or sent.
type Draft struct {
	To      string
	CC      string
	Subject string
	Body    string
}

// Render substitutes the record fields into the template and appends the
// attachment download links to the body.
func Render(to string, tpl *models.MessageTemplate, fields placeholder.Fields) Draft {
	d := Draft{To: to}
	if tpl == nil {
		return d
	}
	d.Subject = placeholder.RenderPtr(tpl.Subject, fields)
	d.Body = placeholder.RenderPtr(tpl.Body, fields)
	if tpl.CC != nil {
		d.CC = strings.TrimSpace(*tpl.CC)
	}
	if len(tpl.Attachments) > 0 {
		var b strings.Builder
		b.WriteString(d.Body)
		b.WriteString(attachmentsHeader)
		for _, a := range tpl.Attachments {
			b.WriteString("\n- " + a.FileName + ": " + a.FileURL)
		}
		d.Body = b.String()
	}
	return d
}

// URI encodes the draft as mailto:<to>?subject=..&cc=..&body=.. with empty
// parts omitted.
func (d Draft) URI() string {
	var parts []string
	if d.Subject != "" {
		parts = append(parts, "subject="+escape(d.Subject))
	}
	if d.CC != "" {
		parts = append(parts, "cc="+escape(d.CC))
	}
	if d.Body != "" {
		parts = append(parts, "body="+escape(d.Body))
	}
	uri := "mailto:" + d.To
	if len(parts) > 0 {
		uri += "?" + strings.Join(parts, "&")
	}
	return uri
}

// BuildMailto renders the template for the given address.
func BuildMailto(email *string, tpl *models.MessageTemplate, fields placeholder.Fields) (Draft, error) {
	if email == nil || strings.TrimSpace(*email) == "" {
		return Draft{}, ErrNoEmail
	}
	return Render(strings.TrimSpace(*email), tpl, fields), nil
}

// mail clients read "+" literally, so spaces are percent-encoded.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
