package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-fuel-crm/internal/models"
)

func str(s string) *string { return &s }

func TestBuildMailtoRequiresEmail(t *testing.T) {
	_, err := BuildMailto(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoEmail)

	_, err = BuildMailto(str("  "), nil, nil)
	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestMailtoURI(t *testing.T) {
	c := models.Client{CompanyName: "Acme", ContactPerson: str("Ali"), Email: str("ops@acme.test")}
	tpl := &models.MessageTemplate{
		Subject: str("عرض {company_name}"),
		Body:    str("Dear {contact_person},\nsee offer"),
		CC:      str("boss@crm.test"),
		Attachments: []models.TemplateAttachment{
			{FileName: "price list.pdf", FileURL: "https://files.test/a.pdf"},
		},
	}

	d, err := BuildMailto(c.Email, tpl, c.Placeholders())
	require.NoError(t, err)
	assert.Equal(t, "عرض Acme", d.Subject)
	assert.True(t, strings.HasPrefix(d.Body, "Dear Ali,\nsee offer"+attachmentsHeader))
	assert.True(t, strings.HasSuffix(d.Body, "\n- price list.pdf: https://files.test/a.pdf"))

	uri := d.URI()
	require.True(t, strings.HasPrefix(uri, "mailto:ops@acme.test?subject="))
	assert.NotContains(t, uri, "+")

	u, err := url.Parse(uri)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, d.Subject, q.Get("subject"))
	assert.Equal(t, "boss@crm.test", q.Get("cc"))
	assert.Equal(t, d.Body, q.Get("body"))
}

func TestMailtoOmitsEmptyParts(t *testing.T) {
	assert.Equal(t, "mailto:a@b.test", Draft{To: "a@b.test"}.URI())
	assert.Equal(t, "mailto:a@b.test?body=hi%20there", Draft{To: "a@b.test", Body: "hi there"}.URI())
}

func TestResendSend(t *testing.T) {
	var got resendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	r := NewResend(srv.URL, "key-1", "CRM <crm@test>")
	id, err := r.Send(context.Background(), Message{
		To:          "x@test",
		CC:          "y@test",
		Subject:     "s",
		Body:        "line1\nline2",
		Attachments: []Attachment{{Filename: "a.pdf", Path: "https://files.test/a.pdf"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "CRM <crm@test>", got.From)
	assert.Equal(t, []string{"x@test"}, got.To)
	assert.Equal(t, []string{"y@test"}, got.CC)
	assert.Equal(t, "line1<br>line2", got.HTML)
	assert.Len(t, got.Attachments, 1)
}

func TestResendSurfacesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer srv.Close()

	_, err := NewResend(srv.URL, "key", "f@test").Send(context.Background(), Message{To: "x@test", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Equal(t, "domain not verified", err.Error())
}

func TestResendValidation(t *testing.T) {
	_, err := NewResend("http://unused", "", "f").Send(context.Background(), Message{To: "x", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewResend("http://unused", "k", "f").Send(context.Background(), Message{To: "x"})
	assert.Error(t, err)
}
