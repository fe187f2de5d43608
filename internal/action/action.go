// Package action models the single action a user is performing on a client row.
package action

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("unknown action")
	ErrNoClient    = errors.New("action requires a client")
)

type Kind string

const (
	KindNone         Kind = "none"
	KindAddFollowUp  Kind = "add-follow-up"
	KindViewHistory  Kind = "history"
	KindNotes        Kind = "notes"
	KindEdit         Kind = "edit"
	KindDelete       Kind = "delete"
	KindSendEmail    Kind = "email"
	KindSendWhatsApp Kind = "whatsapp"
)

// Action is one of the variants below. The unexported method closes the set.
type Action interface {
	Kind() Kind
	action()
}

// Target is embedded by every variant bound to a client.
type Target struct {
	ClientID string
}

type (
	None         struct{}
	AddFollowUp  struct{ Target }
	ViewHistory  struct{ Target }
	Notes        struct{ Target }
	Edit         struct{ Target }
	Delete       struct{ Target }
	SendEmail    struct{ Target }
	SendWhatsApp struct{ Target }
)

func (None) Kind() Kind         { return KindNone }
func (AddFollowUp) Kind() Kind  { return KindAddFollowUp }
func (ViewHistory) Kind() Kind  { return KindViewHistory }
func (Notes) Kind() Kind        { return KindNotes }
func (Edit) Kind() Kind         { return KindEdit }
func (Delete) Kind() Kind       { return KindDelete }
func (SendEmail) Kind() Kind    { return KindSendEmail }
func (SendWhatsApp) Kind() Kind { return KindSendWhatsApp }

func (None) action()         {}
func (AddFollowUp) action()  {}
func (ViewHistory) action()  {}
func (Notes) action()        {}
func (Edit) action()         {}
func (Delete) action()       {}
func (SendEmail) action()    {}
func (SendWhatsApp) action() {}

// Parse builds the variant named by kind for clientID.
func Parse(kind string, clientID string) (Action, error) {
	k := Kind(kind)
	if k == KindNone || k == "" {
		return None{}, nil
	}
	if clientID == "" {
		return nil, ErrNoClient
	}
	t := Target{ClientID: clientID}
	switch k {
	case KindAddFollowUp:
		return AddFollowUp{t}, nil
	case KindViewHistory:
		return ViewHistory{t}, nil
	case KindNotes:
		return Notes{t}, nil
	case KindEdit:
		return Edit{t}, nil
	case KindDelete:
		return Delete{t}, nil
	case KindSendEmail:
		return SendEmail{t}, nil
	case KindSendWhatsApp:
		return SendWhatsApp{t}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ClientOf returns the client an action is bound to, if any.
func ClientOf(a Action) (string, bool) {
	switch v := a.(type) {
	case AddFollowUp:
		return v.ClientID, true
	case ViewHistory:
		return v.ClientID, true
	case Notes:
		return v.ClientID, true
	case Edit:
		return v.ClientID, true
	case Delete:
		return v.ClientID, true
	case SendEmail:
		return v.ClientID, true
	case SendWhatsApp:
		return v.ClientID, true
	}
	return "", false
}

// Panel holds at most one active action. Opening a new one replaces the previous.
type Panel struct {
	active Action
}

func (p *Panel) Active() Action {
	if p.active == nil {
		return None{}
	}
	return p.active
}

func (p *Panel) Open(a Action) {
	p.active = a
}

func (p *Panel) Close() {
	p.active = None{}
}

// IsOpen reports whether kind is the active action for clientID.
func (p *Panel) IsOpen(kind Kind, clientID string) bool {
	a := p.Active()
	if a.Kind() != kind {
		return false
	}
	id, ok := ClientOf(a)
	return ok && id == clientID
}
