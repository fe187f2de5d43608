package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariants(t *testing.T) {
	for _, k := range []Kind{KindAddFollowUp, KindViewHistory, KindNotes, KindEdit, KindDelete, KindSendEmail, KindSendWhatsApp} {
		a, err := Parse(string(k), "c1")
		require.NoError(t, err, k)
		assert.Equal(t, k, a.Kind())

		id, ok := ClientOf(a)
		assert.True(t, ok)
		assert.Equal(t, "c1", id)
	}
}

func TestParseNone(t *testing.T) {
	a, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, None{}, a)

	_, ok := ClientOf(a)
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("email", "")
	assert.ErrorIs(t, err, ErrNoClient)

	_, err = Parse("fax", "c1")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPanelHoldsOneAction(t *testing.T) {
	var p Panel
	assert.Equal(t, KindNone, p.Active().Kind())

	p.Open(SendEmail{Target{ClientID: "a"}})
	assert.True(t, p.IsOpen(KindSendEmail, "a"))

	p.Open(Notes{Target{ClientID: "b"}})
	assert.False(t, p.IsOpen(KindSendEmail, "a"))
	assert.True(t, p.IsOpen(KindNotes, "b"))
	assert.False(t, p.IsOpen(KindNotes, "a"))

	p.Close()
	assert.Equal(t, KindNone, p.Active().Kind())
}
