package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestParseKnownAndLegacy(t *testing.T) {
	assert.Equal(t, Status{Value: FleetContracted}, Fleet.Parse(str(FleetContracted)))
	assert.Equal(t, Status{Value: "عميل قديم", Legacy: true}, Fleet.Parse(str("عميل قديم")))
}

func TestParseNullUsesDefault(t *testing.T) {
	assert.Equal(t, FleetNew, Fleet.Parse(nil).Value)
	assert.Equal(t, FleetNew, Fleet.Label(str("  ")))
	assert.Equal(t, DepartmentUnset, Departments.Label(nil))
}

func TestParseKnownRejectsUnknown(t *testing.T) {
	_, err := Fleet.ParseKnown("contracted")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	v, err := POSCall.ParseKnown(" " + POSSentForContract + " ")
	require.NoError(t, err)
	assert.Equal(t, POSSentForContract, v)
}

func TestParseOptional(t *testing.T) {
	v, err := FuelTypes.ParseOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = FuelTypes.ParseOptional(str(FuelDiesel))
	require.NoError(t, err)
	assert.Equal(t, FuelDiesel, *v)

	_, err = FuelTypes.ParseOptional(str("كيروسين"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestAnyStatusMayFollowAny(t *testing.T) {
	// No transition table: each known value is independently writable.
	for _, from := range Fleet.Values() {
		for _, to := range Fleet.Values() {
			_, err := Fleet.ParseKnown(to)
			assert.NoError(t, err, "%s -> %s", from, to)
		}
	}
}

func TestValuesIsACopy(t *testing.T) {
	vals := Fleet.Values()
	vals[0] = "x"
	assert.Equal(t, FleetNew, Fleet.Values()[0])
}

func TestParseEditAcceptsStoredLegacy(t *testing.T) {
	stored := str("عميل قديم")

	v, err := Fleet.ParseEdit(str(" عميل قديم "), stored)
	require.NoError(t, err)
	assert.Equal(t, "عميل قديم", *v)

	_, err = Fleet.ParseEdit(str("عميل آخر"), stored)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	v, err = Fleet.ParseEdit(str(FleetOngoing), stored)
	require.NoError(t, err)
	assert.Equal(t, FleetOngoing, *v)

	v, err = Fleet.ParseEdit(nil, stored)
	require.NoError(t, err)
	assert.Nil(t, v)
}
