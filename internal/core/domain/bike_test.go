package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

func TestNewBike_Defaults(t *testing.T) {
	b, err := domain.NewBike("  B001  ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "B001", b.BikeID())
	assert.Equal(t, domain.BikeUnknown, b.BikeType())
	assert.Equal(t, domain.BikeAvailable, b.BikeStatus())
}

func TestNewBike_KeepsRawType(t *testing.T) {
	b, err := domain.NewBike("B002", "cargo", domain.BikeInUse)
	require.NoError(t, err)
	assert.Equal(t, domain.BikeType("cargo"), b.BikeType())
}

func TestNewBike_RejectsEmptyID(t *testing.T) {
	_, err := domain.NewBike("   ", domain.BikeClassic, domain.BikeAvailable)
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestNewBike_RejectsBadStatus(t *testing.T) {
	_, err := domain.NewBike("B003", domain.BikeClassic, "parked")
	assert.ErrorIs(t, err, domain.ErrInvalidBikeStatus)
}

func TestNewClassicBike(t *testing.T) {
	b, err := domain.NewClassicBike("B010", 7)
	require.NoError(t, err)
	assert.Equal(t, domain.BikeClassic, b.BikeType())
	assert.Equal(t, domain.BikeAvailable, b.BikeStatus())
	assert.Equal(t, 7, b.GearCount)

	_, err = domain.NewClassicBike("B011", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidGearCount)
}

func TestNewElectricBike(t *testing.T) {
	b, err := domain.NewElectricBike("B020", 80, 45)
	require.NoError(t, err)
	assert.Equal(t, domain.BikeElectric, b.BikeType())
	assert.Equal(t, 80.0, b.BatteryLevel)
	assert.Equal(t, 45.0, b.MaxRangeKM)

	_, err = domain.NewElectricBike("B021", -1, 45)
	assert.ErrorIs(t, err, domain.ErrInvalidBatteryLevel)

	_, err = domain.NewElectricBike("B022", 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMaxRange)
}
