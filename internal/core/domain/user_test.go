package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

func TestNewUser_Validation(t *testing.T) {
	u, err := domain.NewUser("U001", "Anna", "anna@example.com", domain.UserMember)
	require.NoError(t, err)
	assert.Equal(t, "U001", u.UserID())
	assert.Equal(t, domain.UserMember, u.UserType())
	assert.Equal(t, "anna@example.com", u.UserEmail())

	_, err = domain.NewUser("", "Anna", "anna@example.com", domain.UserMember)
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = domain.NewUser("U002", "Ben", "not-an-email", domain.UserMember)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = domain.NewUser("U003", "Cleo", "cleo@example.com", "visitor")
	assert.ErrorIs(t, err, domain.ErrInvalidUserType)
}

func TestNewCasualUser(t *testing.T) {
	u, err := domain.NewCasualUser("U010", "Dana", "dana@example.com", 3)
	require.NoError(t, err)
	assert.Equal(t, domain.UserCasual, u.UserType())
	assert.Equal(t, 3, u.DayPassCount)

	_, err = domain.NewCasualUser("U011", "Eve", "eve@example.com", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidDayPassCount)
}

func TestNewMemberUser(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	u, err := domain.NewMemberUser("U020", "Finn", "finn@example.com", domain.TierPremium, start, end)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, u.Tier)

	_, err = domain.NewMemberUser("U021", "Gus", "gus@example.com", "gold", start, end)
	assert.ErrorIs(t, err, domain.ErrInvalidTier)

	_, err = domain.NewMemberUser("U022", "Hana", "hana@example.com", domain.TierBasic, end, start)
	assert.ErrorIs(t, err, domain.ErrInvalidMembershipPeriod)
}
