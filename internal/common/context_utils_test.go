package common

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDate("2024-01-01T10:30:00Z")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "strength,mobility", JoinList([]string{"strength", "mobility"}))
	assert.Equal(t, "strength", JoinList([]string{" strength ", "", "  "}))
	assert.Equal(t, "", JoinList(nil))
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "jane", SanitizeSearchQuery("jane"))
	assert.Equal(t, "jane", SanitizeSearchQuery("ja%ne_"))
	assert.Equal(t, "", SanitizeSearchQuery("   "))
}

func TestTrainerIDContextRoundTrip(t *testing.T) {
	trainerID := uuid.New()
	ctx := WithTrainerID(context.Background(), trainerID)

	got, ok := GetTrainerIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, trainerID, got)

	_, ok = GetTrainerIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestValidateUUID(t *testing.T) {
	id := uuid.New()
	got, err := ValidateUUID(id.String(), "client id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ValidateUUID("nope", "client id")
	assert.Error(t, err)
}
