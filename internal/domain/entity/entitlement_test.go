package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserEntitlement_GradeAt(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name        string
		entitlement *UserEntitlement
		want        Grade
	}{
		{"nil entitlement", nil, GradeStandard},
		{"no expiry recorded", &UserEntitlement{UserID: "u"}, GradeStandard},
		{"future expiry", &UserEntitlement{UserID: "u", VIPExpiresAt: &future}, GradeVIP},
		{"past expiry", &UserEntitlement{UserID: "u", VIPExpiresAt: &past}, GradeStandard},
		// Strictly future: at the exact expiry instant the tier is already gone.
		{"expiry equals now", &UserEntitlement{UserID: "u", VIPExpiresAt: &now}, GradeStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entitlement.GradeAt(now))
		})
	}
}

func TestUserEntitlement_ExtendVIP_FromNowWhenLapsed(t *testing.T) {
	now := time.Now()
	lapsed := now.Add(-10 * 24 * time.Hour)
	e := &UserEntitlement{UserID: "u", VIPExpiresAt: &lapsed}

	e.ExtendVIP(now, 30*24*time.Hour)

	require.NotNil(t, e.VIPExpiresAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *e.VIPExpiresAt)
}

func TestUserEntitlement_ExtendVIP_StacksOnActivePeriod(t *testing.T) {
	now := time.Now()
	active := now.Add(10 * 24 * time.Hour)
	e := &UserEntitlement{UserID: "u", VIPExpiresAt: &active}

	e.ExtendVIP(now, 30*24*time.Hour)

	require.NotNil(t, e.VIPExpiresAt)
	assert.Equal(t, active.Add(30*24*time.Hour), *e.VIPExpiresAt)
}

func TestUserEntitlement_ExtendVIP_NoPriorExpiry(t *testing.T) {
	now := time.Now()
	e := &UserEntitlement{UserID: "u"}

	e.ExtendVIP(now, 24*time.Hour)

	require.NotNil(t, e.VIPExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), *e.VIPExpiresAt)
}
