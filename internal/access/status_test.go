package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestResolveStatus_TableTests(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		record      *models.SubscriptionRecord
		wantState   models.LifecycleState
		wantWarning string
	}{
		{
			name:      "nil record means no subscription",
			record:    nil,
			wantState: models.StateNone,
		},
		{
			name:      "expired passes through",
			record:    &models.SubscriptionRecord{Status: models.RawStatusExpired},
			wantState: models.StateExpired,
		},
		{
			name:      "cancelled passes through",
			record:    &models.SubscriptionRecord{Status: models.RawStatusCancelled},
			wantState: models.StateCancelled,
		},
		{
			name:      "pending passes through",
			record:    &models.SubscriptionRecord{Status: models.RawStatusPending},
			wantState: models.StatePending,
		},
		{
			name:      "unknown status falls open to active",
			record:    &models.SubscriptionRecord{Status: "past_due"},
			wantState: models.StateActive,
		},
		{
			name:      "active without end date",
			record:    &models.SubscriptionRecord{Status: models.RawStatusActive},
			wantState: models.StateActive,
		},
		{
			name: "active with zero end date treated as no boundary",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: &time.Time{},
			},
			wantState: models.StateActive,
		},
		{
			name: "active far from end date",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.AddDate(0, 2, 0)),
			},
			wantState: models.StateActive,
		},
		{
			name: "active one second before end date",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(time.Second)),
			},
			wantState:   models.StateActive,
			wantWarning: "subscription expires in 1 day(s)",
		},
		{
			name: "active eight days before end date has no warning",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(8 * 24 * time.Hour)),
			},
			wantState: models.StateActive,
		},
		{
			name: "active seven days before end date warns",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(7 * 24 * time.Hour)),
			},
			wantState:   models.StateActive,
			wantWarning: "subscription expires in 7 day(s)",
		},
		{
			name: "active one day before end date warns",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(24 * time.Hour)),
			},
			wantState:   models.StateActive,
			wantWarning: "subscription expires in 1 day(s)",
		},
		{
			name: "one second past end date enters grace",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(-time.Second)),
			},
			wantState:   models.StateGrace,
			wantWarning: "expired, 3 day(s) grace period remaining",
		},
		{
			name: "trial two days past boundary has one grace day left",
			record: &models.SubscriptionRecord{
				Status:      models.RawStatusTrial,
				TrialEndsAt: timePtr(now.Add(-2 * 24 * time.Hour)),
			},
			wantState:   models.StateGrace,
			wantWarning: "expired, 1 day(s) grace period remaining",
		},
		{
			name: "one second past grace window is expired",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusActive,
				EndDate: timePtr(now.Add(-3*24*time.Hour - time.Second)),
			},
			wantState: models.StateExpired,
		},
		{
			name: "trial warns with trial wording",
			record: &models.SubscriptionRecord{
				Status:      models.RawStatusTrial,
				TrialEndsAt: timePtr(now.Add(5 * 24 * time.Hour)),
			},
			wantState:   models.StateTrial,
			wantWarning: "trial expires in 5 day(s)",
		},
		{
			name: "trial ignores end date field",
			record: &models.SubscriptionRecord{
				Status:  models.RawStatusTrial,
				EndDate: timePtr(now.Add(-30 * 24 * time.Hour)),
			},
			wantState: models.StateTrial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.record, now)
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.wantWarning, got.Warning)
		})
	}
}

func TestResolveStatus_GraceBoundaryMonotonic(t *testing.T) {
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	record := &models.SubscriptionRecord{
		Status:  models.RawStatusActive,
		EndDate: &end,
	}

	assert.Equal(t, models.StateActive, ResolveStatus(record, end.Add(-time.Second)).State)
	assert.Equal(t, models.StateGrace, ResolveStatus(record, end.Add(time.Second)).State)
	assert.Equal(t, models.StateExpired, ResolveStatus(record, end.Add(GracePeriod+time.Second)).State)
}

func TestResolveStatus_NoPreExpiryWarningPastEnd(t *testing.T) {
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	record := &models.SubscriptionRecord{
		Status:  models.RawStatusActive,
		EndDate: &end,
	}

	got := ResolveStatus(record, end.Add(time.Second))
	require.Equal(t, models.StateGrace, got.State)
	assert.Contains(t, got.Warning, "grace period remaining")
	assert.NotContains(t, got.Warning, "expires in")
}

func TestResolveStatus_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	record := &models.SubscriptionRecord{
		Status:  models.RawStatusActive,
		EndDate: timePtr(now.Add(3 * 24 * time.Hour)),
	}

	first := ResolveStatus(record, now)
	second := ResolveStatus(record, now)
	assert.Equal(t, first, second)
}
