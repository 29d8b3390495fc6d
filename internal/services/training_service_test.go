package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shotstreak/shotstreak-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, 0, d.Hour())

	for _, invalid := range []string{"", "15-01-2024", "2024/01/15", "2024-13-01", "2024-01-32", "today"} {
		_, err := ParseDate(invalid)
		assert.ErrorIs(t, err, ErrInvalidDate, invalid)
	}
}

func TestValidClock(t *testing.T) {
	for _, valid := range []string{"00:00", "09:30", "17:00", "23:59"} {
		assert.True(t, ValidClock(valid), valid)
	}
	for _, invalid := range []string{"", "24:00", "17:60", "5:30", "17-00", "17:00:00", "ab:cd"} {
		assert.False(t, ValidClock(invalid), invalid)
	}
}

func TestBuildDayView_Dispatch(t *testing.T) {
	plannedShooting := models.PlannedActivity{ID: uuid.New(), Type: models.ActivityShooting, Time: "17:00"}
	plannedPickup := models.PlannedActivity{ID: uuid.New(), Type: models.ActivityPickup, Time: "19:00", Location: strPtr("rec center")}
	plannedCustom := models.PlannedActivity{ID: uuid.New(), Type: models.ActivityCustom, Time: "07:00", Name: strPtr("ball handling")}

	day := &models.TrainingDay{
		ID:        uuid.New(),
		Date:      mustDate(t, "2024-01-15"),
		IsGameDay: true,
		Planned:   []models.PlannedActivity{plannedShooting, plannedPickup, plannedCustom},
		Actual: []models.ActualActivity{
			{ID: uuid.New(), Type: models.ActivityShooting, ShootingMakes: 210, CompletedAt: strPtr("17:20")},
			{ID: uuid.New(), Type: models.ActivityCoachSkills, CompletedAt: strPtr("15:00")},
			{ID: uuid.New(), Type: models.ActivityVarsity, CompletedAt: strPtr("16:00")},
			{ID: uuid.New(), Type: models.ActivityPickup, CompletedAt: strPtr("19:10")},
		},
	}

	view := BuildDayView(day)

	assert.Equal(t, "2024-01-15", view.Date)
	assert.True(t, view.IsGameDay)

	require.NotNil(t, view.Planned.Shooting)
	assert.Equal(t, plannedShooting.ID, view.Planned.Shooting.ID)
	assert.Equal(t, "17:00", view.Planned.Shooting.Time)

	require.Len(t, view.Planned.Pickup, 1)
	assert.Equal(t, "rec center", view.Planned.Pickup[0].Location)
	require.Len(t, view.Planned.Custom, 1)
	assert.Equal(t, "ball handling", view.Planned.Custom[0].Name)

	assert.Equal(t, 210, view.Actual.Shooting.Makes)
	require.NotNil(t, view.Actual.Shooting.CompletedAt)
	assert.Equal(t, "17:20", *view.Actual.Shooting.CompletedAt)

	assert.True(t, view.Actual.CoachSkills)
	assert.False(t, view.Actual.CoachWeights)
	assert.True(t, view.Actual.Varsity)
	require.Len(t, view.Actual.Pickup, 1)
	assert.Empty(t, view.Actual.Custom)
}

func TestBuildDayView_Empty(t *testing.T) {
	day := &models.TrainingDay{ID: uuid.New(), Date: mustDate(t, "2024-01-10")}

	view := BuildDayView(day)

	assert.Nil(t, view.Planned.Shooting)
	assert.NotNil(t, view.Planned.Pickup)
	assert.Empty(t, view.Planned.Pickup)
	assert.NotNil(t, view.Planned.Custom)
	assert.Equal(t, 0, view.Actual.Shooting.Makes)
	assert.Nil(t, view.Actual.Shooting.CompletedAt)
	assert.False(t, view.Actual.CoachSkills)
	assert.False(t, view.Actual.CoachWeights)
	assert.False(t, view.Actual.Varsity)
}

func TestBuildDayView_Idempotent(t *testing.T) {
	day := &models.TrainingDay{
		ID:   uuid.New(),
		Date: mustDate(t, "2024-01-15"),
		Planned: []models.PlannedActivity{
			{ID: uuid.New(), Type: models.ActivityShooting, Time: "17:00"},
			{ID: uuid.New(), Type: models.ActivityPickup, Time: "19:00"},
		},
		Actual: []models.ActualActivity{
			{ID: uuid.New(), Type: models.ActivityShooting, ShootingMakes: 150},
		},
	}

	plannedBefore := make([]models.PlannedActivity, len(day.Planned))
	copy(plannedBefore, day.Planned)
	actualBefore := make([]models.ActualActivity, len(day.Actual))
	copy(actualBefore, day.Actual)

	first := BuildDayView(day)
	second := BuildDayView(day)

	assert.Equal(t, first, second)
	assert.Equal(t, plannedBefore, day.Planned)
	assert.Equal(t, actualBefore, day.Actual)
}

func TestBuildDayView_DuplicateShooting(t *testing.T) {
	// Duplicates violate the upsert invariant but must not crash
	// reconciliation; the last record wins.
	firstID, secondID := uuid.New(), uuid.New()
	day := &models.TrainingDay{
		ID:   uuid.New(),
		Date: mustDate(t, "2024-01-15"),
		Planned: []models.PlannedActivity{
			{ID: firstID, Type: models.ActivityShooting, Time: "08:00"},
			{ID: secondID, Type: models.ActivityShooting, Time: "17:00"},
		},
		Actual: []models.ActualActivity{
			{ID: uuid.New(), Type: models.ActivityShooting, ShootingMakes: 100},
			{ID: uuid.New(), Type: models.ActivityShooting, ShootingMakes: 250},
		},
	}

	view := BuildDayView(day)

	require.NotNil(t, view.Planned.Shooting)
	assert.Equal(t, secondID, view.Planned.Shooting.ID)
	assert.Equal(t, 250, view.Actual.Shooting.Makes)
}

func TestCompletionStamp(t *testing.T) {
	testCases := []struct {
		name      string
		prevMakes int
		newMakes  int
		existing  *string
		provided  string
		want      func(t *testing.T, got *string)
	}{
		{
			name:     "explicit time always wins",
			newMakes: 50,
			provided: "18:30",
			want: func(t *testing.T, got *string) {
				require.NotNil(t, got)
				assert.Equal(t, "18:30", *got)
			},
		},
		{
			name:      "existing time is never overwritten",
			prevMakes: 150,
			newMakes:  220,
			existing:  strPtr("12:00"),
			want:      func(t *testing.T, got *string) { assert.Nil(t, got) },
		},
		{
			name:      "first threshold cross stamps now",
			prevMakes: 190,
			newMakes:  205,
			want:      func(t *testing.T, got *string) { require.NotNil(t, got); assert.True(t, ValidClock(*got)) },
		},
		{
			name:      "below threshold stays unstamped",
			prevMakes: 0,
			newMakes:  120,
			want:      func(t *testing.T, got *string) { assert.Nil(t, got) },
		},
		{
			name:      "already above threshold does not restamp",
			prevMakes: 250,
			newMakes:  260,
			want:      func(t *testing.T, got *string) { assert.Nil(t, got) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.want(t, completionStamp(tc.prevMakes, tc.newMakes, tc.existing, tc.provided))
		})
	}
}

func TestActivityTypeValidity(t *testing.T) {
	assert.True(t, models.ActivityShooting.ValidPlanned())
	assert.True(t, models.ActivityPickup.ValidPlanned())
	assert.True(t, models.ActivityCustom.ValidPlanned())
	assert.False(t, models.ActivityVarsity.ValidPlanned())
	assert.False(t, models.ActivityType("yoga").ValidPlanned())

	assert.True(t, models.ActivityVarsity.ValidActual())
	assert.True(t, models.ActivityCoachSkills.ValidActual())
	assert.False(t, models.ActivityType("").ValidActual())

	assert.True(t, models.ActivityCoachWeights.Fixed())
	assert.False(t, models.ActivityShooting.Fixed())
	assert.False(t, models.ActivityPickup.Fixed())
}
