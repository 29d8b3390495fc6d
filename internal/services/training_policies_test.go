package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shotstreak/shotstreak-backend/internal/dto"
	"github.com/shotstreak/shotstreak-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func intPtr(i int) *int { return &i }

// setupTestDB opens an isolated in-memory store. The pool is pinned to
// a single connection so every query sees the same :memory: database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.TrainingDay{},
		&models.PlannedActivity{},
		&models.ActualActivity{},
	))
	return db
}

func TestLogActual_ToggleSymmetry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	toggle, _, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "varsity"})
	require.NoError(t, err)
	require.NotNil(t, toggle)
	assert.True(t, toggle.Present)

	toggle, _, err = svc.LogActual(userID, date, dto.LogActualRequest{Type: "varsity"})
	require.NoError(t, err)
	require.NotNil(t, toggle)
	assert.False(t, toggle.Present)

	var count int64
	db.Model(&models.ActualActivity{}).Where("type = ?", models.ActivityVarsity).Count(&count)
	assert.EqualValues(t, 0, count)

	// a third call toggles back on
	toggle, _, err = svc.LogActual(userID, date, dto.LogActualRequest{Type: "varsity"})
	require.NoError(t, err)
	assert.True(t, toggle.Present)
}

func TestLogActual_FixedTypesIndependent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	_, _, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "coach_skills"})
	require.NoError(t, err)
	_, _, err = svc.LogActual(userID, date, dto.LogActualRequest{Type: "coach_weights"})
	require.NoError(t, err)

	// toggling one off leaves the other in place
	toggle, _, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "coach_skills"})
	require.NoError(t, err)
	assert.False(t, toggle.Present)

	var count int64
	db.Model(&models.ActualActivity{}).Where("type = ?", models.ActivityCoachWeights).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddPlanned_ShootingSingleSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	first, err := svc.AddPlanned(userID, date, dto.AddPlannedRequest{Type: "shooting", Time: "08:00"})
	require.NoError(t, err)
	second, err := svc.AddPlanned(userID, date, dto.AddPlannedRequest{Type: "shooting", Time: "17:00"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var rows []models.PlannedActivity
	db.Where("type = ?", models.ActivityShooting).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, "17:00", rows[0].Time)

	// pickups are not single-slot and append
	_, err = svc.AddPlanned(userID, date, dto.AddPlannedRequest{Type: "pickup", Time: "10:00"})
	require.NoError(t, err)
	_, err = svc.AddPlanned(userID, date, dto.AddPlannedRequest{Type: "pickup", Time: "19:00"})
	require.NoError(t, err)
	db.Where("type = ?", models.ActivityPickup).Find(&rows)
	assert.Len(t, rows, 2)
}

func TestLogActual_ShootingUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	_, created, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "shooting", Makes: intPtr(120)})
	require.NoError(t, err)
	require.NotNil(t, created)

	_, updated, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "shooting", Makes: intPtr(180), CompletedAt: "17:30"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	var rows []models.ActualActivity
	db.Where("type = ?", models.ActivityShooting).Find(&rows)
	require.Len(t, rows, 1)
	assert.Equal(t, 180, rows[0].ShootingMakes)
	require.NotNil(t, rows[0].CompletedAt)
	assert.Equal(t, "17:30", *rows[0].CompletedAt)
}

func TestLogActual_TimeOnlyUpdateKeepsMakes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	_, _, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "shooting", Makes: intPtr(150)})
	require.NoError(t, err)

	_, updated, err := svc.LogActual(userID, date, dto.LogActualRequest{Type: "shooting", CompletedAt: "18:00"})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.ShootingMakes)

	var row models.ActualActivity
	require.NoError(t, db.Where("type = ?", models.ActivityShooting).First(&row).Error)
	assert.Equal(t, 150, row.ShootingMakes)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, "18:00", *row.CompletedAt)
}

func TestQuickMakes_UpsertAndThresholdStamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	below, err := svc.QuickMakes(userID, date, dto.QuickMakesRequest{Makes: 150})
	require.NoError(t, err)
	assert.Nil(t, below.CompletedAt)

	crossed, err := svc.QuickMakes(userID, date, dto.QuickMakesRequest{Makes: 210})
	require.NoError(t, err)
	assert.Equal(t, below.ID, crossed.ID)
	require.NotNil(t, crossed.CompletedAt)
	stamped := *crossed.CompletedAt

	// further updates above the threshold keep the original stamp
	again, err := svc.QuickMakes(userID, date, dto.QuickMakesRequest{Makes: 230})
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, stamped, *again.CompletedAt)

	var count int64
	db.Model(&models.ActualActivity{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeletePlanned_OwnershipScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	owner := uuid.New()
	stranger := uuid.New()
	date := mustDate(t, "2024-01-15")

	planned, err := svc.AddPlanned(owner, date, dto.AddPlannedRequest{Type: "pickup", Time: "19:00"})
	require.NoError(t, err)

	// a foreign id is indistinguishable from a missing one
	err = svc.DeletePlanned(stranger, planned.ID)
	assert.ErrorIs(t, err, ErrActivityNotFound)

	require.NoError(t, svc.DeletePlanned(owner, planned.ID))
	assert.ErrorIs(t, svc.DeletePlanned(owner, planned.ID), ErrActivityNotFound)
}

func TestGetOrCreateDay_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db)
	userID := uuid.New()
	date := mustDate(t, "2024-01-15")

	first, err := svc.GetOrCreateDay(userID, date)
	require.NoError(t, err)
	second, err := svc.GetOrCreateDay(userID, date)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.TrainingDay{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
