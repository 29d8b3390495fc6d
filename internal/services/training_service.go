package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shotstreak/shotstreak-backend/internal/dto"
	"github.com/shotstreak/shotstreak-backend/internal/models"
	"gorm.io/gorm"
)

// PerfectDayMakes is the shooting make count a day needs to count toward
// the streak and weekly completion.
const PerfectDayMakes = 200

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidType      = errors.New("invalid activity type")
	ErrInvalidTime      = errors.New("time must be HH:MM (24h)")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidMakes     = errors.New("makes must be a non-negative number")
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d.UTC(), nil
}

// ValidClock reports whether s is a valid HH:MM 24-hour string.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func clockMinutes(s string) int {
	t, _ := time.Parse("15:04", s)
	return t.Hour()*60 + t.Minute()
}

func nowClock() string {
	return time.Now().UTC().Format("15:04")
}

type TrainingService struct {
	db *gorm.DB
}

func NewTrainingService(db *gorm.DB) *TrainingService {
	return &TrainingService{db: db}
}

// userDays is a subquery restricting activity lookups to days owned by
// the user, so a foreign id behaves the same as a missing one.
func (s *TrainingService) userDays(userID uuid.UUID) *gorm.DB {
	return s.db.Model(&models.TrainingDay{}).Select("id").Where("user_id = ?", userID)
}

// GetOrCreateDay returns the TrainingDay for the date, creating an empty
// one on first access. Activities are preloaded.
func (s *TrainingService) GetOrCreateDay(userID uuid.UUID, date time.Time) (*models.TrainingDay, error) {
	var day models.TrainingDay
	err := s.db.Preload("Planned").Preload("Actual").
		Where("user_id = ? AND date = ?", userID, date).First(&day).Error
	if err == nil {
		return &day, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load training day: %w", err)
	}

	day = models.TrainingDay{
		ID:     uuid.New(),
		UserID: userID,
		Date:   date,
	}
	if err := s.db.Create(&day).Error; err != nil {
		return nil, fmt.Errorf("failed to create training day: %w", err)
	}
	day.Planned = []models.PlannedActivity{}
	day.Actual = []models.ActualActivity{}
	return &day, nil
}

// UpdateDay sets day-level fields (currently only the game-day flag).
func (s *TrainingService) UpdateDay(userID uuid.UUID, date time.Time, req dto.UpdateDayRequest) (*models.TrainingDay, error) {
	day, err := s.GetOrCreateDay(userID, date)
	if err != nil {
		return nil, err
	}
	if req.IsGameDay != nil && *req.IsGameDay != day.IsGameDay {
		if err := s.db.Model(day).Update("is_game_day", *req.IsGameDay).Error; err != nil {
			return nil, fmt.Errorf("failed to update training day: %w", err)
		}
		day.IsGameDay = *req.IsGameDay
	}
	return day, nil
}

// DaysInRange returns the user's training days in [start, end], ordered
// by date ascending, with activities preloaded. Days with no record are
// simply absent from the result.
func (s *TrainingService) DaysInRange(userID uuid.UUID, start, end time.Time) ([]models.TrainingDay, error) {
	var days []models.TrainingDay
	err := s.db.Preload("Planned").Preload("Actual").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list training days: %w", err)
	}
	return days, nil
}

// AddPlanned schedules an activity for the date. A planned shooting
// session is a single slot: any existing one for the day is deleted
// before the insert.
func (s *TrainingService) AddPlanned(userID uuid.UUID, date time.Time, req dto.AddPlannedRequest) (*models.PlannedActivity, error) {
	typ := models.ActivityType(req.Type)
	if !typ.ValidPlanned() {
		return nil, ErrInvalidType
	}
	if !ValidClock(req.Time) {
		return nil, ErrInvalidTime
	}

	day, err := s.GetOrCreateDay(userID, date)
	if err != nil {
		return nil, err
	}

	if typ == models.ActivityShooting {
		if err := s.db.Where("training_day_id = ? AND type = ?", day.ID, models.ActivityShooting).
			Delete(&models.PlannedActivity{}).Error; err != nil {
			return nil, fmt.Errorf("failed to replace planned shooting: %w", err)
		}
	}

	planned := models.PlannedActivity{
		ID:            uuid.New(),
		TrainingDayID: day.ID,
		Type:          typ,
		Time:          req.Time,
	}
	switch typ {
	case models.ActivityPickup:
		if req.Location != "" {
			loc := req.Location
			planned.Location = &loc
		}
	case models.ActivityCustom:
		if req.Name != "" {
			name := req.Name
			planned.Name = &name
		}
	}

	if err := s.db.Create(&planned).Error; err != nil {
		return nil, fmt.Errorf("failed to create planned activity: %w", err)
	}
	return &planned, nil
}

// DeletePlanned removes a planned activity. An id belonging to another
// user is indistinguishable from a missing one.
func (s *TrainingService) DeletePlanned(userID uuid.UUID, id uuid.UUID) error {
	result := s.db.Where("id = ? AND training_day_id IN (?)", id, s.userDays(userID)).
		Delete(&models.PlannedActivity{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete planned activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// LogActual records a completed activity for the date. Fixed types
// (coach_skills, coach_weights, varsity) toggle: an existing record is
// deleted, otherwise one is created. Shooting upserts the single
// per-day record. Pickup and custom append.
func (s *TrainingService) LogActual(userID uuid.UUID, date time.Time, req dto.LogActualRequest) (*dto.ToggleResponse, *models.ActualActivity, error) {
	typ := models.ActivityType(req.Type)
	if !typ.ValidActual() {
		return nil, nil, ErrInvalidType
	}
	if req.CompletedAt != "" && !ValidClock(req.CompletedAt) {
		return nil, nil, ErrInvalidTime
	}
	if req.Makes != nil && *req.Makes < 0 {
		return nil, nil, ErrInvalidMakes
	}

	day, err := s.GetOrCreateDay(userID, date)
	if err != nil {
		return nil, nil, err
	}

	completedAt := req.CompletedAt
	if completedAt == "" {
		completedAt = nowClock()
	}

	if typ.Fixed() {
		var existing models.ActualActivity
		err := s.db.Where("training_day_id = ? AND type = ?", day.ID, typ).First(&existing).Error
		if err == nil {
			if err := s.db.Delete(&existing).Error; err != nil {
				return nil, nil, fmt.Errorf("failed to toggle activity off: %w", err)
			}
			return &dto.ToggleResponse{Type: string(typ), Present: false}, nil, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to check activity: %w", err)
		}

		created := models.ActualActivity{
			ID:            uuid.New(),
			TrainingDayID: day.ID,
			Type:          typ,
			CompletedAt:   &completedAt,
		}
		if err := s.db.Create(&created).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to log activity: %w", err)
		}
		return &dto.ToggleResponse{Type: string(typ), Present: true}, &created, nil
	}

	if typ == models.ActivityShooting {
		var existing models.ActualActivity
		err := s.db.Where("training_day_id = ? AND type = ?", day.ID, models.ActivityShooting).First(&existing).Error
		if err == nil {
			// only write the fields the request carries; a time-only
			// update must not reset the make count
			updates := map[string]interface{}{}
			if req.Makes != nil {
				updates["shooting_makes"] = *req.Makes
				existing.ShootingMakes = *req.Makes
			}
			if req.CompletedAt != "" {
				updates["completed_at"] = req.CompletedAt
				existing.CompletedAt = &req.CompletedAt
			}
			if len(updates) > 0 {
				if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
					return nil, nil, fmt.Errorf("failed to update shooting session: %w", err)
				}
			}
			return nil, &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to check shooting session: %w", err)
		}

		created := models.ActualActivity{
			ID:            uuid.New(),
			TrainingDayID: day.ID,
			Type:          models.ActivityShooting,
		}
		if req.Makes != nil {
			created.ShootingMakes = *req.Makes
		}
		if req.CompletedAt != "" {
			created.CompletedAt = &req.CompletedAt
		}
		if err := s.db.Create(&created).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to log shooting session: %w", err)
		}
		return nil, &created, nil
	}

	// pickup / custom completions append
	created := models.ActualActivity{
		ID:            uuid.New(),
		TrainingDayID: day.ID,
		Type:          typ,
		CompletedAt:   &completedAt,
	}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, &created, nil
}

// UpdateActual patches the completion time and makes of an actual
// activity owned by the user.
func (s *TrainingService) UpdateActual(userID uuid.UUID, id uuid.UUID, req dto.UpdateActualRequest) (*models.ActualActivity, error) {
	if req.CompletedAt != nil && !ValidClock(*req.CompletedAt) {
		return nil, ErrInvalidTime
	}
	if req.Makes != nil && *req.Makes < 0 {
		return nil, ErrInvalidMakes
	}

	var activity models.ActualActivity
	err := s.db.Where("id = ? AND training_day_id IN (?)", id, s.userDays(userID)).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	updates := map[string]interface{}{}
	if req.CompletedAt != nil {
		updates["completed_at"] = *req.CompletedAt
		activity.CompletedAt = req.CompletedAt
	}
	if req.Makes != nil && activity.Type == models.ActivityShooting {
		updates["shooting_makes"] = *req.Makes
		activity.ShootingMakes = *req.Makes
	}
	if len(updates) == 0 {
		return &activity, nil
	}

	if err := s.db.Model(&activity).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return &activity, nil
}

// QuickMakes upserts the day's shooting makes. The completion time is
// auto-stamped with the current time the first time the count crosses
// the perfect-day threshold, unless one was already set or provided.
func (s *TrainingService) QuickMakes(userID uuid.UUID, date time.Time, req dto.QuickMakesRequest) (*models.ActualActivity, error) {
	if req.Makes < 0 {
		return nil, ErrInvalidMakes
	}
	if req.CompletedAt != "" && !ValidClock(req.CompletedAt) {
		return nil, ErrInvalidTime
	}

	day, err := s.GetOrCreateDay(userID, date)
	if err != nil {
		return nil, err
	}

	var existing models.ActualActivity
	err = s.db.Where("training_day_id = ? AND type = ?", day.ID, models.ActivityShooting).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check shooting session: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := models.ActualActivity{
			ID:            uuid.New(),
			TrainingDayID: day.ID,
			Type:          models.ActivityShooting,
			ShootingMakes: req.Makes,
		}
		if stamp := completionStamp(0, req.Makes, nil, req.CompletedAt); stamp != nil {
			created.CompletedAt = stamp
		}
		if err := s.db.Create(&created).Error; err != nil {
			return nil, fmt.Errorf("failed to log shooting session: %w", err)
		}
		return &created, nil
	}

	updates := map[string]interface{}{"shooting_makes": req.Makes}
	if stamp := completionStamp(existing.ShootingMakes, req.Makes, existing.CompletedAt, req.CompletedAt); stamp != nil {
		updates["completed_at"] = *stamp
		existing.CompletedAt = stamp
	}
	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update shooting session: %w", err)
	}
	existing.ShootingMakes = req.Makes
	return &existing, nil
}

// completionStamp decides what completion time a quick makes update
// should write, if any. An explicit time always wins; otherwise the
// current time is stamped only when the count first crosses the
// threshold and no time was recorded yet.
func completionStamp(prevMakes, newMakes int, existing *string, provided string) *string {
	if provided != "" {
		return &provided
	}
	if existing != nil {
		return nil
	}
	if prevMakes < PerfectDayMakes && newMakes >= PerfectDayMakes {
		now := nowClock()
		return &now
	}
	return nil
}

// BuildDayView reconciles a day's raw planned and actual records into
// the structured view clients consume. Pure: the input is not mutated
// and duplicate records never cause a failure (last write wins for the
// single-slot fields).
func BuildDayView(day *models.TrainingDay) dto.DayView {
	view := dto.DayView{
		ID:        day.ID,
		Date:      day.Date.Format("2006-01-02"),
		IsGameDay: day.IsGameDay,
		Planned: dto.PlannedView{
			Pickup: []dto.PlannedPickupSlot{},
			Custom: []dto.PlannedCustomSlot{},
		},
		Actual: dto.ActualView{
			Pickup: []dto.ActualCompletion{},
			Custom: []dto.ActualCompletion{},
		},
	}

	for _, p := range day.Planned {
		switch p.Type {
		case models.ActivityShooting:
			view.Planned.Shooting = &dto.PlannedShootingSlot{ID: p.ID, Time: p.Time}
		case models.ActivityPickup:
			slot := dto.PlannedPickupSlot{ID: p.ID, Time: p.Time}
			if p.Location != nil {
				slot.Location = *p.Location
			}
			view.Planned.Pickup = append(view.Planned.Pickup, slot)
		case models.ActivityCustom:
			slot := dto.PlannedCustomSlot{ID: p.ID, Time: p.Time}
			if p.Name != nil {
				slot.Name = *p.Name
			}
			view.Planned.Custom = append(view.Planned.Custom, slot)
		}
	}

	for _, a := range day.Actual {
		switch a.Type {
		case models.ActivityShooting:
			view.Actual.Shooting = dto.ActualShootingView{
				Makes:       a.ShootingMakes,
				CompletedAt: a.CompletedAt,
			}
		case models.ActivityCoachSkills:
			view.Actual.CoachSkills = true
		case models.ActivityCoachWeights:
			view.Actual.CoachWeights = true
		case models.ActivityVarsity:
			view.Actual.Varsity = true
		case models.ActivityPickup:
			view.Actual.Pickup = append(view.Actual.Pickup, dto.ActualCompletion{ID: a.ID, CompletedAt: a.CompletedAt})
		case models.ActivityCustom:
			view.Actual.Custom = append(view.Actual.Custom, dto.ActualCompletion{ID: a.ID, CompletedAt: a.CompletedAt})
		}
	}

	return view
}
