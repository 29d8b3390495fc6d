package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shotstreak/shotstreak-backend/internal/dto"
	"github.com/shotstreak/shotstreak-backend/internal/models"
	"gorm.io/gorm"
)

// streakLookbackDays caps the backward walk so a corrupt history can
// never turn the streak query into an unbounded scan.
const streakLookbackDays = 365

// onTimeToleranceMinutes is the planned-vs-actual gap still counted as
// on time by the weekly consistency score.
const onTimeToleranceMinutes = 30

type StatsService struct {
	db       *gorm.DB
	training *TrainingService
}

func NewStatsService(db *gorm.DB, training *TrainingService) *StatsService {
	return &StatsService{db: db, training: training}
}

// Today returns the current UTC date truncated to midnight.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// Streak returns the user's consecutive perfect-day streak ending at or
// adjacent to today.
func (s *StatsService) Streak(userID uuid.UUID, today time.Time) (int, error) {
	return computeStreak(func(date time.Time) (int, error) {
		return s.shootingMakes(userID, date)
	}, today)
}

// shootingMakes returns the shooting make count recorded for the date,
// 0 when no day or session exists.
func (s *StatsService) shootingMakes(userID uuid.UUID, date time.Time) (int, error) {
	var makes int
	err := s.db.Model(&models.ActualActivity{}).
		Joins("JOIN training_days ON training_days.id = actual_activities.training_day_id").
		Where("training_days.user_id = ? AND training_days.date = ? AND actual_activities.type = ?",
			userID, date, models.ActivityShooting).
		Select("COALESCE(SUM(actual_activities.shooting_makes), 0)").
		Scan(&makes).Error
	if err != nil {
		return 0, fmt.Errorf("failed to fetch shooting makes: %w", err)
	}
	return makes, nil
}

// computeStreak walks backward day by day from today counting perfect
// days. Today gets special treatment: an incomplete today does not
// break an otherwise active streak, since the user may still be mid
// session. Only a past day below the threshold ends the walk.
func computeStreak(makesOn func(time.Time) (int, error), today time.Time) (int, error) {
	streak := 0
	date := today

	for i := 0; i < streakLookbackDays; i++ {
		makes, err := makesOn(date)
		if err != nil {
			return 0, err
		}

		if makes >= PerfectDayMakes {
			streak++
			date = date.AddDate(0, 0, -1)
			continue
		}

		if streak > 0 || date.Before(today) {
			break
		}

		// today hasn't hit the threshold yet; yesterday may still count
		date = date.AddDate(0, 0, -1)
	}

	return streak, nil
}

// Weekly summarizes the trailing 7-day window ending at today.
func (s *StatsService) Weekly(userID uuid.UUID, today time.Time) (*dto.WeeklyStatsResponse, error) {
	start := today.AddDate(0, 0, -6)
	days, err := s.training.DaysInRange(userID, start, today)
	if err != nil {
		return nil, err
	}
	resp := computeWeekly(days, today)
	return &resp, nil
}

// computeWeekly builds the 7-day report from the window's training day
// records. Dates with no record count as zero makes. The timing
// consistency score matches each planned activity against the first
// actual of the same type on the same day; a gap of at most 30 minutes
// counts as on time.
func computeWeekly(days []models.TrainingDay, today time.Time) dto.WeeklyStatsResponse {
	byDate := make(map[string]*models.TrainingDay, len(days))
	for i := range days {
		byDate[days[i].Date.Format("2006-01-02")] = &days[i]
	}

	resp := dto.WeeklyStatsResponse{
		DailyStats: make([]dto.DailyStat, 0, 7),
	}

	completed := 0
	plannedTotal := 0
	onTime := 0

	for offset := -6; offset <= 0; offset++ {
		date := today.AddDate(0, 0, offset)
		key := date.Format("2006-01-02")

		makes := 0
		if day, ok := byDate[key]; ok {
			makes = dayShootingMakes(day)

			for _, p := range day.Planned {
				plannedTotal++
				match := firstActualOfType(day, p.Type)
				if match == nil || match.CompletedAt == nil {
					continue
				}
				diff := clockMinutes(p.Time) - clockMinutes(*match.CompletedAt)
				if diff < 0 {
					diff = -diff
				}
				if diff <= onTimeToleranceMinutes {
					onTime++
				}
			}
		}

		isCompleted := makes >= PerfectDayMakes
		if isCompleted {
			completed++
		}
		resp.TotalMakes += makes

		resp.DailyStats = append(resp.DailyStats, dto.DailyStat{
			Date:      key,
			Weekday:   int(date.Weekday()),
			Makes:     makes,
			Completed: isCompleted,
		})
	}

	resp.CompletionPct = int(math.Round(100 * float64(completed) / 7))
	if plannedTotal > 0 {
		resp.ConsistencyScore = int(math.Round(100 * float64(onTime) / float64(plannedTotal)))
	}

	return resp
}

func dayShootingMakes(day *models.TrainingDay) int {
	makes := 0
	for _, a := range day.Actual {
		if a.Type == models.ActivityShooting {
			makes = a.ShootingMakes
		}
	}
	return makes
}

func firstActualOfType(day *models.TrainingDay, typ models.ActivityType) *models.ActualActivity {
	for i := range day.Actual {
		if day.Actual[i].Type == typ {
			return &day.Actual[i]
		}
	}
	return nil
}

// Summary returns all-time shooting totals plus the current streak.
func (s *StatsService) Summary(userID uuid.UUID, today time.Time) (*dto.SummaryResponse, error) {
	var agg struct {
		TotalMakes  int
		Sessions    int
		PerfectDays int
	}
	err := s.db.Model(&models.ActualActivity{}).
		Joins("JOIN training_days ON training_days.id = actual_activities.training_day_id").
		Where("training_days.user_id = ? AND actual_activities.type = ?", userID, models.ActivityShooting).
		Select("COALESCE(SUM(actual_activities.shooting_makes), 0) AS total_makes, "+
			"COUNT(*) AS sessions, "+
			"COUNT(*) FILTER (WHERE actual_activities.shooting_makes >= ?) AS perfect_days", PerfectDayMakes).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shooting stats: %w", err)
	}

	streak, err := s.Streak(userID, today)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResponse{
		TotalMakes:       agg.TotalMakes,
		ShootingSessions: agg.Sessions,
		PerfectDays:      agg.PerfectDays,
		CurrentStreak:    streak,
	}, nil
}
