package dto

type StreakResponse struct {
	Streak int `json:"streak"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Weekday   int    `json:"weekday"`
	Makes     int    `json:"makes"`
	Completed bool   `json:"completed"`
}

type WeeklyStatsResponse struct {
	DailyStats       []DailyStat `json:"daily_stats"`
	CompletionPct    int         `json:"completion_pct"`
	ConsistencyScore int         `json:"consistency_score"`
	TotalMakes       int         `json:"total_makes"`
}

type SummaryResponse struct {
	TotalMakes       int `json:"total_makes"`
	ShootingSessions int `json:"shooting_sessions"`
	PerfectDays      int `json:"perfect_days"`
	CurrentStreak    int `json:"current_streak"`
}
