package dto

import "github.com/google/uuid"

// --- day view (reconciled planned/actual structure) ---

type PlannedShootingSlot struct {
	ID   uuid.UUID `json:"id"`
	Time string    `json:"time"`
}

type PlannedPickupSlot struct {
	ID       uuid.UUID `json:"id"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
}

type PlannedCustomSlot struct {
	ID   uuid.UUID `json:"id"`
	Time string    `json:"time"`
	Name string    `json:"name"`
}

type PlannedView struct {
	Shooting *PlannedShootingSlot `json:"shooting"`
	Pickup   []PlannedPickupSlot  `json:"pickup"`
	Custom   []PlannedCustomSlot  `json:"custom"`
}

type ActualShootingView struct {
	Makes       int     `json:"makes"`
	CompletedAt *string `json:"completed_at"`
}

type ActualCompletion struct {
	ID          uuid.UUID `json:"id"`
	CompletedAt *string   `json:"completed_at"`
}

type ActualView struct {
	Shooting     ActualShootingView `json:"shooting"`
	CoachSkills  bool               `json:"coach_skills"`
	CoachWeights bool               `json:"coach_weights"`
	Varsity      bool               `json:"varsity"`
	Pickup       []ActualCompletion `json:"pickup"`
	Custom       []ActualCompletion `json:"custom"`
}

type DayView struct {
	ID        uuid.UUID   `json:"id"`
	Date      string      `json:"date"`
	IsGameDay bool        `json:"is_game_day"`
	Planned   PlannedView `json:"planned"`
	Actual    ActualView  `json:"actual"`
}

// --- mutation requests ---

type UpdateDayRequest struct {
	IsGameDay *bool `json:"is_game_day"`
}

type AddPlannedRequest struct {
	Type     string `json:"type"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Name     string `json:"name"`
}

type LogActualRequest struct {
	Type        string `json:"type"`
	CompletedAt string `json:"completed_at"`
	Makes       *int   `json:"makes"`
}

type UpdateActualRequest struct {
	CompletedAt *string `json:"completed_at"`
	Makes       *int    `json:"makes"`
}

type QuickMakesRequest struct {
	Makes       int    `json:"makes"`
	CompletedAt string `json:"completed_at"`
}

type ToggleResponse struct {
	Type    string `json:"type"`
	Present bool   `json:"present"`
}
