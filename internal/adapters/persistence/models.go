package persistence

import (
	"time"
)

// GameSessionModel represents the game_sessions table.
// The project state is stored in columns; targets and the log as JSON text.
type GameSessionModel struct {
	ID    string `gorm:"column:id;primaryKey;not null"`
	Seed  int64  `gorm:"column:seed;not null"`
	Draws int64  `gorm:"column:draws;not null;default:0"` // random values consumed since seeding

	Targets string `gorm:"column:targets;type:text;not null"` // JSON as text

	Month              int     `gorm:"column:month;not null"`
	Budget             int64   `gorm:"column:budget;not null"`
	TimeRemaining      float64 `gorm:"column:time_remaining;not null"`
	ScopeProgress      int     `gorm:"column:scope_progress;not null"`
	Quality            float64 `gorm:"column:quality;not null"`
	Safety             float64 `gorm:"column:safety;not null"`
	ClientSatisfaction float64 `gorm:"column:client_satisfaction;not null"`
	Morale             float64 `gorm:"column:morale;not null"`
	CostOfRisk         int64   `gorm:"column:cost_of_risk;not null;default:0"`
	Halted             bool    `gorm:"column:halted;not null;default:false"`
	Log                string  `gorm:"column:log;type:text"` // JSON array as text

	PendingMonth    *int   `gorm:"column:pending_month"`
	PendingScenario string `gorm:"column:pending_scenario"`

	Over      bool      `gorm:"column:over;not null;default:false"`
	Decisions int       `gorm:"column:decisions;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index;autoUpdateTime:false"`
}

func (GameSessionModel) TableName() string {
	return "game_sessions"
}
