package storage

import "time"

// TaskModel is the GORM model for the tasks table
type TaskModel struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProjectID       uint   `gorm:"not null;index:idx_tasks_project"`
	Title           string `gorm:"not null"`
	EstimateMinutes int    `gorm:"not null;default:0"`
	Status          string `gorm:"not null;default:'todo';check:status IN ('todo','in_progress','done')"`
}

// TableName specifies the table name for GORM
func (TaskModel) TableName() string { return "tasks" }

// SessionModel is the GORM model for the sessions table. EndedAt is
// NULL while the session is open; open sessions are what hydration
// looks for.
type SessionModel struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TaskID          uint       `gorm:"index:idx_sessions_task"`
	ProjectID       uint       `gorm:"not null;index:idx_sessions_project"`
	StartedAt       time.Time  `gorm:"not null;index:idx_sessions_started"`
	EndedAt         *time.Time `gorm:"index:idx_sessions_ended"`
	DurationSeconds int64      `gorm:"not null;default:0"`
	IsManual        bool       `gorm:"not null;default:false"`
	Intensity       int        `gorm:"not null;default:0"`

	Task TaskModel `gorm:"foreignKey:TaskID"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }
