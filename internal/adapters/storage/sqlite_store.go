package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// SQLiteStore implements the session and task stores using GORM. It is
// the system of record: the timer engine treats it as authoritative
// over any locally cached state.
type SQLiteStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var (
	_ ports.SessionStore = (*SQLiteStore)(nil)
	_ ports.TaskStore    = (*SQLiteStore)(nil)
)

// gormLogger wraps the tempo logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	} else {
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TEMPO_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for concurrent access (CLI, TUI, and SSH sessions share
	// one database)
	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := db.Exec("PRAGMA busy_timeout=5000;").Error; err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.AutoMigrate(&TaskModel{}, &SessionModel{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateOpenSession inserts a new open session and returns its id.
func (s *SQLiteStore) CreateOpenSession(ctx context.Context, taskID, projectID uint, startedAt time.Time) (uint, error) {
	model := SessionModel{
		TaskID:    taskID,
		ProjectID: projectID,
		StartedAt: startedAt,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	return model.ID, nil
}

// CloseSession finalizes an open session. Closing a session that does
// not exist or is already closed returns domain.ErrSessionNotFound.
func (s *SQLiteStore) CloseSession(ctx context.Context, sessionID uint, endedAt time.Time, durationSeconds int64) error {
	result := s.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ? AND ended_at IS NULL", sessionID).
		Updates(map[string]any{
			"ended_at":         endedAt,
			"duration_seconds": durationSeconds,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to close session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session %d is not open: %w", sessionID, domain.ErrSessionNotFound)
	}
	return nil
}

// CreateManualSession inserts an already-normalized manual entry.
func (s *SQLiteStore) CreateManualSession(ctx context.Context, session domain.Session) (uint, error) {
	model := SessionModel{
		TaskID:          session.TaskID,
		ProjectID:       session.ProjectID,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		DurationSeconds: session.DurationSeconds,
		IsManual:        true,
		Intensity:       session.Intensity,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to create manual session: %w", err)
	}
	return model.ID, nil
}

// ListOpenSessions returns every open session with its task metadata.
func (s *SQLiteStore) ListOpenSessions(ctx context.Context) ([]domain.OpenSession, error) {
	var models []SessionModel
	err := s.db.WithContext(ctx).
		Preload("Task").
		Where("ended_at IS NULL").
		Order("started_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	open := make([]domain.OpenSession, 0, len(models))
	for _, m := range models {
		open = append(open, sessionModelToOpen(m))
	}
	return open, nil
}

// SessionsInRange returns closed sessions whose start falls inside
// [from, to), ordered by start time.
func (s *SQLiteStore) SessionsInRange(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	var models []SessionModel
	err := s.db.WithContext(ctx).
		Where("started_at >= ? AND started_at < ? AND ended_at IS NOT NULL", from, to).
		Order("started_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]domain.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, sessionModelToDomain(m))
	}
	return sessions, nil
}

// Create inserts a new task. Status defaults to todo when empty.
func (s *SQLiteStore) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	model := TaskModel{
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		EstimateMinutes: task.EstimateMinutes,
		Status:          task.Status,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return taskModelToDomain(model), nil
}

// Get fetches a task by id.
func (s *SQLiteStore) Get(ctx context.Context, id uint) (domain.Task, error) {
	var model TaskModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
		}
		return domain.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return taskModelToDomain(model), nil
}

// List returns tasks ordered by creation time, excluding done tasks
// unless includeDone is set.
func (s *SQLiteStore) List(ctx context.Context, includeDone bool) ([]domain.Task, error) {
	query := s.db.WithContext(ctx).Order("created_at ASC")
	if !includeDone {
		query = query.Where("status <> ?", domain.TaskStatusDone)
	}

	var models []TaskModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, taskModelToDomain(m))
	}
	return tasks, nil
}

// MarkInProgress transitions a task to in_progress. Used by the timer
// engine as a best-effort side effect on Start.
func (s *SQLiteStore) MarkInProgress(ctx context.Context, taskID uint) error {
	result := s.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ?", taskID).
		Update("status", domain.TaskStatusInProgress)
	if result.Error != nil {
		return fmt.Errorf("failed to update task status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", taskID, domain.ErrTaskNotFound)
	}
	return nil
}
