package storage

import "tempo/internal/domain"

// taskModelToDomain converts a TaskModel (GORM) to domain.Task
func taskModelToDomain(m TaskModel) domain.Task {
	return domain.Task{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		Title:           m.Title,
		EstimateMinutes: m.EstimateMinutes,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
	}
}

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session
func sessionModelToDomain(m SessionModel) domain.Session {
	return domain.Session{
		ID:              m.ID,
		TaskID:          m.TaskID,
		ProjectID:       m.ProjectID,
		StartedAt:       m.StartedAt,
		EndedAt:         m.EndedAt,
		DurationSeconds: m.DurationSeconds,
		IsManual:        m.IsManual,
		Intensity:       m.Intensity,
	}
}

// sessionModelToOpen converts an open SessionModel with its preloaded
// task to the hydration shape
func sessionModelToOpen(m SessionModel) domain.OpenSession {
	return domain.OpenSession{
		SessionID: m.ID,
		Task: domain.TaskRef{
			TaskID:          m.TaskID,
			ProjectID:       m.ProjectID,
			Title:           m.Task.Title,
			EstimateMinutes: m.Task.EstimateMinutes,
		},
		StartedAt: m.StartedAt,
	}
}
