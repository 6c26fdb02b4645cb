package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"tempo/internal/domain"
	"tempo/internal/ports"
)

// TaskTotal is one task's share of a project's tracked time
type TaskTotal struct {
	TaskID       uint
	Title        string
	TotalSeconds int64
}

// ProjectTotal aggregates tracked time for one project in a range
type ProjectTotal struct {
	ProjectID     uint
	TotalSeconds  int64
	ManualSeconds int64
	SessionCount  int
	Tasks         []TaskTotal
}

// Report is tracked time over a date range, grouped per project
type Report struct {
	From         time.Time
	To           time.Time
	TotalSeconds int64
	Projects     []ProjectTotal
}

// ReportService reduces closed sessions into per-project totals
type ReportService struct {
	sessions ports.SessionReader
	tasks    ports.TaskStore
}

// NewReportService creates a new ReportService
func NewReportService(sessions ports.SessionReader, tasks ports.TaskStore) *ReportService {
	return &ReportService{sessions: sessions, tasks: tasks}
}

// Range builds a report for sessions whose start falls inside
// [from, to). Sessions and task metadata load concurrently.
func (s *ReportService) Range(ctx context.Context, from, to time.Time) (Report, error) {
	var (
		sessions []domain.Session
		tasks    []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.sessions.SessionsInRange(gctx, from, to)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx, true)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	titles := make(map[uint]string, len(tasks))
	for _, task := range tasks {
		titles[task.ID] = task.Title
	}

	projects := make(map[uint]*ProjectTotal)
	taskTotals := make(map[uint]map[uint]int64) // project id -> task id -> seconds

	report := Report{From: from, To: to}
	for _, session := range sessions {
		p, ok := projects[session.ProjectID]
		if !ok {
			p = &ProjectTotal{ProjectID: session.ProjectID}
			projects[session.ProjectID] = p
			taskTotals[session.ProjectID] = make(map[uint]int64)
		}
		p.TotalSeconds += session.DurationSeconds
		p.SessionCount++
		if session.IsManual {
			p.ManualSeconds += session.DurationSeconds
		}
		if session.TaskID != 0 {
			taskTotals[session.ProjectID][session.TaskID] += session.DurationSeconds
		}
		report.TotalSeconds += session.DurationSeconds
	}

	for projectID, p := range projects {
		for taskID, seconds := range taskTotals[projectID] {
			p.Tasks = append(p.Tasks, TaskTotal{
				TaskID:       taskID,
				Title:        titles[taskID],
				TotalSeconds: seconds,
			})
		}
		sort.Slice(p.Tasks, func(i, j int) bool {
			return p.Tasks[i].TotalSeconds > p.Tasks[j].TotalSeconds
		})
		report.Projects = append(report.Projects, *p)
	}
	sort.Slice(report.Projects, func(i, j int) bool {
		return report.Projects[i].TotalSeconds > report.Projects[j].TotalSeconds
	})

	return report, nil
}
