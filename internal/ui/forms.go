package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"tempo/internal/domain"
	"tempo/internal/ports"
)

// startForm picks a task to start a timer for
type startForm struct {
	form   *huh.Form
	taskID uint
}

func newStartForm(tasks ports.TaskStore) (*startForm, error) {
	list, err := tasks.List(context.Background(), false)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if len(list) == 0 {
		return nil, errors.New("no open tasks; create one with 'tempo tasks add'")
	}

	sf := &startForm{}
	options := make([]huh.Option[uint], 0, len(list))
	for _, task := range list {
		options = append(options, huh.NewOption(fmt.Sprintf("#%d %s", task.ID, task.Title), task.ID))
	}

	sf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uint]().
				Title("Start timer for").
				Options(options...).
				Value(&sf.taskID),
		),
	)
	return sf, nil
}

func (f *startForm) Init() tea.Cmd { return f.form.Init() }

// Update forwards msg to the embedded form and reports completion
func (f *startForm) Update(msg tea.Msg) (done, cancelled bool, cmd tea.Cmd) {
	model, cmd := f.form.Update(msg)
	if fm, ok := model.(*huh.Form); ok {
		f.form = fm
	}
	switch f.form.State {
	case huh.StateCompleted:
		return true, false, cmd
	case huh.StateAborted:
		return true, true, cmd
	}
	return false, false, cmd
}

func (f *startForm) View() string { return f.form.View() }

func (f *startForm) TaskID() uint { return f.taskID }

// logForm collects a manual time entry. Fields are captured as text
// and parsed in Entry; semantic validation stays in the domain.
type logForm struct {
	form *huh.Form

	project   string
	task      string
	date      string
	start     string
	end       string
	duration  string
	intensity int
}

func newLogForm() *logForm {
	lf := &logForm{
		date:      time.Now().Format("2006-01-02"),
		intensity: 3,
	}

	lf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project id").
				Value(&lf.project),
			huh.NewInput().
				Title("Task id (optional)").
				Value(&lf.task),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&lf.date),
			huh.NewInput().
				Title("Start (HH:MM)").
				Description("Leave empty to log a bare duration").
				Value(&lf.start),
			huh.NewInput().
				Title("End (HH:MM)").
				Description("May be past midnight, e.g. 22:00 to 02:00").
				Value(&lf.end),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&lf.duration),
			huh.NewSelect[int]().
				Title("Intensity").
				Options(
					huh.NewOption("1 - light", 1),
					huh.NewOption("2", 2),
					huh.NewOption("3 - steady", 3),
					huh.NewOption("4", 4),
					huh.NewOption("5 - intense", 5),
				).
				Value(&lf.intensity),
		),
	)
	return lf
}

func (f *logForm) Init() tea.Cmd { return f.form.Init() }

func (f *logForm) Update(msg tea.Msg) (done, cancelled bool, cmd tea.Cmd) {
	model, cmd := f.form.Update(msg)
	if fm, ok := model.(*huh.Form); ok {
		f.form = fm
	}
	switch f.form.State {
	case huh.StateCompleted:
		return true, false, cmd
	case huh.StateAborted:
		return true, true, cmd
	}
	return false, false, cmd
}

func (f *logForm) View() string { return f.form.View() }

// Entry parses the captured fields into a manual entry. Malformed
// inputs come back as per-field errors, matching the domain's
// validation shape.
func (f *logForm) Entry() (domain.ManualEntry, error) {
	errs := domain.FieldErrors{}
	entry := domain.ManualEntry{Intensity: f.intensity}

	if f.project != "" {
		id, err := strconv.ParseUint(f.project, 10, 32)
		if err != nil {
			errs["project"] = "project id must be a number"
		} else {
			entry.ProjectID = uint(id)
		}
	}
	if f.task != "" {
		id, err := strconv.ParseUint(f.task, 10, 32)
		if err != nil {
			errs["task"] = "task id must be a number"
		} else {
			entry.TaskID = uint(id)
		}
	}
	if f.date != "" {
		day, err := time.ParseInLocation("2006-01-02", f.date, time.Local)
		if err != nil {
			errs["date"] = "date must be YYYY-MM-DD"
		} else {
			entry.Date = day
		}
	}
	if f.start != "" {
		clock, err := time.Parse("15:04", f.start)
		if err != nil {
			errs["start"] = "start must be HH:MM"
		} else {
			entry.StartClock = clock
		}
	}
	if f.end != "" {
		clock, err := time.Parse("15:04", f.end)
		if err != nil {
			errs["end"] = "end must be HH:MM"
		} else {
			entry.EndClock = clock
		}
	}
	if f.duration != "" {
		minutes, err := strconv.Atoi(f.duration)
		if err != nil {
			errs["duration"] = "duration must be whole minutes"
		} else {
			entry.DurationMinutes = minutes
		}
	}

	if len(errs) > 0 {
		return domain.ManualEntry{}, errs
	}
	return entry, nil
}
