package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tempo/internal/domain"
)

// LogCmd logs a manual time entry
type LogCmd struct {
	Project   uint   `help:"Project the time belongs to" required:""`
	Task      uint   `help:"Task the time belongs to (optional)"`
	Date      string `help:"Date of the entry (YYYY-MM-DD, defaults to today)"`
	Start     string `help:"Start time (HH:MM)"`
	End       string `help:"End time (HH:MM, may be past midnight)"`
	Duration  int    `help:"Duration in minutes (alternative to start/end)"`
	Intensity int    `help:"Focus intensity 1-5" default:"3"`
}

// Run executes the log command
func (l *LogCmd) Run(cli *CLI) error {
	entry := domain.ManualEntry{
		ProjectID:       l.Project,
		TaskID:          l.Task,
		DurationMinutes: l.Duration,
		Intensity:       l.Intensity,
	}

	if l.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", l.Date, time.Local)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
		entry.Date = day
	} else {
		entry.Date = time.Now()
	}
	if l.Start != "" {
		clock, err := time.Parse("15:04", l.Start)
		if err != nil {
			return fmt.Errorf("--start must be HH:MM: %w", err)
		}
		entry.StartClock = clock
	}
	if l.End != "" {
		clock, err := time.Parse("15:04", l.End)
		if err != nil {
			return fmt.Errorf("--end must be HH:MM: %w", err)
		}
		entry.EndClock = clock
	}

	session, err := cli.Container.Manual.Log(context.Background(), entry)
	if err != nil {
		var fields domain.FieldErrors
		if errors.As(err, &fields) {
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %s: %s\n", name, fields[name])
			}
			return errors.New("entry not logged")
		}
		return err
	}

	fmt.Printf("Logged %s on project %d (session %d)\n",
		domain.FormatDuration(session.DurationSeconds), session.ProjectID, session.ID)
	return nil
}
