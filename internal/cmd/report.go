package cmd

import (
	"context"
	"fmt"
	"time"

	"tempo/internal/domain"
)

// ReportCmd shows tracked time per project over a date range
type ReportCmd struct {
	From string `help:"Range start (YYYY-MM-DD, defaults to 7 days ago)"`
	To   string `help:"Range end, exclusive (YYYY-MM-DD, defaults to tomorrow)"`
}

// Run executes the report command
func (r *ReportCmd) Run(cli *CLI) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	from := today.AddDate(0, 0, -7)
	to := today.AddDate(0, 0, 1)

	var err error
	if r.From != "" {
		from, err = time.ParseInLocation("2006-01-02", r.From, time.Local)
		if err != nil {
			return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
		}
	}
	if r.To != "" {
		to, err = time.ParseInLocation("2006-01-02", r.To, time.Local)
		if err != nil {
			return fmt.Errorf("--to must be YYYY-MM-DD: %w", err)
		}
	}

	report, err := cli.Container.Report.Range(context.Background(), from, to)
	if err != nil {
		return err
	}

	fmt.Printf("Tracked time %s to %s\n", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if len(report.Projects) == 0 {
		fmt.Println("  no sessions in range")
		return nil
	}

	for _, project := range report.Projects {
		fmt.Printf("\nproject %d: %s (%d sessions", project.ProjectID,
			domain.FormatDuration(project.TotalSeconds), project.SessionCount)
		if project.ManualSeconds > 0 {
			fmt.Printf(", %s manual", domain.FormatDuration(project.ManualSeconds))
		}
		fmt.Println(")")

		for _, task := range project.Tasks {
			title := task.Title
			if title == "" {
				title = "(unknown task)"
			}
			fmt.Printf("  #%-4d %-8s %s\n", task.TaskID, domain.FormatDuration(task.TotalSeconds), title)
		}
	}

	fmt.Printf("\ntotal %s\n", domain.FormatDuration(report.TotalSeconds))
	return nil
}
