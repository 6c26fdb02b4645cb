package cmd

import (
	"context"
	"fmt"

	"tempo/internal/domain"
)

// TasksCmd manages the task catalog
type TasksCmd struct {
	Add  TasksAddCmd  `cmd:"add" help:"Add a task"`
	List TasksListCmd `cmd:"list" help:"List tasks (default)" default:"1"`
}

// TasksAddCmd adds a task
type TasksAddCmd struct {
	Title    string `arg:"" help:"Task title"`
	Project  uint   `help:"Project the task belongs to" required:""`
	Estimate int    `help:"Estimated effort in minutes"`
}

// Run executes the tasks add command
func (a *TasksAddCmd) Run(cli *CLI) error {
	task, err := cli.Container.Tasks.Create(context.Background(), domain.Task{
		ProjectID:       a.Project,
		Title:           a.Title,
		EstimateMinutes: a.Estimate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added #%d %s (project %d)\n", task.ID, task.Title, task.ProjectID)
	return nil
}

// TasksListCmd lists tasks
type TasksListCmd struct {
	All bool `help:"Include done tasks"`
}

// Run executes the tasks list command
func (l *TasksListCmd) Run(cli *CLI) error {
	tasks, err := cli.Container.Tasks.List(context.Background(), l.All)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	for _, task := range tasks {
		estimate := ""
		if task.EstimateMinutes > 0 {
			estimate = fmt.Sprintf(" (~%dm)", task.EstimateMinutes)
		}
		fmt.Printf("#%-4d %-12s p%-3d %s%s\n", task.ID, task.Status, task.ProjectID, task.Title, estimate)
	}
	return nil
}
