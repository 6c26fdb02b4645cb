package cmd

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tempo/internal/domain"
)

// StartCmd starts (or resumes) a timer for a task
type StartCmd struct {
	TaskID uint `arg:"" help:"Task to track time for"`
}

// Run executes the start command
func (s *StartCmd) Run(cli *CLI) error {
	ctx := context.Background()

	task, err := cli.Container.Tasks.Get(ctx, s.TaskID)
	if err != nil {
		return err
	}

	timer, err := cli.Container.Engine.Start(ctx, task.Ref())
	if err != nil {
		return err
	}

	fmt.Printf("Tracking #%d %s (%s)\n",
		task.ID, task.Title, domain.FormatClock(timer.ElapsedSeconds(cli.Container.Engine.Now())))
	return nil
}

// PauseCmd pauses the timer for a task
type PauseCmd struct {
	TaskID uint `arg:"" help:"Task whose timer to pause"`
}

// Run executes the pause command
func (p *PauseCmd) Run(cli *CLI) error {
	timer, ok := cli.Container.Engine.TimerForTask(p.TaskID)
	if !ok {
		fmt.Printf("No active timer for task %d\n", p.TaskID)
		return nil
	}

	timer, err := cli.Container.Engine.Pause(timer.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Paused #%d at %s\n", p.TaskID, domain.FormatClock(timer.AccumulatedSeconds))
	return nil
}

// ResumeCmd resumes the paused timer for a task
type ResumeCmd struct {
	TaskID uint `arg:"" help:"Task whose timer to resume"`
}

// Run executes the resume command
func (r *ResumeCmd) Run(cli *CLI) error {
	timer, ok := cli.Container.Engine.TimerForTask(r.TaskID)
	if !ok {
		fmt.Printf("No active timer for task %d\n", r.TaskID)
		return nil
	}

	if _, err := cli.Container.Engine.Resume(timer.ID); err != nil {
		return err
	}

	fmt.Printf("Resumed #%d\n", r.TaskID)
	return nil
}

// StopCmd stops a timer and records its session
type StopCmd struct {
	TaskID uint `arg:"" optional:"" help:"Task whose timer to stop (defaults to the selected timer)"`
	All    bool `help:"Stop every active timer"`
}

// Run executes the stop command
func (s *StopCmd) Run(cli *CLI) error {
	ctx := context.Background()
	eng := cli.Container.Engine

	if s.All {
		timers := eng.Timers()
		if len(timers) == 0 {
			fmt.Println("No active timers")
			return nil
		}

		// Independent timers stop independently; one failing close
		// does not hold the others back
		g, gctx := errgroup.WithContext(ctx)
		for _, timer := range timers {
			g.Go(func() error {
				final, err := eng.Stop(gctx, timer.ID)
				if err != nil {
					return err
				}
				fmt.Printf("Stopped #%d %s after %s\n",
					timer.Task.TaskID, timer.Task.Title, domain.FormatDuration(final))
				return nil
			})
		}
		return g.Wait()
	}

	var timer domain.Timer
	if s.TaskID != 0 {
		t, ok := eng.TimerForTask(s.TaskID)
		if !ok {
			return fmt.Errorf("task %d: %w", s.TaskID, domain.ErrTimerNotFound)
		}
		timer = t
	} else {
		t, ok := eng.Selected()
		if !ok {
			fmt.Println("No active timers")
			return nil
		}
		timer = t
	}

	final, err := eng.Stop(ctx, timer.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Stopped #%d %s after %s\n",
		timer.Task.TaskID, timer.Task.Title, domain.FormatDuration(final))
	return nil
}

// StatusCmd shows active timers
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	eng := cli.Container.Engine
	timers := eng.Timers()
	if len(timers) == 0 {
		fmt.Println("No active timers")
		return nil
	}

	// One clock sample for the whole listing
	now := eng.Now()
	for _, timer := range timers {
		state := "running"
		if !timer.Running() {
			state = "paused"
		}
		fmt.Printf("#%-4d %-8s %8s  %s\n",
			timer.Task.TaskID, state, domain.FormatClock(timer.ElapsedSeconds(now)), timer.Task.Title)
	}

	if len(timers) > 1 {
		total := domain.TotalElapsedSeconds(timers, now)
		fmt.Printf("total %s across %d timers\n", domain.FormatClock(total), len(timers))
	}
	return nil
}
