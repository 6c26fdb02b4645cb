package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"tempo/internal/config"
	"tempo/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version      kong.VersionFlag `help:"Show version information"`
	Debug        bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile    string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles  int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	DBPath       string           `help:"Path to SQLite database (default ~/.tempo/tempo.db)" type:"path" env:"TEMPO_DB_PATH"`
	SnapshotPath string           `help:"Path to local timer snapshot (default ~/.tempo/timers.json)" type:"path" env:"TEMPO_SNAPSHOT_PATH"`

	Run    RunCmd    `cmd:"" help:"Start the tempo TUI (default)" default:"1"`
	Start  StartCmd  `cmd:"start" help:"Start (or resume) a timer for a task"`
	Pause  PauseCmd  `cmd:"pause" help:"Pause the timer for a task"`
	Resume ResumeCmd `cmd:"resume" help:"Resume the paused timer for a task"`
	Stop   StopCmd   `cmd:"stop" help:"Stop a timer and record its session"`
	Status StatusCmd `cmd:"status" help:"Show active timers"`
	Log    LogCmd    `cmd:"log" help:"Log a manual time entry"`
	Report ReportCmd `cmd:"report" help:"Show tracked time per project over a date range"`
	Tasks  TasksCmd  `cmd:"tasks" help:"Manage tasks (add, list)"`
	Serve  ServeCmd  `cmd:"serve" help:"Serve the TUI over SSH"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Only apply a setting when the flag is at its default value and
	// the env var is not set.

	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("TEMPO_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("TEMPO_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	if c.DBPath == "" {
		dbPath, err := c.settings.DatabasePath()
		if err != nil {
			return err
		}
		c.DBPath = dbPath
	}
	if c.SnapshotPath == "" {
		snapshotPath, err := c.settings.SnapshotFilePath()
		if err != nil {
			return err
		}
		c.SnapshotPath = snapshotPath
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes
	// inherit debug settings and append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("TEMPO_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("TEMPO_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("TEMPO_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the database
	// logger has a place to write
	container, err := NewContainer(c.DBPath, c.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
