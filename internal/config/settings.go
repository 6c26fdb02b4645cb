package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds user configuration loaded from ~/.tempo/settings.json.
// Pointer fields distinguish "not configured" from an explicit zero
// value, so CLI flags and environment variables can take precedence.
type Settings struct {
	DBPath       string `json:"db_path,omitempty"`
	SnapshotPath string `json:"snapshot_path,omitempty"`
	Debug        *bool  `json:"debug,omitempty"`
	MaxLogFiles  *int   `json:"max_log_files,omitempty"`
}

// HomeDir returns the tempo home directory (~/.tempo).
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tempo"), nil
}

// LoadSettings reads settings.json from the tempo home directory. A
// missing file is not an error; defaults apply.
func LoadSettings() (*Settings, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}

// DatabasePath resolves the SQLite database path: configured value
// first, ~/.tempo/tempo.db otherwise.
func (s *Settings) DatabasePath() (string, error) {
	if s != nil && s.DBPath != "" {
		return ExpandPath(s.DBPath)
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tempo.db"), nil
}

// SnapshotFilePath resolves the local timer snapshot path: configured
// value first, ~/.tempo/timers.json otherwise.
func (s *Settings) SnapshotFilePath() (string, error) {
	if s != nil && s.SnapshotPath != "" {
		return ExpandPath(s.SnapshotPath)
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timers.json"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}
