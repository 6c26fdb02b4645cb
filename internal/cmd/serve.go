package cmd

import (
	"tempo/internal/server"
)

// ServeCmd serves the TUI over SSH
type ServeCmd struct {
	Host string `help:"Host to bind the SSH server to" default:"0.0.0.0"`
	Port string `help:"Port to bind the SSH server to" default:"23234"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	srv, err := server.NewServer(s.Host, s.Port, cli.DBPath, cli.SnapshotPath)
	if err != nil {
		return err
	}
	return srv.Start()
}
