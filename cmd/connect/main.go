// connect is a terminal number-chaining puzzle: drag across neighbouring
// tiles of equal or rising value to merge them into a bigger block.
//
// Usage:
//
//	connect list                    - List available boards
//	connect play [board]            - Play a board (default: connect)
//	connect menu                    - Pick boards interactively
//	connect scores [board]          - Show high scores for a board
//	connect saves                   - List, export, import or delete saved boards
//	connect board [board]           - Print a freshly dealt board
//	connect serve                   - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.connect/connect.db)
//	--log <path>    - Write debug log to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the game to register its boards
	_ "github.com/vovakirdan/tui-connect/internal/games/connect"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

// logger reports CLI warnings on stderr, before any TUI takes the screen.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "connect"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect - chain matching tiles in your terminal",
	Long: `Connect is a terminal puzzle. Drag across adjacent tiles of the same
value (or one step higher) to merge them into a single bigger tile.
Every time a new top value appears, the smallest value leaves the board.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker
  scores   - View high scores
  saves    - Manage saved boards
  board    - Print a dealt board without playing
  serve    - Start SSH server for remote play

Examples:
  connect play
  connect play connect_wide --difficulty hard
  connect play --load morning
  connect saves export morning morning.yaml
  connect serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.connect/connect.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug log to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// openGameLogger returns a file logger for the TUI, or nil when --log is unset.
// The returned close function is always safe to call.
func openGameLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("could not open log file", "path", flagLogPath, "error", err)
		return nil, func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "connect",
	})
	return l, func() { f.Close() }
}
