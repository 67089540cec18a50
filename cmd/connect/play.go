package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-connect/internal/config"
	"github.com/vovakirdan/tui-connect/internal/core"
	"github.com/vovakirdan/tui-connect/internal/games/connect"
	"github.com/vovakirdan/tui-connect/internal/platform/tui"
	"github.com/vovakirdan/tui-connect/internal/registry"
	"github.com/vovakirdan/tui-connect/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLoad       string
	flagSaveName   string
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: connect).

Controls:
  Mouse        - Press on a tile, drag across neighbours, release on the last one
  Arrows/WASD  - Move the cursor (extends the chain while one is active)
  Enter/Space  - Start a chain, or finish it on its last tile
  X            - Drop a single-tile chain
  Esc          - Dismiss the new-block dialog
  P            - Pause
  E            - End the run and record the score
  R            - New board (after the run ended)
  Ctrl+S       - Save the board
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Two values in play at a time
  normal - The board's own setting
  hard   - Five values in play at a time

Examples:
  connect play
  connect play connect_mini --difficulty easy
  connect play --width 6 --height 10
  connect play --load morning
  connect play --config ./my-connect.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Resume a saved board by name")
	playCmd.Flags().StringVar(&flagSaveName, "save-as", "", "Name used by Ctrl+S (default: the board ID, or the loaded save)")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Override board width")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Override board height")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "connect"
	if len(args) > 0 {
		gameID = args[0]
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores and saves are disabled", "error", err)
		store = nil
	}

	saveName := flagSaveName
	if flagLoad != "" {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: --load needs the database")
			os.Exit(1)
		}
		save, loadErr := store.LoadGame(flagLoad)
		if loadErr != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", loadErr)
			os.Exit(1)
		}
		gameID = save.Variant
		if err := connect.SetPendingLoad(save.Snapshot); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: save %q: %v\n", save.Name, err)
			os.Exit(1)
		}
		if saveName == "" {
			saveName = save.Name
		}
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'connect list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	gameLogger, closeLog := openGameLogger()
	runErr := tui.Run(game, store, runtimeConfig(), tui.Options{
		SaveName: saveName,
		Logger:   gameLogger,
	})
	closeLog()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyGameFlags checks --config and --difficulty and hands them to the game.
func applyGameFlags() error {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	if flagConfig != "" {
		if _, err := config.LoadConnect(flagConfig); err != nil {
			return err
		}
	}

	connect.SetConfigPath(flagConfig)
	connect.SetDifficulty(preset)
	connect.SetSize(flagWidth, flagHeight)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
