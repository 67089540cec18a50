package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect/internal/config"
	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

var boardCmd = &cobra.Command{
	Use:   "board [board]",
	Short: "Print a freshly dealt board",
	Long: `Deal a board without starting the game and print its values.
Combine with --seed to reproduce a board.

Examples:
  connect board
  connect board connect_wide --seed 42
  connect board --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	boardCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	boardCmd.Flags().IntVar(&flagWidth, "width", 0, "Override board width")
	boardCmd.Flags().IntVar(&flagHeight, "height", 0, "Override board height")
}

func runBoard(_ *cobra.Command, args []string) error {
	gameID := "connect"
	if len(args) > 0 {
		gameID = args[0]
	}

	cfg, err := config.LoadConnect(flagConfig)
	if err != nil {
		return err
	}
	variant, ok := cfg.Variant(gameID)
	if !ok {
		return fmt.Errorf("unknown board %q", gameID)
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyConnectPreset(&variant, preset)
	if flagWidth >= 2 {
		variant.Width = flagWidth
	}
	if flagHeight >= 2 {
		variant.Height = flagHeight
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	window, err := engine.NewWindow(variant.MinLevel, variant.MaxLevel)
	if err != nil {
		return err
	}
	session, err := engine.NewSession(variant.Width, variant.Height, window, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s  seed %d  blocks %d-%d (%d kinds)  top %d\n\n",
		variant.Title, seed, engine.LevelValue(window.Min), engine.LevelValue(window.Max-1),
		window.Size(), engine.LevelValue(session.Grid().MaxLevel()))
	fmt.Println(session.Grid().String())
	return nil
}
