package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-connect/internal/registry"
	"github.com/vovakirdan/tui-connect/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved boards",
	Long: `List boards saved with Ctrl+S, or move them in and out of the database.

Examples:
  connect saves
  connect saves export morning morning.yaml
  connect saves import morning.yaml evening
  connect saves delete morning`,
	Args: cobra.NoArgs,
	Run:  runSavesList,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a saved board to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavesExport,
}

var savesImportCmd = &cobra.Command{
	Use:   "import <file> <name>",
	Short: "Store a YAML board file under a save name",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavesImport,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved board",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesExportCmd)
	savesCmd.AddCommand(savesImportCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func runSavesList(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if len(saves) == 0 {
		fmt.Println("No saved boards. Press Ctrl+S while playing to save one.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, s := range saves {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %-14s  %-6s  %-10s  %s\n", maxNameLen, "Name", "Board", "Size", "Score", "Updated")
	fmt.Printf("  %-*s  %-14s  %-6s  %-10s  %s\n", maxNameLen, "----", "-----", "----", "-----", "-------")
	for _, s := range saves {
		size := fmt.Sprintf("%dx%d", s.Snapshot.Width, s.Snapshot.Height)
		fmt.Printf("  %-*s  %-14s  %-6s  %-10d  %s\n",
			maxNameLen, s.Name, s.Variant, size, s.Snapshot.Score, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'connect play --load <name>' to resume a board.")
}

func runSavesExport(_ *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	save, err := store.LoadGame(name)
	if err != nil {
		return err
	}
	data, err := storage.MarshalSave(save)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("Exported %q to %s\n", name, path)
	return nil
}

func runSavesImport(_ *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := storage.UnmarshalSave(data)
	if err != nil {
		return err
	}
	if !registry.Exists(f.Variant) {
		return fmt.Errorf("unknown board %q in %s", f.Variant, path)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SaveGame(name, f.Variant, f.Board); err != nil {
		return err
	}

	fmt.Printf("Imported %s as %q\n", path, name)
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", args[0])
	return nil
}
