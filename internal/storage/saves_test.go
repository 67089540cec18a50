package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Width:  3,
		Height: 2,
		Min:    1,
		Max:    4,
		Score:  36,
		Levels: [][]int{
			{1, 2},
			{3, 1},
			{2, 5},
		},
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	store := openTestStore(t)
	snap := testSnapshot()

	id, err := store.SaveGame("morning", "connect", snap)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("save id %q is not a UUID: %v", id, err)
	}

	save, err := store.LoadGame("morning")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if save.ID != id || save.Name != "morning" || save.Variant != "connect" {
		t.Errorf("save = %+v", save)
	}
	if !reflect.DeepEqual(save.Snapshot, snap) {
		t.Errorf("Snapshot = %+v, want %+v", save.Snapshot, snap)
	}
}

func TestSaveGameOverwrite(t *testing.T) {
	store := openTestStore(t)
	snap := testSnapshot()

	first, err := store.SaveGame("slot", "connect", snap)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	snap.Score = 100
	snap.Levels[0][0] = 4
	second, err := store.SaveGame("slot", "connect", snap)
	if err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}
	if first != second {
		t.Errorf("overwrite changed id from %s to %s", first, second)
	}

	save, err := store.LoadGame("slot")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if save.Snapshot.Score != 100 || save.Snapshot.Levels[0][0] != 4 {
		t.Errorf("overwritten save = %+v", save.Snapshot)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 1 {
		t.Errorf("ListSaves() returned %d saves, want 1", len(saves))
	}
}

func TestSaveGameRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveGame("", "connect", testSnapshot()); err == nil {
		t.Error("empty name should fail")
	}

	bad := testSnapshot()
	bad.Max = bad.Min
	if _, err := store.SaveGame("bad", "connect", bad); !errors.Is(err, engine.ErrInvalidSnapshot) {
		t.Errorf("SaveGame(invalid) = %v, want ErrInvalidSnapshot", err)
	}
}

func TestLoadGameNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadGame("nope")
	if !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("LoadGame() = %v, want ErrSaveNotFound", err)
	}
}

func TestListAndDeleteSaves(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := store.SaveGame(name, "connect_mini", testSnapshot()); err != nil {
			t.Fatalf("SaveGame(%s) failed: %v", name, err)
		}
	}

	if err := store.DeleteSave("b"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave("b"); !errors.Is(err, ErrSaveNotFound) {
		t.Errorf("second DeleteSave() = %v, want ErrSaveNotFound", err)
	}

	saves, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	names := map[string]bool{}
	for _, s := range saves {
		names[s.Name] = true
		if s.Variant != "connect_mini" {
			t.Errorf("save %s variant = %q", s.Name, s.Variant)
		}
	}
	if len(saves) != 2 || !names["a"] || !names["c"] {
		t.Errorf("ListSaves() names = %v, want a and c", names)
	}
}

func TestCellsEncoding(t *testing.T) {
	levels := testSnapshot().Levels

	encoded := EncodeCells(levels)
	if want := "1,3,2\n2,1,5"; encoded != want {
		t.Errorf("EncodeCells() = %q, want %q", encoded, want)
	}

	decoded, err := DecodeCells(encoded, 3, 2)
	if err != nil {
		t.Fatalf("DecodeCells() failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, levels) {
		t.Errorf("DecodeCells() = %v, want %v", decoded, levels)
	}

	tests := []struct {
		name string
		in   string
		w, h int
	}{
		{"too few rows", "1,2", 2, 2},
		{"short row", "1,2\n3", 2, 2},
		{"not a number", "1,x\n3,4", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCells(tt.in, tt.w, tt.h); err == nil {
				t.Error("expected error")
			}
		})
	}
}
