package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-connect/internal/games/connect/engine"
)

// ErrSaveNotFound is returned when no save has the requested name.
var ErrSaveNotFound = errors.New("storage: save not found")

// SavedGame is a named board snapshot.
type SavedGame struct {
	ID        string
	Name      string
	Variant   string
	Snapshot  engine.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveGame stores snap under name, replacing any save with the same name.
// Returns the save's ID, which is kept across overwrites.
func (s *Store) SaveGame(name, variant string, snap engine.Snapshot) (string, error) {
	if name == "" {
		return "", errors.New("storage: save name is empty")
	}
	if err := snap.Validate(); err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO saves (id, name, variant, width, height, min_level, max_level, score, cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   variant = excluded.variant,
		   width = excluded.width,
		   height = excluded.height,
		   min_level = excluded.min_level,
		   max_level = excluded.max_level,
		   score = excluded.score,
		   cells = excluded.cells,
		   updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), name, variant,
		snap.Width, snap.Height, snap.Min, snap.Max, snap.Score,
		EncodeCells(snap.Levels),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	var id string
	if err := s.db.QueryRow("SELECT id FROM saves WHERE name = ?", name).Scan(&id); err != nil {
		return "", fmt.Errorf("storage: cannot read save id: %w", err)
	}
	return id, nil
}

// LoadGame returns the save with the given name.
func (s *Store) LoadGame(name string) (SavedGame, error) {
	row := s.db.QueryRow(
		`SELECT id, name, variant, width, height, min_level, max_level, score, cells, created_at, updated_at
		 FROM saves WHERE name = ?`,
		name,
	)
	save, err := scanSave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	if err != nil {
		return SavedGame{}, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return save, nil
}

// ListSaves returns all saves, most recently updated first.
func (s *Store) ListSaves() ([]SavedGame, error) {
	rows, err := s.db.Query(
		`SELECT id, name, variant, width, height, min_level, max_level, score, cells, created_at, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SavedGame
	for rows.Next() {
		save, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan save: %w", err)
		}
		saves = append(saves, save)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes the save with the given name.
func (s *Store) DeleteSave(name string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSave(row rowScanner) (SavedGame, error) {
	var (
		save                 SavedGame
		cells                string
		createdAt, updatedAt any
	)
	err := row.Scan(
		&save.ID, &save.Name, &save.Variant,
		&save.Snapshot.Width, &save.Snapshot.Height,
		&save.Snapshot.Min, &save.Snapshot.Max,
		&save.Snapshot.Score, &cells,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return SavedGame{}, err
	}

	levels, err := DecodeCells(cells, save.Snapshot.Width, save.Snapshot.Height)
	if err != nil {
		return SavedGame{}, err
	}
	save.Snapshot.Levels = levels
	save.CreatedAt = parseTime(createdAt)
	save.UpdatedAt = parseTime(updatedAt)
	return save, nil
}

// EncodeCells writes levels (indexed [x][y]) as one line per row of
// comma-separated levels.
func EncodeCells(levels [][]int) string {
	if len(levels) == 0 {
		return ""
	}
	var sb strings.Builder
	for y := range levels[0] {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range levels {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(levels[x][y]))
		}
	}
	return sb.String()
}

// DecodeCells parses the output of EncodeCells back into [x][y] levels.
func DecodeCells(s string, width, height int) ([][]int, error) {
	rows := strings.Split(s, "\n")
	if len(rows) != height {
		return nil, fmt.Errorf("storage: cells have %d rows, want %d", len(rows), height)
	}

	levels := make([][]int, width)
	for x := range levels {
		levels[x] = make([]int, height)
	}
	for y, row := range rows {
		fields := strings.Split(row, ",")
		if len(fields) != width {
			return nil, fmt.Errorf("storage: row %d has %d cells, want %d", y, len(fields), width)
		}
		for x, f := range fields {
			level, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("storage: row %d cell %d: %w", y, x, err)
			}
			levels[x][y] = level
		}
	}
	return levels, nil
}
