package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// TimetableRepository is the file-backed store for the weekly grid.
type TimetableRepository struct {
	store textStore
	grid  models.Timetable
}

// NewTimetableRepository creates the store rooted at dataDir.
func NewTimetableRepository(dataDir string) *TimetableRepository {
	return &TimetableRepository{store: newTextStore(dataDir, timetableFile)}
}

// Load resets the grid and places every persisted slot whose (day, hour)
// coordinates are in range; malformed coordinates are dropped.
func (r *TimetableRepository) Load() error {
	r.grid.Reset()
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		slot := codec.DecodeTimetableSlot(line)
		if slot.Day < 0 || slot.Day >= models.DaysPerWeek ||
			slot.Hour < 0 || slot.Hour >= models.SlotsPerDay {
			continue
		}
		r.grid.Cells[slot.Day][slot.Hour] = slot
		r.grid.Occupied++
	}
	return nil
}

// Save rewrites the whole timetable file, skipping empty cells.
func (r *TimetableRepository) Save() error {
	var lines []string
	for day := 0; day < models.DaysPerWeek; day++ {
		for hour := 0; hour < models.SlotsPerDay; hour++ {
			slot := r.grid.Cells[day][hour]
			if slot.Empty() {
				continue
			}
			lines = append(lines, codec.EncodeTimetableSlot(slot))
		}
	}
	return r.store.writeLines(lines)
}

// Grid returns a copy of the in-memory grid.
func (r *TimetableRepository) Grid() models.Timetable {
	return r.grid
}

// At returns the cell at (day, hour).
func (r *TimetableRepository) At(day, hour int) models.TimetableSlot {
	return r.grid.At(day, hour)
}

// Occupied returns the running occupied-cell count.
func (r *TimetableRepository) Occupied() int {
	return r.grid.Occupied
}

// Reset clears every cell without persisting.
func (r *TimetableRepository) Reset() {
	r.grid.Reset()
}

// NextID returns the highest slot id across the grid plus one.
func (r *TimetableRepository) NextID() int {
	return r.grid.MaxID() + 1
}

// Place stores a slot into its cell without persisting, adjusting the
// occupied count for the transition between empty and occupied. Bulk fills
// place every cell first and call Save once.
func (r *TimetableRepository) Place(slot models.TimetableSlot) {
	prev := r.grid.Cells[slot.Day][slot.Hour]
	r.grid.Cells[slot.Day][slot.Hour] = slot
	if prev.Empty() && !slot.Empty() {
		r.grid.Occupied++
	} else if !prev.Empty() && slot.Empty() {
		r.grid.Occupied--
	}
}

// Put stores a slot into its cell and persists.
func (r *TimetableRepository) Put(slot models.TimetableSlot) error {
	r.Place(slot)
	return r.Save()
}

// Clear zeroes the cell at (day, hour) and persists.
func (r *TimetableRepository) Clear(day, hour int) error {
	return r.Put(models.TimetableSlot{Day: day, Hour: hour})
}
