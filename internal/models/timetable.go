package models

// Timetable grid dimensions: five teaching days of four two-hour slots.
const (
	DaysPerWeek = 5
	SlotsPerDay = 4
)

var (
	dayNames  = [DaysPerWeek]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi"}
	slotHours = [SlotsPerDay]string{"8h-10h", "10h-12h", "14h-16h", "16h-18h"}
)

// DayName returns the display label of a day index, or "Inconnu" out of range.
func DayName(day int) string {
	if day >= 0 && day < DaysPerWeek {
		return dayNames[day]
	}
	return "Inconnu"
}

// HourName returns the display label of an hour index, or "Inconnu" out of range.
func HourName(hour int) string {
	if hour >= 0 && hour < SlotsPerDay {
		return slotHours[hour]
	}
	return "Inconnu"
}

// TimetableSlot is one cell of the weekly grid, persisted in
// emploi_du_temps.txt. ID 0 is the empty-cell sentinel. SubjectName and
// TeacherName are display snapshots taken at write time.
type TimetableSlot struct {
	ID          int
	SubjectID   int
	SubjectName string
	TeacherID   int
	TeacherName string
	Room        string
	Day         int
	Hour        int
}

// Empty reports whether the cell holds no session.
func (s TimetableSlot) Empty() bool {
	return s.ID == 0
}

// Timetable is the in-memory 5x4 grid plus a running occupied-cell count.
type Timetable struct {
	Cells    [DaysPerWeek][SlotsPerDay]TimetableSlot
	Occupied int
}

// Reset clears every cell to the empty sentinel.
func (t *Timetable) Reset() {
	t.Cells = [DaysPerWeek][SlotsPerDay]TimetableSlot{}
	t.Occupied = 0
}

// At returns the cell at (day, hour). Callers must pass in-range coordinates.
func (t *Timetable) At(day, hour int) TimetableSlot {
	return t.Cells[day][hour]
}

// MaxID returns the highest slot id present in the grid.
func (t *Timetable) MaxID() int {
	max := 0
	for day := 0; day < DaysPerWeek; day++ {
		for hour := 0; hour < SlotsPerDay; hour++ {
			if id := t.Cells[day][hour].ID; id > max {
				max = id
			}
		}
	}
	return max
}
