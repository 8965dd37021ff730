package models

// Teacher represents an instructor stored in enseignants.txt. A Teacher ID is
// kept in sync with the matching User (same email, role enseignant) after each
// load; ids at or below zero mark pending rows that are never persisted.
type Teacher struct {
	ID            int
	FirstName     string
	LastName      string
	Email         string
	Code          string
	SubjectTaught string
}

// TeacherFilter encapsulates the search criteria of the teacher search menu.
type TeacherFilter struct {
	ID            int
	FirstName     string
	LastName      string
	Email         string
	Code          string
	SubjectTaught string
}

// FullName returns the display name used in denormalized timetable fields.
func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
