package models

// Grade represents an evaluation result stored in notes.txt. Values are on
// the 0-20 scale. StudentID, SubjectID and TeacherID reference records by id
// only; referential integrity is not enforced at write time.
type Grade struct {
	ID        int
	StudentID int
	SubjectID int
	TeacherID int
	Value     float64
	Comment   string
	EvalDate  string
}
