package models

// EnrollmentStatus is persisted as 1 (enrolled) or 0 (unenrolled).
type EnrollmentStatus int

const (
	StatusUnenrolled EnrollmentStatus = 0
	StatusEnrolled   EnrollmentStatus = 1
)

// Enrollment links a student to a subject in inscriptions.txt. At most one
// record exists per (student, subject) pair; toggling reuses the record and
// refreshes the date instead of appending a new row.
type Enrollment struct {
	ID        int
	StudentID int
	SubjectID int
	Date      string
	Status    EnrollmentStatus
}

// Active reports whether the enrollment is currently in effect.
func (e Enrollment) Active() bool {
	return e.Status == StatusEnrolled
}
