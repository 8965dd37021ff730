package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// EnrollmentRepository is the file-backed store for enrollments.
type EnrollmentRepository struct {
	store       textStore
	enrollments []models.Enrollment
}

// NewEnrollmentRepository creates the store rooted at dataDir.
func NewEnrollmentRepository(dataDir string) *EnrollmentRepository {
	return &EnrollmentRepository{store: newTextStore(dataDir, enrollmentsFile)}
}

// Load reads the whole enrollments file into memory, creating it when absent.
func (r *EnrollmentRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.enrollments = make([]models.Enrollment, 0, len(lines))
	for _, line := range lines {
		r.enrollments = append(r.enrollments, codec.DecodeEnrollment(line))
	}
	return nil
}

// Save rewrites the whole enrollments file from memory.
func (r *EnrollmentRepository) Save() error {
	lines := make([]string, 0, len(r.enrollments))
	for _, e := range r.enrollments {
		lines = append(lines, codec.EncodeEnrollment(e))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *EnrollmentRepository) List() []models.Enrollment {
	out := make([]models.Enrollment, len(r.enrollments))
	copy(out, r.enrollments)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *EnrollmentRepository) NextID() int {
	next := 1
	for _, e := range r.enrollments {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *EnrollmentRepository) Create(e models.Enrollment) (models.Enrollment, error) {
	if e.ID == 0 {
		e.ID = r.NextID()
	}
	r.enrollments = append([]models.Enrollment{e}, r.enrollments...)
	if err := r.Save(); err != nil {
		return models.Enrollment{}, err
	}
	return e, nil
}

// FindByPair returns the record for (student, subject). At most one exists:
// toggling reuses it instead of appending.
func (r *EnrollmentRepository) FindByPair(studentID, subjectID int) (*models.Enrollment, error) {
	for i := range r.enrollments {
		if r.enrollments[i].StudentID == studentID && r.enrollments[i].SubjectID == subjectID {
			e := r.enrollments[i]
			return &e, nil
		}
	}
	return nil, ErrNoRecord
}

// ListByStudent collects every enrollment record of one student.
func (r *EnrollmentRepository) ListByStudent(studentID int) []models.Enrollment {
	var out []models.Enrollment
	for _, e := range r.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out
}

// ListBySubject collects every enrollment record of one subject.
func (r *EnrollmentRepository) ListBySubject(subjectID int) []models.Enrollment {
	var out []models.Enrollment
	for _, e := range r.enrollments {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out
}

// IsEnrolled reports whether the student currently has an active enrollment
// for the subject.
func (r *EnrollmentRepository) IsEnrolled(studentID, subjectID int) bool {
	e, err := r.FindByPair(studentID, subjectID)
	return err == nil && e.Active()
}

// Update applies mutate to the record in place and persists.
func (r *EnrollmentRepository) Update(id int, mutate func(*models.Enrollment)) error {
	for i := range r.enrollments {
		if r.enrollments[i].ID == id {
			mutate(&r.enrollments[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *EnrollmentRepository) Delete(id int) error {
	for i := range r.enrollments {
		if r.enrollments[i].ID == id {
			r.enrollments = append(r.enrollments[:i], r.enrollments[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
