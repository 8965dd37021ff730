package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// GradeRepository is the file-backed store for grades.
type GradeRepository struct {
	store  textStore
	grades []models.Grade
}

// NewGradeRepository creates the store rooted at dataDir.
func NewGradeRepository(dataDir string) *GradeRepository {
	return &GradeRepository{store: newTextStore(dataDir, gradesFile)}
}

// Load reads the whole grades file into memory, creating it when absent.
func (r *GradeRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.grades = make([]models.Grade, 0, len(lines))
	for _, line := range lines {
		r.grades = append(r.grades, codec.DecodeGrade(line))
	}
	return nil
}

// Save rewrites the whole grades file from memory.
func (r *GradeRepository) Save() error {
	lines := make([]string, 0, len(r.grades))
	for _, g := range r.grades {
		lines = append(lines, codec.EncodeGrade(g))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *GradeRepository) List() []models.Grade {
	out := make([]models.Grade, len(r.grades))
	copy(out, r.grades)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *GradeRepository) NextID() int {
	next := 1
	for _, g := range r.grades {
		if g.ID >= next {
			next = g.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *GradeRepository) Create(g models.Grade) (models.Grade, error) {
	if g.ID == 0 {
		g.ID = r.NextID()
	}
	r.grades = append([]models.Grade{g}, r.grades...)
	if err := r.Save(); err != nil {
		return models.Grade{}, err
	}
	return g, nil
}

// FindByID returns the first record with the given id.
func (r *GradeRepository) FindByID(id int) (*models.Grade, error) {
	for i := range r.grades {
		if r.grades[i].ID == id {
			g := r.grades[i]
			return &g, nil
		}
	}
	return nil, ErrNoRecord
}

// ListByStudent collects every grade of one student.
func (r *GradeRepository) ListByStudent(studentID int) []models.Grade {
	var out []models.Grade
	for _, g := range r.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}

// ListBySubject collects every grade of one subject.
func (r *GradeRepository) ListBySubject(subjectID int) []models.Grade {
	var out []models.Grade
	for _, g := range r.grades {
		if g.SubjectID == subjectID {
			out = append(out, g)
		}
	}
	return out
}

// ListByTeacher collects every grade recorded by one teacher.
func (r *GradeRepository) ListByTeacher(teacherID int) []models.Grade {
	var out []models.Grade
	for _, g := range r.grades {
		if g.TeacherID == teacherID {
			out = append(out, g)
		}
	}
	return out
}

// Update applies mutate to the record in place and persists.
func (r *GradeRepository) Update(id int, mutate func(*models.Grade)) error {
	for i := range r.grades {
		if r.grades[i].ID == id {
			mutate(&r.grades[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *GradeRepository) Delete(id int) error {
	for i := range r.grades {
		if r.grades[i].ID == id {
			r.grades = append(r.grades[:i], r.grades[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
