package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// StudentRepository is the file-backed store for students.
type StudentRepository struct {
	store    textStore
	students []models.Student
}

// NewStudentRepository creates the store rooted at dataDir.
func NewStudentRepository(dataDir string) *StudentRepository {
	return &StudentRepository{store: newTextStore(dataDir, studentsFile)}
}

// Load reads the whole students file into memory, creating it when absent.
func (r *StudentRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.students = make([]models.Student, 0, len(lines))
	for _, line := range lines {
		r.students = append(r.students, codec.DecodeStudent(line))
	}
	return nil
}

// Save rewrites the whole students file from memory.
func (r *StudentRepository) Save() error {
	lines := make([]string, 0, len(r.students))
	for _, s := range r.students {
		lines = append(lines, codec.EncodeStudent(s))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *StudentRepository) List() []models.Student {
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *StudentRepository) NextID() int {
	next := 1
	for _, s := range r.students {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *StudentRepository) Create(s models.Student) (models.Student, error) {
	if s.ID == 0 {
		s.ID = r.NextID()
	}
	r.students = append([]models.Student{s}, r.students...)
	if err := r.Save(); err != nil {
		return models.Student{}, err
	}
	return s, nil
}

// FindByID returns the first record with the given id.
func (r *StudentRepository) FindByID(id int) (*models.Student, error) {
	for i := range r.students {
		if r.students[i].ID == id {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, ErrNoRecord
}

// FindByEmail returns the record with exactly the given address. Account
// emails and student emails are the same generated value, so this is the
// stable join between the two files.
func (r *StudentRepository) FindByEmail(email string) (*models.Student, error) {
	for i := range r.students {
		if r.students[i].Email == email {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, ErrNoRecord
}

// Search collects every record matching the filter. String criteria match
// case-insensitively as substrings; a positive ID matches exactly.
func (r *StudentRepository) Search(filter models.StudentFilter) []models.Student {
	var out []models.Student
	for _, s := range r.students {
		if filter.ID > 0 && s.ID != filter.ID {
			continue
		}
		if filter.FirstName != "" && !containsFold(s.FirstName, filter.FirstName) {
			continue
		}
		if filter.LastName != "" && !containsFold(s.LastName, filter.LastName) {
			continue
		}
		if filter.Email != "" && !containsFold(s.Email, filter.Email) {
			continue
		}
		if filter.CNE != "" && !containsFold(s.CNE, filter.CNE) {
			continue
		}
		if filter.Section != "" && !containsFold(s.Section, filter.Section) {
			continue
		}
		if filter.Filiere != "" && !containsFold(s.Filiere, filter.Filiere) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Update applies mutate to the record in place and persists.
func (r *StudentRepository) Update(id int, mutate func(*models.Student)) error {
	for i := range r.students {
		if r.students[i].ID == id {
			mutate(&r.students[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *StudentRepository) Delete(id int) error {
	for i := range r.students {
		if r.students[i].ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
