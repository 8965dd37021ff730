package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// TeacherRepository is the file-backed store for teachers.
type TeacherRepository struct {
	store    textStore
	teachers []models.Teacher
}

// NewTeacherRepository creates the store rooted at dataDir.
func NewTeacherRepository(dataDir string) *TeacherRepository {
	return &TeacherRepository{store: newTextStore(dataDir, teachersFile)}
}

// Load reads the whole teachers file into memory, creating it when absent.
func (r *TeacherRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.teachers = make([]models.Teacher, 0, len(lines))
	for _, line := range lines {
		r.teachers = append(r.teachers, codec.DecodeTeacher(line))
	}
	return nil
}

// Save rewrites the whole teachers file from memory. Rows with id <= 0 are
// pending or invalid and are never written.
func (r *TeacherRepository) Save() error {
	lines := make([]string, 0, len(r.teachers))
	for _, t := range r.teachers {
		if t.ID <= 0 {
			continue
		}
		lines = append(lines, codec.EncodeTeacher(t))
	}
	return r.store.writeLines(lines)
}

// SyncWithUsers repairs drift between the teacher and user stores: every
// teacher whose email matches a user of role enseignant takes that user's id.
// The store is persisted once if anything changed. It reports whether a
// change occurred.
func (r *TeacherRepository) SyncWithUsers(users []models.User) (bool, error) {
	changed := false
	for i := range r.teachers {
		for _, u := range users {
			if u.Role != models.RoleTeacher || u.Email != r.teachers[i].Email {
				continue
			}
			if r.teachers[i].ID != u.ID {
				r.teachers[i].ID = u.ID
				changed = true
			}
			break
		}
	}
	if !changed {
		return false, nil
	}
	return true, r.Save()
}

// List returns the collection in store order, newest first.
func (r *TeacherRepository) List() []models.Teacher {
	out := make([]models.Teacher, len(r.teachers))
	copy(out, r.teachers)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *TeacherRepository) NextID() int {
	next := 1
	for _, t := range r.teachers {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *TeacherRepository) Create(t models.Teacher) (models.Teacher, error) {
	if t.ID == 0 {
		t.ID = r.NextID()
	}
	r.teachers = append([]models.Teacher{t}, r.teachers...)
	if err := r.Save(); err != nil {
		return models.Teacher{}, err
	}
	return t, nil
}

// FindByID returns the first record with the given id.
func (r *TeacherRepository) FindByID(id int) (*models.Teacher, error) {
	for i := range r.teachers {
		if r.teachers[i].ID == id {
			t := r.teachers[i]
			return &t, nil
		}
	}
	return nil, ErrNoRecord
}

// Search collects every record matching the filter.
func (r *TeacherRepository) Search(filter models.TeacherFilter) []models.Teacher {
	var out []models.Teacher
	for _, t := range r.teachers {
		if filter.ID > 0 && t.ID != filter.ID {
			continue
		}
		if filter.FirstName != "" && !containsFold(t.FirstName, filter.FirstName) {
			continue
		}
		if filter.LastName != "" && !containsFold(t.LastName, filter.LastName) {
			continue
		}
		if filter.Email != "" && !containsFold(t.Email, filter.Email) {
			continue
		}
		if filter.Code != "" && !containsFold(t.Code, filter.Code) {
			continue
		}
		if filter.SubjectTaught != "" && !containsFold(t.SubjectTaught, filter.SubjectTaught) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Update applies mutate to the record in place and persists.
func (r *TeacherRepository) Update(id int, mutate func(*models.Teacher)) error {
	for i := range r.teachers {
		if r.teachers[i].ID == id {
			mutate(&r.teachers[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *TeacherRepository) Delete(id int) error {
	for i := range r.teachers {
		if r.teachers[i].ID == id {
			r.teachers = append(r.teachers[:i], r.teachers[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
