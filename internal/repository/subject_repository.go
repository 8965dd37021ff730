package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// SubjectRepository is the file-backed store for subjects.
type SubjectRepository struct {
	store    textStore
	subjects []models.Subject
}

// NewSubjectRepository creates the store rooted at dataDir.
func NewSubjectRepository(dataDir string) *SubjectRepository {
	return &SubjectRepository{store: newTextStore(dataDir, subjectsFile)}
}

// Load reads the whole subjects file into memory, creating it when absent.
func (r *SubjectRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.subjects = make([]models.Subject, 0, len(lines))
	for _, line := range lines {
		r.subjects = append(r.subjects, codec.DecodeSubject(line))
	}
	return nil
}

// Save rewrites the whole subjects file from memory.
func (r *SubjectRepository) Save() error {
	lines := make([]string, 0, len(r.subjects))
	for _, s := range r.subjects {
		lines = append(lines, codec.EncodeSubject(s))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *SubjectRepository) List() []models.Subject {
	out := make([]models.Subject, len(r.subjects))
	copy(out, r.subjects)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *SubjectRepository) NextID() int {
	next := 1
	for _, s := range r.subjects {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *SubjectRepository) Create(s models.Subject) (models.Subject, error) {
	if s.ID == 0 {
		s.ID = r.NextID()
	}
	r.subjects = append([]models.Subject{s}, r.subjects...)
	if err := r.Save(); err != nil {
		return models.Subject{}, err
	}
	return s, nil
}

// FindByID returns the first record with the given id.
func (r *SubjectRepository) FindByID(id int) (*models.Subject, error) {
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			s := r.subjects[i]
			return &s, nil
		}
	}
	return nil, ErrNoRecord
}

// Search collects every record matching the filter. The coefficient range is
// inclusive and only applied when CoefMax is positive.
func (r *SubjectRepository) Search(filter models.SubjectFilter) []models.Subject {
	var out []models.Subject
	for _, s := range r.subjects {
		if filter.ID > 0 && s.ID != filter.ID {
			continue
		}
		if filter.Code != "" && !containsFold(s.Code, filter.Code) {
			continue
		}
		if filter.Name != "" && !containsFold(s.Name, filter.Name) {
			continue
		}
		if filter.CoefMax > 0 && (s.Coefficient < filter.CoefMin || s.Coefficient > filter.CoefMax) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Update applies mutate to the record in place and persists.
func (r *SubjectRepository) Update(id int, mutate func(*models.Subject)) error {
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			mutate(&r.subjects[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *SubjectRepository) Delete(id int) error {
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			r.subjects = append(r.subjects[:i], r.subjects[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
