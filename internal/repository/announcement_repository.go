package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// AnnouncementRepository is the file-backed store for announcements.
type AnnouncementRepository struct {
	store    textStore
	annonces []models.Announcement
}

// NewAnnouncementRepository creates the store rooted at dataDir.
func NewAnnouncementRepository(dataDir string) *AnnouncementRepository {
	return &AnnouncementRepository{store: newTextStore(dataDir, annoncesFile)}
}

// Load reads the whole announcements file into memory, creating it when absent.
func (r *AnnouncementRepository) Load() error {
	lines, _, err := r.store.readLines()
	if err != nil {
		return err
	}
	r.annonces = make([]models.Announcement, 0, len(lines))
	for _, line := range lines {
		r.annonces = append(r.annonces, codec.DecodeAnnouncement(line))
	}
	return nil
}

// Save rewrites the whole announcements file from memory.
func (r *AnnouncementRepository) Save() error {
	lines := make([]string, 0, len(r.annonces))
	for _, a := range r.annonces {
		lines = append(lines, codec.EncodeAnnouncement(a))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *AnnouncementRepository) List() []models.Announcement {
	out := make([]models.Announcement, len(r.annonces))
	copy(out, r.annonces)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *AnnouncementRepository) NextID() int {
	next := 1
	for _, a := range r.annonces {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends and persists.
func (r *AnnouncementRepository) Create(a models.Announcement) (models.Announcement, error) {
	if a.ID == 0 {
		a.ID = r.NextID()
	}
	r.annonces = append([]models.Announcement{a}, r.annonces...)
	if err := r.Save(); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// FindByID returns the first record with the given id.
func (r *AnnouncementRepository) FindByID(id int) (*models.Announcement, error) {
	for i := range r.annonces {
		if r.annonces[i].ID == id {
			a := r.annonces[i]
			return &a, nil
		}
	}
	return nil, ErrNoRecord
}

// ListBySubject collects every announcement for one subject.
func (r *AnnouncementRepository) ListBySubject(subjectID int) []models.Announcement {
	var out []models.Announcement
	for _, a := range r.annonces {
		if a.SubjectID == subjectID {
			out = append(out, a)
		}
	}
	return out
}

// ListByTeacher collects every announcement authored by one teacher.
func (r *AnnouncementRepository) ListByTeacher(teacherID int) []models.Announcement {
	var out []models.Announcement
	for _, a := range r.annonces {
		if a.TeacherID == teacherID {
			out = append(out, a)
		}
	}
	return out
}

// Update applies mutate to the record in place and persists.
func (r *AnnouncementRepository) Update(id int, mutate func(*models.Announcement)) error {
	for i := range r.annonces {
		if r.annonces[i].ID == id {
			mutate(&r.annonces[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *AnnouncementRepository) Delete(id int) error {
	for i := range r.annonces {
		if r.annonces[i].ID == id {
			r.annonces = append(r.annonces[:i], r.annonces[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
