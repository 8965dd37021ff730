package models

const (
	// GeneralAnnouncement marks an announcement not tied to a subject.
	GeneralAnnouncement = 0
	// AdminAuthor marks an announcement authored by the administrator.
	AdminAuthor = -1
)

// Announcement represents a notice stored in annonces.txt. Author is a
// display snapshot taken at write time; SubjectID 0 means general and
// TeacherID -1 means admin-authored.
type Announcement struct {
	ID           int
	Title        string
	Body         string
	Author       string
	CreationDate string
	SubjectID    int
	TeacherID    int
}
