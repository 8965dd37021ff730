package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ecole-manager/internal/models"
)

func TestUserRoundTrip(t *testing.T) {
	u := models.User{
		ID:        1,
		FirstName: "admin",
		LastName:  "admin",
		Email:     "admin@ecole.com",
		Password:  "admin123",
		Role:      models.RoleAdmin,
	}

	line := EncodeUser(u)
	assert.Equal(t, "1|admin|admin|admin@ecole.com|admin123|admin", line)
	assert.Equal(t, u, DecodeUser(line))
}

func TestStudentRoundTrip(t *testing.T) {
	s := models.Student{
		ID:        3,
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "j.dupont@edu.umi.ac.ma",
		CNE:       "R130001",
		Section:   "A",
		Filiere:   "Informatique",
	}
	assert.Equal(t, s, DecodeStudent(EncodeStudent(s)))
}

func TestSubjectRoundTrip(t *testing.T) {
	s := models.Subject{ID: 2, Code: "MATH101", Name: "Analyse", Coefficient: 2.5}
	line := EncodeSubject(s)
	assert.Equal(t, "2|MATH101|Analyse|2.50", line)
	assert.Equal(t, s, DecodeSubject(line))
}

func TestGradeRoundTrip(t *testing.T) {
	g := models.Grade{
		ID:        7,
		StudentID: 3,
		SubjectID: 2,
		TeacherID: 5,
		Value:     15.5,
		Comment:   "bon travail",
		EvalDate:  "12/03/2025",
	}
	assert.Equal(t, g, DecodeGrade(EncodeGrade(g)))
}

func TestAnnouncementEscapesDelimiterAndNewline(t *testing.T) {
	a := models.Announcement{
		ID:           4,
		Title:        "Examen | session normale",
		Body:         "Première ligne\nDeuxième ligne",
		Author:       "M. Alaoui",
		CreationDate: "01/04/2025",
		SubjectID:    2,
		TeacherID:    5,
	}

	line := EncodeAnnouncement(a)
	// The physical row must stay on one line with aligned fields.
	require.NotContains(t, line, "\n")
	require.Equal(t, 7, len(parse(line)))
	assert.Equal(t, a, DecodeAnnouncement(line))
}

func TestBackslashRoundTrip(t *testing.T) {
	g := models.Grade{ID: 1, Comment: `note \ brute |`}
	assert.Equal(t, g.Comment, DecodeGrade(EncodeGrade(g)).Comment)
}

func TestTrailingBackslashSurvivesDecode(t *testing.T) {
	// Legacy rows were never escaped; a field ending in a lone backslash
	// must keep it.
	g := DecodeGrade(`4|1|2|3|12.00|voir annexe \|01/03/2024`)
	assert.Equal(t, `voir annexe \`, g.Comment)
	assert.Equal(t, "01/03/2024", g.EvalDate)

	assert.Equal(t, `a\`, unescape(`a\`))
	assert.Equal(t, `\`, unescape(`\`))
}

func TestDecodeToleratesShortRows(t *testing.T) {
	u := DecodeUser("12|Ali")
	assert.Equal(t, 12, u.ID)
	assert.Equal(t, "Ali", u.FirstName)
	assert.Empty(t, u.LastName)
	assert.Empty(t, u.Email)
	assert.Empty(t, u.Role)

	g := DecodeGrade("3|9")
	assert.Equal(t, 3, g.ID)
	assert.Equal(t, 9, g.StudentID)
	assert.Zero(t, g.Value)
}

func TestDecodeToleratesMalformedNumbers(t *testing.T) {
	s := DecodeSubject("abc|M1|Nom|x.y")
	assert.Zero(t, s.ID)
	assert.Zero(t, s.Coefficient)
	assert.Equal(t, "Nom", s.Name)
}

func TestEnrollmentRoundTrip(t *testing.T) {
	e := models.Enrollment{ID: 9, StudentID: 3, SubjectID: 2, Date: "05/09/2025", Status: models.StatusEnrolled}
	line := EncodeEnrollment(e)
	assert.Equal(t, "9|3|2|05/09/2025|1", line)
	assert.Equal(t, e, DecodeEnrollment(line))
}

func TestTimetableSlotRoundTrip(t *testing.T) {
	s := models.TimetableSlot{
		ID:          1,
		SubjectID:   2,
		SubjectName: "Analyse",
		TeacherID:   5,
		TeacherName: "Sara Alaoui",
		Room:        "Salle A",
		Day:         3,
		Hour:        2,
	}
	assert.Equal(t, s, DecodeTimetableSlot(EncodeTimetableSlot(s)))
}

func TestLegacyRowsDecodeUnchanged(t *testing.T) {
	// Rows written by the historical implementation carry no escape
	// sequences and must keep decoding field for field.
	u := DecodeUser("1|admin|admin|admin@ecole.com|admin123|admin")
	assert.Equal(t, models.User{
		ID: 1, FirstName: "admin", LastName: "admin",
		Email: "admin@ecole.com", Password: "admin123", Role: models.RoleAdmin,
	}, u)
}
