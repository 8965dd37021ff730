// Package codec encodes entity records as single pipe-delimited text lines,
// the on-disk row format of every data file.
//
// The legacy format forbids the delimiter inside free-text fields and breaks
// field alignment when one slips through. This codec instead escapes string
// fields on write ('\' -> `\\`, '|' -> `\p`, newline -> `\n`) and reverses the
// mapping on read. Rows whose values contain none of those characters are
// byte-for-byte identical to the legacy encoding.
//
// Decoding is tolerant of short rows: missing trailing fields keep their zero
// value. Malformed numeric fields also decode to zero. A decode never fails.
package codec

import (
	"strconv"
	"strings"

	"github.com/noah-isme/ecole-manager/internal/models"
)

// Delimiter separates fields within a row.
const Delimiter = "|"

func escape(s string) string {
	if !strings.ContainsAny(s, "\\|\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '|':
			b.WriteString(`\p`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}
		switch r {
		case 'p':
			b.WriteRune('|')
		case 'n':
			b.WriteRune('\n')
		default:
			b.WriteRune(r)
		}
		escaped = false
	}
	// A lone trailing backslash in a legacy row is literal, keep it.
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

// row provides positional, zero-tolerant access to the fields of one line.
type row []string

func parse(line string) row {
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(line, Delimiter)
}

func (r row) str(i int) string {
	if i < len(r) {
		return unescape(r[i])
	}
	return ""
}

func (r row) int(i int) int {
	if i >= len(r) {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(r[i]))
	return n
}

func (r row) float(i int) float64 {
	if i >= len(r) {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.TrimSpace(r[i]), 64)
	return f
}

func join(fields ...string) string {
	return strings.Join(fields, Delimiter)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// EncodeUser renders a user row: id|first|last|email|password|role.
func EncodeUser(u models.User) string {
	return join(itoa(u.ID), escape(u.FirstName), escape(u.LastName),
		escape(u.Email), escape(u.Password), string(u.Role))
}

// DecodeUser parses a user row.
func DecodeUser(line string) models.User {
	r := parse(line)
	return models.User{
		ID:        r.int(0),
		FirstName: r.str(1),
		LastName:  r.str(2),
		Email:     r.str(3),
		Password:  r.str(4),
		Role:      models.UserRole(r.str(5)),
	}
}

// EncodeStudent renders a student row: id|first|last|email|cne|section|filiere.
func EncodeStudent(s models.Student) string {
	return join(itoa(s.ID), escape(s.FirstName), escape(s.LastName),
		escape(s.Email), escape(s.CNE), escape(s.Section), escape(s.Filiere))
}

// DecodeStudent parses a student row.
func DecodeStudent(line string) models.Student {
	r := parse(line)
	return models.Student{
		ID:        r.int(0),
		FirstName: r.str(1),
		LastName:  r.str(2),
		Email:     r.str(3),
		CNE:       r.str(4),
		Section:   r.str(5),
		Filiere:   r.str(6),
	}
}

// EncodeTeacher renders a teacher row: id|first|last|email|code|subject.
func EncodeTeacher(t models.Teacher) string {
	return join(itoa(t.ID), escape(t.FirstName), escape(t.LastName),
		escape(t.Email), escape(t.Code), escape(t.SubjectTaught))
}

// DecodeTeacher parses a teacher row.
func DecodeTeacher(line string) models.Teacher {
	r := parse(line)
	return models.Teacher{
		ID:            r.int(0),
		FirstName:     r.str(1),
		LastName:      r.str(2),
		Email:         r.str(3),
		Code:          r.str(4),
		SubjectTaught: r.str(5),
	}
}

// EncodeSubject renders a subject row: id|code|name|coefficient.
func EncodeSubject(s models.Subject) string {
	return join(itoa(s.ID), escape(s.Code), escape(s.Name), ftoa(s.Coefficient))
}

// DecodeSubject parses a subject row.
func DecodeSubject(line string) models.Subject {
	r := parse(line)
	return models.Subject{
		ID:          r.int(0),
		Code:        r.str(1),
		Name:        r.str(2),
		Coefficient: r.float(3),
	}
}

// EncodeGrade renders a grade row: id|student|subject|teacher|value|comment|date.
func EncodeGrade(g models.Grade) string {
	return join(itoa(g.ID), itoa(g.StudentID), itoa(g.SubjectID), itoa(g.TeacherID),
		ftoa(g.Value), escape(g.Comment), escape(g.EvalDate))
}

// DecodeGrade parses a grade row.
func DecodeGrade(line string) models.Grade {
	r := parse(line)
	return models.Grade{
		ID:        r.int(0),
		StudentID: r.int(1),
		SubjectID: r.int(2),
		TeacherID: r.int(3),
		Value:     r.float(4),
		Comment:   r.str(5),
		EvalDate:  r.str(6),
	}
}

// EncodeAnnouncement renders an announcement row:
// id|title|body|author|date|subject|teacher.
func EncodeAnnouncement(a models.Announcement) string {
	return join(itoa(a.ID), escape(a.Title), escape(a.Body), escape(a.Author),
		escape(a.CreationDate), itoa(a.SubjectID), itoa(a.TeacherID))
}

// DecodeAnnouncement parses an announcement row.
func DecodeAnnouncement(line string) models.Announcement {
	r := parse(line)
	return models.Announcement{
		ID:           r.int(0),
		Title:        r.str(1),
		Body:         r.str(2),
		Author:       r.str(3),
		CreationDate: r.str(4),
		SubjectID:    r.int(5),
		TeacherID:    r.int(6),
	}
}

// EncodeEnrollment renders an enrollment row: id|student|subject|date|status.
func EncodeEnrollment(e models.Enrollment) string {
	return join(itoa(e.ID), itoa(e.StudentID), itoa(e.SubjectID),
		escape(e.Date), itoa(int(e.Status)))
}

// DecodeEnrollment parses an enrollment row.
func DecodeEnrollment(line string) models.Enrollment {
	r := parse(line)
	return models.Enrollment{
		ID:        r.int(0),
		StudentID: r.int(1),
		SubjectID: r.int(2),
		Date:      r.str(3),
		Status:    models.EnrollmentStatus(r.int(4)),
	}
}

// EncodeTimetableSlot renders a timetable row:
// id|subject|subject name|teacher|teacher name|room|day|hour.
func EncodeTimetableSlot(s models.TimetableSlot) string {
	return join(itoa(s.ID), itoa(s.SubjectID), escape(s.SubjectName),
		itoa(s.TeacherID), escape(s.TeacherName), escape(s.Room),
		itoa(s.Day), itoa(s.Hour))
}

// DecodeTimetableSlot parses a timetable row.
func DecodeTimetableSlot(line string) models.TimetableSlot {
	r := parse(line)
	return models.TimetableSlot{
		ID:          r.int(0),
		SubjectID:   r.int(1),
		SubjectName: r.str(2),
		TeacherID:   r.int(3),
		TeacherName: r.str(4),
		Room:        r.str(5),
		Day:         r.int(6),
		Hour:        r.int(7),
	}
}
