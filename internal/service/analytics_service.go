package service

import (
	"github.com/noah-isme/ecole-manager/internal/models"
)

// MaxCategories bounds distribution tables, mirroring the fixed-size screens
// of the console statistics views.
const MaxCategories = 20

// CategoryCount is one row of a distribution table.
type CategoryCount struct {
	Label string
	Count int
}

// Overview is the headline counters screen.
type Overview struct {
	Students      int
	Teachers      int
	Subjects      int
	Grades        int
	Announcements int
}

// TeacherStats aggregates per-teacher activity.
type TeacherStats struct {
	TeacherID     int
	Grades        int
	Announcements int
}

type analyticsStudentRepository interface {
	List() []models.Student
}

type analyticsTeacherRepository interface {
	List() []models.Teacher
}

type analyticsSubjectRepository interface {
	List() []models.Subject
}

// AnalyticsService computes averages and distribution tables over the loaded
// stores. Pure reads, no persistence.
type AnalyticsService struct {
	students      analyticsStudentRepository
	teachers      analyticsTeacherRepository
	subjects      analyticsSubjectRepository
	grades        gradeRepository
	announcements announcementRepository
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(students analyticsStudentRepository, teachers analyticsTeacherRepository, subjects analyticsSubjectRepository, grades gradeRepository, announcements announcementRepository) *AnalyticsService {
	return &AnalyticsService{
		students:      students,
		teachers:      teachers,
		subjects:      subjects,
		grades:        grades,
		announcements: announcements,
	}
}

// Overview returns the headline counters.
func (s *AnalyticsService) Overview() Overview {
	return Overview{
		Students:      len(s.students.List()),
		Teachers:      len(s.teachers.List()),
		Subjects:      len(s.subjects.List()),
		Grades:        len(s.grades.List()),
		Announcements: len(s.announcements.List()),
	}
}

func average(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, g := range grades {
		sum += g.Value
	}
	return sum / float64(len(grades))
}

// AverageForStudent returns the plain average of the student's grades, 0.0
// when none exist. Pair with HasStudentGrades to tell an empty transcript
// from a real zero average.
func (s *AnalyticsService) AverageForStudent(studentID int) float64 {
	return average(s.grades.ListByStudent(studentID))
}

// AverageForSubject returns the plain average of the subject's grades, 0.0
// when none exist.
func (s *AnalyticsService) AverageForSubject(subjectID int) float64 {
	return average(s.grades.ListBySubject(subjectID))
}

// HasStudentGrades reports whether the student has at least one grade.
func (s *AnalyticsService) HasStudentGrades(studentID int) bool {
	return len(s.grades.ListByStudent(studentID)) > 0
}

// HasSubjectGrades reports whether the subject has at least one grade.
func (s *AnalyticsService) HasSubjectGrades(subjectID int) bool {
	return len(s.grades.ListBySubject(subjectID)) > 0
}

// CountsByCategory tallies labels in first-seen order, dropping new labels
// past MaxCategories.
func CountsByCategory(labels []string) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int, MaxCategories)
	for _, label := range labels {
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		if len(out) >= MaxCategories {
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryCount{Label: label, Count: 1})
	}
	return out
}

// StudentsBySection returns the student distribution over sections.
func (s *AnalyticsService) StudentsBySection() []CategoryCount {
	students := s.students.List()
	labels := make([]string, 0, len(students))
	for _, st := range students {
		labels = append(labels, st.Section)
	}
	return CountsByCategory(labels)
}

// TeachersBySubjectTaught returns the teacher distribution over taught
// subjects.
func (s *AnalyticsService) TeachersBySubjectTaught() []CategoryCount {
	teachers := s.teachers.List()
	labels := make([]string, 0, len(teachers))
	for _, t := range teachers {
		labels = append(labels, t.SubjectTaught)
	}
	return CountsByCategory(labels)
}

// StatsForTeacher counts the grades and announcements recorded by a teacher.
func (s *AnalyticsService) StatsForTeacher(teacherID int) TeacherStats {
	return TeacherStats{
		TeacherID:     teacherID,
		Grades:        len(s.grades.ListByTeacher(teacherID)),
		Announcements: len(s.announcements.ListByTeacher(teacherID)),
	}
}
