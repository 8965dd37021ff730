package service

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
	"github.com/noah-isme/ecole-manager/pkg/storage"
)

func newExportFixture(t *testing.T) (*ExportService, int) {
	t.Helper()
	dir := t.TempDir()
	students := repository.NewStudentRepository(dir)
	require.NoError(t, students.Load())
	teachers := repository.NewTeacherRepository(dir)
	require.NoError(t, teachers.Load())
	subjects := repository.NewSubjectRepository(dir)
	require.NoError(t, subjects.Load())
	grades := repository.NewGradeRepository(dir)
	require.NoError(t, grades.Load())
	announcements := repository.NewAnnouncementRepository(dir)
	require.NoError(t, announcements.Load())
	timetable := repository.NewTimetableRepository(dir)
	require.NoError(t, timetable.Load())

	student, err := students.Create(models.Student{FirstName: "Sara", LastName: "Alami", CNE: "C1"})
	require.NoError(t, err)
	subject, err := subjects.Create(models.Subject{Code: "MATH", Name: "Analyse", Coefficient: 3})
	require.NoError(t, err)
	_, err = grades.Create(models.Grade{StudentID: student.ID, SubjectID: subject.ID, Value: 12, EvalDate: "01/03/2024"})
	require.NoError(t, err)
	_, err = grades.Create(models.Grade{StudentID: student.ID, SubjectID: subject.ID, Value: 16, EvalDate: "02/03/2024"})
	require.NoError(t, err)

	analytics := NewAnalyticsService(students, teachers, subjects, grades, announcements)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(students, subjects, grades, timetable, analytics, store, nil), student.ID
}

func TestTranscriptDatasetIncludesAverageRow(t *testing.T) {
	svc, studentID := newExportFixture(t)

	data, err := svc.TranscriptDataset(studentID)
	require.NoError(t, err)
	require.Len(t, data.Rows, 3)
	last := data.Rows[len(data.Rows)-1]
	assert.Equal(t, "Moyenne générale", last["Matière"])
	assert.Equal(t, "14.00", last["Note"])
}

func TestExportTranscriptWritesCSV(t *testing.T) {
	svc, studentID := newExportFixture(t)

	path, err := svc.ExportTranscript(studentID, FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(payload)
	assert.Contains(t, content, "Matière,Note,Commentaire,Date")
	assert.Contains(t, content, "Analyse")
	assert.Contains(t, content, "Moyenne générale")
}

func TestExportTranscriptRejectsUnknownFormat(t *testing.T) {
	svc, studentID := newExportFixture(t)

	_, err := svc.ExportTranscript(studentID, "xml")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportTranscriptUnknownStudent(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.ExportTranscript(999, FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
