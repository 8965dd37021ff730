package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
	"github.com/noah-isme/ecole-manager/pkg/export"
)

// Export formats accepted by the export screens.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportService renders transcripts and the weekly timetable to CSV or PDF
// files under the exports directory.
type ExportService struct {
	students  enrollmentStudentRepository
	subjects  enrollmentSubjectRepository
	grades    gradeRepository
	timetable timetableRepository
	analytics *AnalyticsService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	storage   exportStorage
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService creates an export service.
func NewExportService(students enrollmentStudentRepository, subjects enrollmentSubjectRepository, grades gradeRepository, timetable timetableRepository, analytics *AnalyticsService, storage exportStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:  students,
		subjects:  subjects,
		grades:    grades,
		timetable: timetable,
		analytics: analytics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		storage:   storage,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ExportService) subjectName(id int) string {
	subject, err := s.subjects.FindByID(id)
	if err != nil {
		return fmt.Sprintf("Matière %d", id)
	}
	return subject.Name
}

// TranscriptDataset builds the grade table of one student, average included
// as a trailing row when at least one grade exists.
func (s *ExportService) TranscriptDataset(studentID int) (export.Dataset, error) {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return export.Dataset{}, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
	}

	data := export.Dataset{
		Title:   fmt.Sprintf("Relevé de notes - %s %s (%s)", student.FirstName, student.LastName, student.CNE),
		Headers: []string{"Matière", "Note", "Commentaire", "Date"},
	}
	grades := s.grades.ListByStudent(studentID)
	for _, g := range grades {
		data.Rows = append(data.Rows, map[string]string{
			"Matière":     s.subjectName(g.SubjectID),
			"Note":        fmt.Sprintf("%.2f", g.Value),
			"Commentaire": g.Comment,
			"Date":        g.EvalDate,
		})
	}
	if len(grades) > 0 {
		data.Rows = append(data.Rows, map[string]string{
			"Matière": "Moyenne générale",
			"Note":    fmt.Sprintf("%.2f", s.analytics.AverageForStudent(studentID)),
		})
	}
	return data, nil
}

// TimetableDataset builds the occupied cells of the weekly grid, day-major.
func (s *ExportService) TimetableDataset() export.Dataset {
	data := export.Dataset{
		Title:   "Emploi du temps",
		Headers: []string{"Jour", "Horaire", "Matière", "Enseignant", "Salle"},
	}
	grid := s.timetable.Grid()
	for day := 0; day < models.DaysPerWeek; day++ {
		for hour := 0; hour < models.SlotsPerDay; hour++ {
			slot := grid.At(day, hour)
			if slot.Empty() {
				continue
			}
			data.Rows = append(data.Rows, map[string]string{
				"Jour":       models.DayName(day),
				"Horaire":    models.HourName(hour),
				"Matière":    slot.SubjectName,
				"Enseignant": slot.TeacherName,
				"Salle":      slot.Room,
			})
		}
	}
	return data
}

func (s *ExportService) render(data export.Dataset, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return s.csv.Render(data)
	case FormatPDF:
		return s.pdf.Render(data)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format d'export inconnu (csv ou pdf)")
	}
}

func (s *ExportService) write(data export.Dataset, prefix, format string) (string, error) {
	payload, err := s.render(data, format)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.%s", prefix, s.now().Format("2006-01-02_150405"), strings.ToLower(format))
	path, err := s.storage.Save(filename, payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'écrire le fichier d'export")
	}
	s.logger.Info("export_written", zap.String("file", path))
	return path, nil
}

// ExportTranscript writes one student's transcript and returns the file path.
func (s *ExportService) ExportTranscript(studentID int, format string) (string, error) {
	data, err := s.TranscriptDataset(studentID)
	if err != nil {
		return "", err
	}
	return s.write(data, fmt.Sprintf("releve_%d", studentID), format)
}

// ExportTimetable writes the weekly timetable and returns the file path.
func (s *ExportService) ExportTimetable(format string) (string, error) {
	return s.write(s.TimetableDataset(), "emploi_du_temps", format)
}
