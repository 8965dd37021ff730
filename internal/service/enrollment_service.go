package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type enrollmentRepository interface {
	Load() error
	List() []models.Enrollment
	Create(e models.Enrollment) (models.Enrollment, error)
	FindByPair(studentID, subjectID int) (*models.Enrollment, error)
	ListByStudent(studentID int) []models.Enrollment
	ListBySubject(subjectID int) []models.Enrollment
	IsEnrolled(studentID, subjectID int) bool
	Update(id int, mutate func(*models.Enrollment)) error
}

type enrollmentStudentRepository interface {
	FindByID(id int) (*models.Student, error)
}

type enrollmentSubjectRepository interface {
	FindByID(id int) (*models.Subject, error)
}

// EnrollmentService toggles student-subject enrollments. One record per pair
// is kept; enrolling again after an unenrollment reactivates the record and
// refreshes its date.
type EnrollmentService struct {
	repo     enrollmentRepository
	students enrollmentStudentRepository
	subjects enrollmentSubjectRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewEnrollmentService creates an enrollment service.
func NewEnrollmentService(repo enrollmentRepository, students enrollmentStudentRepository, subjects enrollmentSubjectRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, subjects: subjects, logger: logger, now: time.Now}
}

// Load refreshes the in-memory store from disk.
func (s *EnrollmentService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les inscriptions")
	}
	return nil
}

// List returns every enrollment record, active or not, newest first.
func (s *EnrollmentService) List() []models.Enrollment {
	return s.repo.List()
}

// ListByStudent returns the enrollment records of one student.
func (s *EnrollmentService) ListByStudent(studentID int) []models.Enrollment {
	return s.repo.ListByStudent(studentID)
}

// ListBySubject returns the enrollment records of one subject.
func (s *EnrollmentService) ListBySubject(subjectID int) []models.Enrollment {
	return s.repo.ListBySubject(subjectID)
}

// IsEnrolled reports whether the student has an active enrollment.
func (s *EnrollmentService) IsEnrolled(studentID, subjectID int) bool {
	return s.repo.IsEnrolled(studentID, subjectID)
}

// ActiveSubjects returns the subject ids the student is currently enrolled in.
func (s *EnrollmentService) ActiveSubjects(studentID int) []int {
	var out []int
	for _, e := range s.repo.ListByStudent(studentID) {
		if e.Active() {
			out = append(out, e.SubjectID)
		}
	}
	return out
}

// Enroll activates the enrollment of a student in a subject. Both sides must
// exist. An already active enrollment is rejected; an inactive record is
// reactivated with a fresh date; otherwise a new record is created.
func (s *EnrollmentService) Enroll(studentID, subjectID int) (*models.Enrollment, error) {
	if _, err := s.students.FindByID(studentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
	}
	if _, err := s.subjects.FindByID(subjectID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
	}

	today := s.now().Format(models.DateLayout)

	existing, err := s.repo.FindByPair(studentID, subjectID)
	if err == nil {
		if existing.Active() {
			return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "l'étudiant est déjà inscrit à cette matière")
		}
		err = s.repo.Update(existing.ID, func(e *models.Enrollment) {
			e.Status = models.StatusEnrolled
			e.Date = today
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de réactiver l'inscription")
		}
		s.logger.Info("enrollment_reactivated",
			zap.Int("student_id", studentID),
			zap.Int("subject_id", subjectID))
		reloaded, _ := s.repo.FindByPair(studentID, subjectID)
		return reloaded, nil
	}

	created, err := s.repo.Create(models.Enrollment{
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      today,
		Status:    models.StatusEnrolled,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer l'inscription")
	}

	s.logger.Info("enrollment_created",
		zap.Int("student_id", studentID),
		zap.Int("subject_id", subjectID))
	return &created, nil
}

// Unenroll deactivates the enrollment, refreshing the date. Unenrolling when
// no active enrollment exists is rejected.
func (s *EnrollmentService) Unenroll(studentID, subjectID int) error {
	existing, err := s.repo.FindByPair(studentID, subjectID)
	if err != nil || !existing.Active() {
		return appErrors.Clone(appErrors.ErrNotEnrolled, "l'étudiant n'est pas inscrit à cette matière")
	}

	today := s.now().Format(models.DateLayout)
	err = s.repo.Update(existing.ID, func(e *models.Enrollment) {
		e.Status = models.StatusUnenrolled
		e.Date = today
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de désinscrire l'étudiant")
	}

	s.logger.Info("enrollment_deactivated",
		zap.Int("student_id", studentID),
		zap.Int("subject_id", subjectID))
	return nil
}
