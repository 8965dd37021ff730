package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type gradeRepository interface {
	Load() error
	List() []models.Grade
	Create(g models.Grade) (models.Grade, error)
	FindByID(id int) (*models.Grade, error)
	ListByStudent(studentID int) []models.Grade
	ListBySubject(subjectID int) []models.Grade
	ListByTeacher(teacherID int) []models.Grade
	Update(id int, mutate func(*models.Grade)) error
	Delete(id int) error
}

// CreateGradeRequest captures fields for recording a grade on the 0-20 scale.
type CreateGradeRequest struct {
	StudentID int     `validate:"required,gt=0"`
	SubjectID int     `validate:"required,gt=0"`
	Value     float64 `validate:"gte=0,lte=20"`
	Comment   string
}

// UpdateGradeRequest modifies a grade. A negative value keeps the current
// one; an empty comment keeps the current one.
type UpdateGradeRequest struct {
	Value   float64 `validate:"lte=20"`
	Comment string
}

// GradeService handles grade workflows. Mutations are restricted to the
// recording teacher; administrators may touch any grade.
type GradeService struct {
	repo      gradeRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeService creates a grade service.
func NewGradeService(repo gradeRepository, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Load refreshes the in-memory store from disk.
func (s *GradeService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les notes")
	}
	return nil
}

// List returns every grade, newest first.
func (s *GradeService) List() []models.Grade {
	return s.repo.List()
}

// ListByStudent returns the grades of one student.
func (s *GradeService) ListByStudent(studentID int) []models.Grade {
	return s.repo.ListByStudent(studentID)
}

// ListBySubject returns the grades of one subject.
func (s *GradeService) ListBySubject(subjectID int) []models.Grade {
	return s.repo.ListBySubject(subjectID)
}

// ListByTeacher returns the grades recorded by one teacher.
func (s *GradeService) ListByTeacher(teacherID int) []models.Grade {
	return s.repo.ListByTeacher(teacherID)
}

// Create records a grade on behalf of the acting session. Teachers become
// the owning teacher of the record; the evaluation date is stamped with the
// current day.
func (s *GradeService) Create(actor models.Session, req CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "note invalide (échelle 0-20)")
	}

	teacherID := models.AdminAuthor
	if actor.Role == models.RoleTeacher {
		teacherID = actor.UserID
	}

	grade, err := s.repo.Create(models.Grade{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		TeacherID: teacherID,
		Value:     req.Value,
		Comment:   req.Comment,
		EvalDate:  s.now().Format(models.DateLayout),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer la note")
	}

	s.logger.Info("grade_created",
		zap.String("session_id", actor.SessionID),
		zap.Int("grade_id", grade.ID),
		zap.Int("student_id", grade.StudentID))
	return &grade, nil
}

// Update modifies a grade in place. A teacher may only modify grades they
// recorded.
func (s *GradeService) Update(actor models.Session, id int, req UpdateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "note invalide (échelle 0-20)")
	}

	grade, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "note non trouvée")
	}
	if actor.Role == models.RoleTeacher && grade.TeacherID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "vous n'êtes pas autorisé à modifier cette note")
	}

	err = s.repo.Update(id, func(g *models.Grade) {
		if req.Value >= 0 {
			g.Value = req.Value
		}
		if req.Comment != "" {
			g.Comment = req.Comment
		}
		g.EvalDate = s.now().Format(models.DateLayout)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier la note")
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "note non trouvée")
	}
	return updated, nil
}

// Delete removes a grade. A teacher may only delete grades they recorded.
func (s *GradeService) Delete(actor models.Session, id int) error {
	grade, err := s.repo.FindByID(id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "note non trouvée")
	}
	if actor.Role == models.RoleTeacher && grade.TeacherID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "vous n'êtes pas autorisé à supprimer cette note")
	}

	if err := s.repo.Delete(id); err != nil {
		if err == repository.ErrNoRecord {
			return appErrors.Clone(appErrors.ErrNotFound, "note non trouvée")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer la note")
	}

	s.logger.Info("grade_deleted",
		zap.String("session_id", actor.SessionID),
		zap.Int("grade_id", id))
	return nil
}
