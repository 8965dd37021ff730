package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type subjectRepository interface {
	Load() error
	List() []models.Subject
	Create(s models.Subject) (models.Subject, error)
	FindByID(id int) (*models.Subject, error)
	Search(filter models.SubjectFilter) []models.Subject
	Update(id int, mutate func(*models.Subject)) error
	Delete(id int) error
}

// CreateSubjectRequest captures fields for creating subjects.
type CreateSubjectRequest struct {
	Code        string  `validate:"required"`
	Name        string  `validate:"required"`
	Coefficient float64 `validate:"gte=0.1,lte=10"`
}

// UpdateSubjectRequest modifies subject fields. Empty strings keep the
// current value; a zero coefficient keeps the current one.
type UpdateSubjectRequest struct {
	Code        string
	Name        string
	Coefficient float64 `validate:"omitempty,gte=0.1,lte=10"`
}

// SubjectService handles subject workflows.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a subject service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// Load refreshes the in-memory store from disk.
func (s *SubjectService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les matières")
	}
	return nil
}

// List returns every subject, newest first.
func (s *SubjectService) List() []models.Subject {
	return s.repo.List()
}

// Get returns a subject by id.
func (s *SubjectService) Get(id int) (*models.Subject, error) {
	subject, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
	}
	return subject, nil
}

// Search collects subjects matching the filter.
func (s *SubjectService) Search(filter models.SubjectFilter) []models.Subject {
	return s.repo.Search(filter)
}

// Create adds a new subject. Codes are upper-cased for display consistency.
func (s *SubjectService) Create(req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "fiche matière invalide")
	}

	subject, err := s.repo.Create(models.Subject{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:        req.Name,
		Coefficient: req.Coefficient,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer la matière")
	}

	s.logger.Info("subject_created", zap.Int("subject_id", subject.ID))
	return &subject, nil
}

// Update modifies a subject in place.
func (s *SubjectService) Update(id int, req UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "coefficient invalide")
	}

	err := s.repo.Update(id, func(sub *models.Subject) {
		if req.Code != "" {
			sub.Code = strings.ToUpper(strings.TrimSpace(req.Code))
		}
		if req.Name != "" {
			sub.Name = req.Name
		}
		if req.Coefficient > 0 {
			sub.Coefficient = req.Coefficient
		}
	})
	if err != nil {
		if err == repository.ErrNoRecord {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier la matière")
	}
	return s.Get(id)
}

// Delete removes a subject record.
func (s *SubjectService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repository.ErrNoRecord {
			return appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer la matière")
	}
	s.logger.Info("subject_deleted", zap.Int("subject_id", id))
	return nil
}
