package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type teacherRepository interface {
	Load() error
	Save() error
	SyncWithUsers(users []models.User) (bool, error)
	List() []models.Teacher
	Create(t models.Teacher) (models.Teacher, error)
	FindByID(id int) (*models.Teacher, error)
	Search(filter models.TeacherFilter) []models.Teacher
	Update(id int, mutate func(*models.Teacher)) error
	Delete(id int) error
}

// CreateTeacherRequest captures fields for registering a teacher.
type CreateTeacherRequest struct {
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	Code          string `validate:"required"`
	SubjectTaught string
}

// UpdateTeacherRequest modifies teacher fields. Empty strings keep the
// current value.
type UpdateTeacherRequest struct {
	FirstName       string
	LastName        string
	Email           string `validate:"omitempty,email"`
	RegenerateEmail bool
	Code            string
	SubjectTaught   string
}

// TeacherService handles the teacher lifecycle, the paired user account and
// the post-load id synchronization.
type TeacherService struct {
	repo      teacherRepository
	users     provisioningUserRepository
	emails    emailIndex
	domain    string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService creates a teacher service. domain is the institutional
// mail domain of generated teacher addresses.
func NewTeacherService(repo teacherRepository, users provisioningUserRepository, emails emailIndex, domain string, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, users: users, emails: emails, domain: domain, validator: validate, logger: logger}
}

// Load refreshes the store from disk, then repairs id drift against the user
// store: teachers take the id of the matching user (same email, role
// enseignant). The store is persisted once when anything changed.
func (s *TeacherService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les enseignants")
	}
	if err := s.users.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les utilisateurs")
	}

	changed, err := s.repo.SyncWithUsers(s.users.List())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de synchroniser les identifiants enseignants")
	}
	if changed {
		s.logger.Info("teacher_ids_synchronized")
	}
	return nil
}

// List returns every teacher, newest first.
func (s *TeacherService) List() []models.Teacher {
	return s.repo.List()
}

// Get returns a teacher by id.
func (s *TeacherService) Get(id int) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
	}
	return teacher, nil
}

// Search collects teachers matching the filter.
func (s *TeacherService) Search(filter models.TeacherFilter) []models.Teacher {
	return s.repo.Search(filter)
}

// Create registers a teacher with a generated unique email, then provisions
// the paired account (role enseignant, default password). The two writes are
// not atomic.
func (s *TeacherService) Create(req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "fiche enseignant invalide")
	}

	email, err := generateUniqueEmail(s.emails, req.FirstName, req.LastName, s.domain)
	if err != nil {
		return nil, err
	}

	teacher, err := s.repo.Create(models.Teacher{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         email,
		Code:          req.Code,
		SubjectTaught: req.SubjectTaught,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer l'enseignant")
	}

	if _, err := provisionUser(s.users, s.logger, teacher.ID, teacher.FirstName, teacher.LastName, teacher.Email, models.RoleTeacher); err != nil {
		s.logger.Warn("teacher_without_account", zap.Int("teacher_id", teacher.ID), zap.Error(err))
		return &teacher, err
	}

	s.logger.Info("teacher_created", zap.Int("teacher_id", teacher.ID))
	return &teacher, nil
}

// Update modifies a teacher in place, with the same email semantics as
// students.
func (s *TeacherService) Update(id int, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "email invalide")
	}

	teacher, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
	}

	first := teacher.FirstName
	if req.FirstName != "" {
		first = req.FirstName
	}
	last := teacher.LastName
	if req.LastName != "" {
		last = req.LastName
	}

	email := teacher.Email
	if req.RegenerateEmail {
		email, err = generateUniqueEmail(s.emails, first, last, s.domain)
		if err != nil {
			return nil, err
		}
	} else if req.Email != "" {
		email = req.Email
	}

	err = s.repo.Update(id, func(t *models.Teacher) {
		t.FirstName = first
		t.LastName = last
		t.Email = email
		if req.Code != "" {
			t.Code = req.Code
		}
		if req.SubjectTaught != "" {
			t.SubjectTaught = req.SubjectTaught
		}
	})
	if err != nil {
		if err == repository.ErrNoRecord {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier l'enseignant")
	}
	return s.Get(id)
}

// Delete removes a teacher record. Grades, announcements and timetable slots
// referencing the id are left in place.
func (s *TeacherService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repository.ErrNoRecord {
			return appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer l'enseignant")
	}
	s.logger.Info("teacher_deleted", zap.Int("teacher_id", id))
	return nil
}
