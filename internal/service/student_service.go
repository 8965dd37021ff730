package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type studentRepository interface {
	Load() error
	Save() error
	List() []models.Student
	Create(s models.Student) (models.Student, error)
	FindByID(id int) (*models.Student, error)
	FindByEmail(email string) (*models.Student, error)
	Search(filter models.StudentFilter) []models.Student
	Update(id int, mutate func(*models.Student)) error
	Delete(id int) error
}

// CreateStudentRequest captures fields for registering a student. The email
// is always generated, never supplied.
type CreateStudentRequest struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	CNE       string `validate:"required"`
	Section   string
	Filiere   string
}

// UpdateStudentRequest modifies student fields. Empty strings keep the
// current value, matching the edit flow of the console.
type UpdateStudentRequest struct {
	FirstName       string
	LastName        string
	Email           string `validate:"omitempty,email"`
	RegenerateEmail bool
	CNE             string
	Section         string
	Filiere         string
}

// StudentService handles the student lifecycle, including the paired user
// account.
type StudentService struct {
	repo      studentRepository
	users     provisioningUserRepository
	emails    emailIndex
	domain    string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService creates a student service. domain is the institutional
// mail domain of generated student addresses.
func NewStudentService(repo studentRepository, users provisioningUserRepository, emails emailIndex, domain string, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, users: users, emails: emails, domain: domain, validator: validate, logger: logger}
}

// Load refreshes the in-memory store from disk.
func (s *StudentService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les étudiants")
	}
	return nil
}

// List returns every student, newest first.
func (s *StudentService) List() []models.Student {
	return s.repo.List()
}

// Get returns a student by id.
func (s *StudentService) Get(id int) (*models.Student, error) {
	student, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
	}
	return student, nil
}

// GetByEmail returns the student whose address matches exactly. Student
// sessions use it to find their own record, since user ids and student ids
// live in separate sequences.
func (s *StudentService) GetByEmail(email string) (*models.Student, error) {
	student, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
	}
	return student, nil
}

// Search collects students matching the filter.
func (s *StudentService) Search(filter models.StudentFilter) []models.Student {
	return s.repo.Search(filter)
}

// Create registers a student with a generated unique email, then provisions
// the paired account (role etudiant, default password). The two writes are
// not atomic; a provisioning failure leaves the student without credentials
// and is reported to the caller.
func (s *StudentService) Create(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "fiche étudiant invalide")
	}

	email, err := generateUniqueEmail(s.emails, req.FirstName, req.LastName, s.domain)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.Create(models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		CNE:       req.CNE,
		Section:   req.Section,
		Filiere:   req.Filiere,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer l'étudiant")
	}

	if _, err := provisionUser(s.users, s.logger, student.ID, student.FirstName, student.LastName, student.Email, models.RoleStudent); err != nil {
		s.logger.Warn("student_without_account", zap.Int("student_id", student.ID), zap.Error(err))
		return &student, err
	}

	s.logger.Info("student_created", zap.Int("student_id", student.ID))
	return &student, nil
}

// Update modifies a student in place. RegenerateEmail recomputes the address
// from the (possibly updated) name; otherwise a non-empty Email must be a
// valid address and replaces the current one.
func (s *StudentService) Update(id int, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "email invalide")
	}

	student, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
	}

	first := student.FirstName
	if req.FirstName != "" {
		first = req.FirstName
	}
	last := student.LastName
	if req.LastName != "" {
		last = req.LastName
	}

	email := student.Email
	if req.RegenerateEmail {
		email, err = generateUniqueEmail(s.emails, first, last, s.domain)
		if err != nil {
			return nil, err
		}
	} else if req.Email != "" {
		email = req.Email
	}

	err = s.repo.Update(id, func(st *models.Student) {
		st.FirstName = first
		st.LastName = last
		st.Email = email
		if req.CNE != "" {
			st.CNE = req.CNE
		}
		if req.Section != "" {
			st.Section = req.Section
		}
		if req.Filiere != "" {
			st.Filiere = req.Filiere
		}
	})
	if err != nil {
		if err == repository.ErrNoRecord {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier l'étudiant")
	}
	return s.Get(id)
}

// Delete removes a student record. Grades and enrollments referencing the id
// are left in place: referential integrity is not enforced at write time.
func (s *StudentService) Delete(id int) error {
	if err := s.repo.Delete(id); err != nil {
		if err == repository.ErrNoRecord {
			return appErrors.Clone(appErrors.ErrNotFound, "étudiant non trouvé")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer l'étudiant")
	}
	s.logger.Info("student_deleted", zap.Int("student_id", id))
	return nil
}
