package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type announcementRepository interface {
	Load() error
	List() []models.Announcement
	Create(a models.Announcement) (models.Announcement, error)
	FindByID(id int) (*models.Announcement, error)
	ListBySubject(subjectID int) []models.Announcement
	ListByTeacher(teacherID int) []models.Announcement
	Update(id int, mutate func(*models.Announcement)) error
	Delete(id int) error
}

// CreateAnnouncementRequest captures fields for publishing an announcement.
// SubjectID 0 marks a general announcement.
type CreateAnnouncementRequest struct {
	Title     string `validate:"required"`
	Body      string `validate:"required"`
	SubjectID int    `validate:"gte=0"`
}

// UpdateAnnouncementRequest modifies an announcement. Empty strings keep the
// current value; a negative SubjectID keeps the current one.
type UpdateAnnouncementRequest struct {
	Title     string
	Body      string
	SubjectID int
}

// AnnouncementService handles announcement workflows. Teachers may only
// modify or delete their own announcements.
type AnnouncementService struct {
	repo      announcementRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnnouncementService creates an announcement service.
func NewAnnouncementService(repo announcementRepository, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Load refreshes the in-memory store from disk.
func (s *AnnouncementService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les annonces")
	}
	return nil
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List() []models.Announcement {
	return s.repo.List()
}

// ListBySubject returns announcements for one subject.
func (s *AnnouncementService) ListBySubject(subjectID int) []models.Announcement {
	return s.repo.ListBySubject(subjectID)
}

// ListByTeacher returns announcements authored by one teacher.
func (s *AnnouncementService) ListByTeacher(teacherID int) []models.Announcement {
	return s.repo.ListByTeacher(teacherID)
}

// Get returns an announcement by id.
func (s *AnnouncementService) Get(id int) (*models.Announcement, error) {
	annonce, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "annonce non trouvée")
	}
	return annonce, nil
}

// Create publishes an announcement on behalf of the acting session. The
// author display name and creation date are snapshots taken now; an
// administrator is recorded with teacher id -1.
func (s *AnnouncementService) Create(actor models.Session, req CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "annonce invalide")
	}

	teacherID := models.AdminAuthor
	if actor.Role == models.RoleTeacher {
		teacherID = actor.UserID
	}

	annonce, err := s.repo.Create(models.Announcement{
		Title:        req.Title,
		Body:         req.Body,
		Author:       actor.FirstName + " " + actor.LastName,
		CreationDate: s.now().Format(models.DateLayout),
		SubjectID:    req.SubjectID,
		TeacherID:    teacherID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer l'annonce")
	}

	s.logger.Info("announcement_created",
		zap.String("session_id", actor.SessionID),
		zap.Int("announcement_id", annonce.ID))
	return &annonce, nil
}

// Update modifies an announcement in place and refreshes its date. Teachers
// may only touch their own.
func (s *AnnouncementService) Update(actor models.Session, id int, req UpdateAnnouncementRequest) (*models.Announcement, error) {
	annonce, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "annonce non trouvée")
	}
	if actor.Role == models.RoleTeacher && annonce.TeacherID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "vous n'êtes pas autorisé à modifier cette annonce")
	}

	err = s.repo.Update(id, func(a *models.Announcement) {
		if req.Title != "" {
			a.Title = req.Title
		}
		if req.Body != "" {
			a.Body = req.Body
		}
		if req.SubjectID >= 0 {
			a.SubjectID = req.SubjectID
		}
		a.CreationDate = s.now().Format(models.DateLayout)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier l'annonce")
	}
	return s.Get(id)
}

// Delete removes an announcement. Teachers may only delete their own.
func (s *AnnouncementService) Delete(actor models.Session, id int) error {
	annonce, err := s.repo.FindByID(id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "annonce non trouvée")
	}
	if actor.Role == models.RoleTeacher && annonce.TeacherID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "vous n'êtes pas autorisé à supprimer cette annonce")
	}

	if err := s.repo.Delete(id); err != nil {
		if err == repository.ErrNoRecord {
			return appErrors.Clone(appErrors.ErrNotFound, "annonce non trouvée")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer l'annonce")
	}

	s.logger.Info("announcement_deleted",
		zap.String("session_id", actor.SessionID),
		zap.Int("announcement_id", id))
	return nil
}
