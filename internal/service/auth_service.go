package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type authUserRepository interface {
	Load() error
	List() []models.User
}

// AuthService resolves console logins against the user store.
type AuthService struct {
	users  authUserRepository
	logger *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, logger: logger}
}

// Authenticate reloads the user store and scans for an exact email and
// password match. Passwords are compared in plaintext, as stored by the
// legacy file format. The returned session carries a fresh identifier used to
// correlate log entries for the login.
func (s *AuthService) Authenticate(email, password string) (*models.Session, error) {
	if err := s.users.Load(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les utilisateurs")
	}

	for _, u := range s.users.List() {
		if u.Email != email || u.Password != password {
			continue
		}
		session := &models.Session{
			SessionID: uuid.NewString(),
			UserID:    u.ID,
			Role:      u.Role,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
		s.logger.Info("login",
			zap.String("session_id", session.SessionID),
			zap.Int("user_id", session.UserID),
			zap.String("role", string(session.Role)))
		return session, nil
	}

	s.logger.Warn("login_failed", zap.String("email", email))
	return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
}
