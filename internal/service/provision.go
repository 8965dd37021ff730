package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type emailIndex interface {
	Exists(email string) (bool, error)
}

type provisioningUserRepository interface {
	Load() error
	List() []models.User
	FindByID(id int) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	NextID() int
	Create(u models.User) (models.User, error)
}

// generateUniqueEmail builds <initial>.<lastname>@<domain>, lower-cased, and
// appends an increasing numeric suffix before the domain until the address is
// free. Uniqueness is checked against the on-disk student and teacher files,
// so callers must have saved any pending changes first.
func generateUniqueEmail(index emailIndex, first, last, domain string) (string, error) {
	first = strings.ToLower(strings.TrimSpace(first))
	last = strings.ToLower(strings.TrimSpace(last))
	if first == "" || last == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "prénom et nom requis pour générer l'email")
	}

	base := fmt.Sprintf("%c.%s", first[0], last)
	email := base + "@" + domain
	for counter := 1; ; counter++ {
		taken, err := index.Exists(email)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de vérifier l'unicité de l'email")
		}
		if !taken {
			return email, nil
		}
		email = fmt.Sprintf("%s%d@%s", base, counter, domain)
	}
}

// defaultPassword is the initial credential of auto-provisioned accounts.
func defaultPassword(first string) string {
	return first + "123"
}

// provisionUser creates the account paired with a new student or teacher.
// The write is not atomic with the entity write that precedes it: when it
// fails the entity exists without login credentials, an accepted
// inconsistency window of the flat-file layout.
func provisionUser(users provisioningUserRepository, logger *zap.Logger, id int, first, last, email string, role models.UserRole) (models.User, error) {
	if err := users.Load(); err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les utilisateurs")
	}
	if _, err := users.FindByEmail(email); err == nil {
		return models.User{}, appErrors.Clone(appErrors.ErrConflict, "un utilisateur avec cet email existe déjà")
	}

	// Keep the account id aligned with the entity id when it is free; the
	// teacher id synchronization relies on the pairing.
	if _, err := users.FindByID(id); err == nil {
		id = users.NextID()
	}

	user, err := users.Create(models.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  defaultPassword(first),
		Role:      role,
	})
	if err != nil {
		return models.User{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de créer le compte utilisateur")
	}

	logger.Info("user_provisioned",
		zap.Int("user_id", user.ID),
		zap.String("role", string(role)))
	return user, nil
}
