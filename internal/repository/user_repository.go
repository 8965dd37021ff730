package repository

import (
	"errors"

	"github.com/noah-isme/ecole-manager/internal/codec"
	"github.com/noah-isme/ecole-manager/internal/models"
)

// ErrNoRecord is returned by lookups that find no matching record. Services
// translate it into the typed not-found error.
var ErrNoRecord = errors.New("record not found")

// UserRepository is the file-backed store for accounts.
type UserRepository struct {
	store textStore
	seed  models.User
	users []models.User
}

// NewUserRepository creates the store. seed is written as the single row of a
// freshly created users file (the default administrator).
func NewUserRepository(dataDir string, seed models.User) *UserRepository {
	return &UserRepository{store: newTextStore(dataDir, usersFile), seed: seed}
}

// Load reads the whole users file into memory, creating it with the default
// administrator row when absent. Parse anomalies are tolerated; only I/O
// failures are reported.
func (r *UserRepository) Load() error {
	lines, created, err := r.store.readLines()
	if err != nil {
		return err
	}
	if created {
		r.users = []models.User{r.seed}
		return r.Save()
	}
	r.users = make([]models.User, 0, len(lines))
	for _, line := range lines {
		r.users = append(r.users, codec.DecodeUser(line))
	}
	return nil
}

// Save rewrites the whole users file from memory.
func (r *UserRepository) Save() error {
	lines := make([]string, 0, len(r.users))
	for _, u := range r.users {
		lines = append(lines, codec.EncodeUser(u))
	}
	return r.store.writeLines(lines)
}

// List returns the collection in store order, newest first.
func (r *UserRepository) List() []models.User {
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// NextID returns the highest id present plus one, or 1 for an empty store.
func (r *UserRepository) NextID() int {
	next := 1
	for _, u := range r.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	return next
}

// Create assigns the next id when none is set, prepends the record and
// persists. It returns the stored record.
func (r *UserRepository) Create(u models.User) (models.User, error) {
	if u.ID == 0 {
		u.ID = r.NextID()
	}
	r.users = append([]models.User{u}, r.users...)
	if err := r.Save(); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// FindByID returns the first record with the given id.
func (r *UserRepository) FindByID(id int) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNoRecord
}

// FindByEmail returns the first record with the given email.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNoRecord
}

// Update applies mutate to the record in place and persists.
func (r *UserRepository) Update(id int, mutate func(*models.User)) error {
	for i := range r.users {
		if r.users[i].ID == id {
			mutate(&r.users[i])
			return r.Save()
		}
	}
	return ErrNoRecord
}

// Delete unlinks the record and persists.
func (r *UserRepository) Delete(id int) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return r.Save()
		}
	}
	return ErrNoRecord
}
