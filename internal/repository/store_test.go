package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ecole-manager/internal/models"
)

var adminSeed = models.User{
	ID:        1,
	FirstName: "admin",
	LastName:  "admin",
	Email:     "admin@ecole.com",
	Password:  "admin123",
	Role:      models.RoleAdmin,
}

func TestUserRepositorySeedsDefaultAdmin(t *testing.T) {
	dir := t.TempDir()
	repo := NewUserRepository(dir, adminSeed)
	require.NoError(t, repo.Load())

	users := repo.List()
	require.Len(t, users, 1)
	assert.Equal(t, adminSeed, users[0])

	data, err := os.ReadFile(filepath.Join(dir, usersFile))
	require.NoError(t, err)
	assert.Equal(t, "1|admin|admin|admin@ecole.com|admin123|admin\n", string(data))
}

func TestUserRepositoryDoesNotReseedExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, usersFile)
	require.NoError(t, os.WriteFile(path, []byte("4|Sara|Alaoui|s.alaoui@umi.ac.ma|Sara123|enseignant\n"), 0o644))

	repo := NewUserRepository(dir, adminSeed)
	require.NoError(t, repo.Load())

	users := repo.List()
	require.Len(t, users, 1)
	assert.Equal(t, 4, users[0].ID)
	assert.Equal(t, models.RoleTeacher, users[0].Role)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	repo := NewStudentRepository(t.TempDir())
	require.NoError(t, repo.Load())

	first, err := repo.Create(models.Student{FirstName: "Jean", LastName: "Dupont"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := repo.Create(models.Student{FirstName: "Aya", LastName: "Benali"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	third, err := repo.Create(models.Student{FirstName: "Omar", LastName: "Idrissi"})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestDeletedMaxIDIsReused(t *testing.T) {
	repo := NewStudentRepository(t.TempDir())
	require.NoError(t, repo.Load())

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(models.Student{FirstName: name})
		require.NoError(t, err)
	}

	// Deleting the current maximum frees its id; deleting a middle id does not.
	require.NoError(t, repo.Delete(3))
	s, err := repo.Create(models.Student{FirstName: "d"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.ID)

	require.NoError(t, repo.Delete(2))
	s, err = repo.Create(models.Student{FirstName: "e"})
	require.NoError(t, err)
	assert.Equal(t, 4, s.ID)
}

func TestListIsNewestFirst(t *testing.T) {
	repo := NewSubjectRepository(t.TempDir())
	require.NoError(t, repo.Load())

	_, err := repo.Create(models.Subject{Code: "M1", Name: "Analyse", Coefficient: 2})
	require.NoError(t, err)
	_, err = repo.Create(models.Subject{Code: "M2", Name: "Algèbre", Coefficient: 3})
	require.NoError(t, err)

	subjects := repo.List()
	require.Len(t, subjects, 2)
	assert.Equal(t, "M2", subjects[0].Code)
	assert.Equal(t, "M1", subjects[1].Code)

	// Order survives a reload: the file is written in collection order.
	require.NoError(t, repo.Load())
	subjects = repo.List()
	assert.Equal(t, "M2", subjects[0].Code)
}

func TestUpdateAndDeleteSurfaceNotFound(t *testing.T) {
	repo := NewGradeRepository(t.TempDir())
	require.NoError(t, repo.Load())

	err := repo.Update(42, func(g *models.Grade) { g.Value = 10 })
	assert.ErrorIs(t, err, ErrNoRecord)
	assert.ErrorIs(t, repo.Delete(42), ErrNoRecord)
}

func TestStudentSearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo := NewStudentRepository(t.TempDir())
	require.NoError(t, repo.Load())

	_, err := repo.Create(models.Student{FirstName: "Jean", LastName: "Dupont", Filiere: "Informatique"})
	require.NoError(t, err)
	_, err = repo.Create(models.Student{FirstName: "Aya", LastName: "Benali", Filiere: "Physique"})
	require.NoError(t, err)

	assert.Len(t, repo.Search(models.StudentFilter{LastName: "dup"}), 1)
	assert.Len(t, repo.Search(models.StudentFilter{Filiere: "IQUE"}), 2)
	assert.Empty(t, repo.Search(models.StudentFilter{FirstName: "zoe"}))
}

func TestSubjectSearchByCoefficientRange(t *testing.T) {
	repo := NewSubjectRepository(t.TempDir())
	require.NoError(t, repo.Load())

	_, err := repo.Create(models.Subject{Code: "M1", Coefficient: 1.5})
	require.NoError(t, err)
	_, err = repo.Create(models.Subject{Code: "M2", Coefficient: 4})
	require.NoError(t, err)

	got := repo.Search(models.SubjectFilter{CoefMin: 1, CoefMax: 2})
	require.Len(t, got, 1)
	assert.Equal(t, "M1", got[0].Code)
}

func TestTeacherSyncWithUsers(t *testing.T) {
	dir := t.TempDir()
	repo := NewTeacherRepository(dir)
	require.NoError(t, repo.Load())

	_, err := repo.Create(models.Teacher{FirstName: "Sara", LastName: "Alaoui", Email: "s.alaoui@umi.ac.ma"})
	require.NoError(t, err)

	users := []models.User{
		{ID: 9, Email: "s.alaoui@umi.ac.ma", Role: models.RoleTeacher},
		{ID: 2, Email: "s.alaoui@umi.ac.ma", Role: models.RoleStudent},
	}

	changed, err := repo.SyncWithUsers(users)
	require.NoError(t, err)
	assert.True(t, changed)

	teacher, err := repo.FindByID(9)
	require.NoError(t, err)
	assert.Equal(t, "Sara", teacher.FirstName)

	// Second pass is a no-op.
	changed, err = repo.SyncWithUsers(users)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTeacherSaveFiltersPendingRows(t *testing.T) {
	dir := t.TempDir()
	repo := NewTeacherRepository(dir)
	require.NoError(t, repo.Load())

	_, err := repo.Create(models.Teacher{ID: -1, FirstName: "pending"})
	require.NoError(t, err)
	_, err = repo.Create(models.Teacher{FirstName: "Sara"})
	require.NoError(t, err)

	require.NoError(t, repo.Load())
	teachers := repo.List()
	require.Len(t, teachers, 1)
	assert.Equal(t, "Sara", teachers[0].FirstName)
}

func TestEnrollmentFindByPair(t *testing.T) {
	repo := NewEnrollmentRepository(t.TempDir())
	require.NoError(t, repo.Load())

	created, err := repo.Create(models.Enrollment{StudentID: 3, SubjectID: 2, Status: models.StatusEnrolled})
	require.NoError(t, err)

	found, err := repo.FindByPair(3, 2)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, repo.IsEnrolled(3, 2))

	_, err = repo.FindByPair(3, 99)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestTimetableLoadDropsMalformedCoordinates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, timetableFile)
	rows := "1|2|Analyse|5|Sara Alaoui|Salle A|1|2\n" +
		"2|3|Algèbre|6|Omar Idrissi|Salle B|7|9\n"
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))

	repo := NewTimetableRepository(dir)
	require.NoError(t, repo.Load())

	assert.Equal(t, 1, repo.Occupied())
	assert.Equal(t, "Analyse", repo.At(1, 2).SubjectName)
	assert.True(t, repo.At(0, 0).Empty())
}

func TestTimetablePutAndClear(t *testing.T) {
	repo := NewTimetableRepository(t.TempDir())
	require.NoError(t, repo.Load())

	slot := models.TimetableSlot{ID: 1, SubjectID: 2, SubjectName: "Analyse", Day: 0, Hour: 0}
	require.NoError(t, repo.Put(slot))
	assert.Equal(t, 1, repo.Occupied())
	assert.Equal(t, 2, repo.NextID())

	require.NoError(t, repo.Clear(0, 0))
	assert.Zero(t, repo.Occupied())

	// Empty cells are not persisted.
	require.NoError(t, repo.Load())
	assert.Zero(t, repo.Occupied())
}

func TestEmailIndexScansBothFiles(t *testing.T) {
	dir := t.TempDir()

	students := NewStudentRepository(dir)
	require.NoError(t, students.Load())
	_, err := students.Create(models.Student{FirstName: "Jean", LastName: "Dupont", Email: "j.dupont@edu.umi.ac.ma"})
	require.NoError(t, err)

	teachers := NewTeacherRepository(dir)
	require.NoError(t, teachers.Load())
	_, err = teachers.Create(models.Teacher{FirstName: "Sara", LastName: "Alaoui", Email: "s.alaoui@umi.ac.ma"})
	require.NoError(t, err)

	index := NewEmailIndex(dir)

	exists, err := index.Exists("j.dupont@edu.umi.ac.ma")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = index.Exists("s.alaoui@umi.ac.ma")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = index.Exists("libre@umi.ac.ma")
	require.NoError(t, err)
	assert.False(t, exists)
}
