package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

var seedAdmin = models.User{
	ID:        1,
	FirstName: "admin",
	LastName:  "admin",
	Email:     "admin@ecole.com",
	Password:  "admin123",
	Role:      models.RoleAdmin,
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestAuthenticateDefaultAdmin(t *testing.T) {
	dir := t.TempDir()
	users := repository.NewUserRepository(dir, seedAdmin)
	svc := NewAuthService(users, nil)

	session, err := svc.Authenticate("admin@ecole.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, 1, session.UserID)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.NotEmpty(t, session.SessionID)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	dir := t.TempDir()
	users := repository.NewUserRepository(dir, seedAdmin)
	svc := NewAuthService(users, nil)

	_, err := svc.Authenticate("admin@ecole.com", "wrong")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func newStudentService(t *testing.T, dir string) (*StudentService, *repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(dir, seedAdmin)
	require.NoError(t, users.Load())
	students := repository.NewStudentRepository(dir)
	require.NoError(t, students.Load())
	emails := repository.NewEmailIndex(dir)
	return NewStudentService(students, users, emails, "edu.umi.ac.ma", nil, nil), users
}

func TestCreateStudentGeneratesEmailAndAccount(t *testing.T) {
	dir := t.TempDir()
	svc, users := newStudentService(t, dir)

	student, err := svc.Create(CreateStudentRequest{
		FirstName: "Jean",
		LastName:  "Dupont",
		CNE:       "D130000001",
		Section:   "A",
		Filiere:   "Informatique",
	})
	require.NoError(t, err)
	assert.Equal(t, "j.dupont@edu.umi.ac.ma", student.Email)

	require.NoError(t, users.Load())
	account, err := users.FindByEmail("j.dupont@edu.umi.ac.ma")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, account.Role)
	assert.Equal(t, "Jean123", account.Password)
}

func TestCreateStudentEmailCollisionAppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newStudentService(t, dir)

	first, err := svc.Create(CreateStudentRequest{FirstName: "Jean", LastName: "Dupont", CNE: "D1"})
	require.NoError(t, err)
	second, err := svc.Create(CreateStudentRequest{FirstName: "Jeanne", LastName: "Dupont", CNE: "D2"})
	require.NoError(t, err)

	assert.Equal(t, "j.dupont@edu.umi.ac.ma", first.Email)
	assert.Equal(t, "j.dupont1@edu.umi.ac.ma", second.Email)
}

func TestCreateStudentRequiresIdentity(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newStudentService(t, dir)

	_, err := svc.Create(CreateStudentRequest{FirstName: "Jean"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStudentSessionResolvesOwnRecord(t *testing.T) {
	dir := t.TempDir()
	svc, users := newStudentService(t, dir)

	student, err := svc.Create(CreateStudentRequest{FirstName: "Jean", LastName: "Dupont", CNE: "D1"})
	require.NoError(t, err)

	auth := NewAuthService(users, nil)
	session, err := auth.Authenticate("j.dupont@edu.umi.ac.ma", "Jean123")
	require.NoError(t, err)

	// The admin seed holds user id 1, so the account id diverges from the
	// student id. The session email is the stable link back to the record.
	assert.NotEqual(t, student.ID, session.UserID)

	resolved, err := svc.GetByEmail(session.Email)
	require.NoError(t, err)
	assert.Equal(t, student.ID, resolved.ID)

	_, err = svc.GetByEmail("inconnu@edu.umi.ac.ma")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, int, int) {
	t.Helper()
	dir := t.TempDir()
	students := repository.NewStudentRepository(dir)
	require.NoError(t, students.Load())
	subjects := repository.NewSubjectRepository(dir)
	require.NoError(t, subjects.Load())
	enrollments := repository.NewEnrollmentRepository(dir)
	require.NoError(t, enrollments.Load())

	student, err := students.Create(models.Student{FirstName: "Sara", LastName: "Alami", CNE: "C1"})
	require.NoError(t, err)
	subject, err := subjects.Create(models.Subject{Code: "MATH101", Name: "Analyse", Coefficient: 3})
	require.NoError(t, err)

	svc := NewEnrollmentService(enrollments, students, subjects, nil)
	svc.now = fixedClock()
	return svc, student.ID, subject.ID
}

func TestEnrollToggleReusesRecord(t *testing.T) {
	svc, studentID, subjectID := newEnrollmentFixture(t)

	created, err := svc.Enroll(studentID, subjectID)
	require.NoError(t, err)
	assert.True(t, svc.IsEnrolled(studentID, subjectID))

	_, err = svc.Enroll(studentID, subjectID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyEnrolled))

	require.NoError(t, svc.Unenroll(studentID, subjectID))
	assert.False(t, svc.IsEnrolled(studentID, subjectID))

	err = svc.Unenroll(studentID, subjectID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotEnrolled))

	reactivated, err := svc.Enroll(studentID, subjectID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, reactivated.ID)
	assert.Len(t, svc.List(), 1)
}

func TestEnrollUnknownSubject(t *testing.T) {
	svc, studentID, _ := newEnrollmentFixture(t)

	_, err := svc.Enroll(studentID, 999)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func newTimetableFixture(t *testing.T) (*TimetableService, *repository.SubjectRepository, *repository.TeacherRepository) {
	t.Helper()
	dir := t.TempDir()
	subjects := repository.NewSubjectRepository(dir)
	require.NoError(t, subjects.Load())
	teachers := repository.NewTeacherRepository(dir)
	require.NoError(t, teachers.Load())
	timetable := repository.NewTimetableRepository(dir)
	require.NoError(t, timetable.Load())
	return NewTimetableService(timetable, subjects, teachers, nil), subjects, teachers
}

func TestTimetableAddRejectsOccupiedCell(t *testing.T) {
	svc, subjects, teachers := newTimetableFixture(t)
	subject, err := subjects.Create(models.Subject{Code: "PHY", Name: "Physique", Coefficient: 2})
	require.NoError(t, err)
	teacher, err := teachers.Create(models.Teacher{FirstName: "Ali", LastName: "Berrada", Code: "T1"})
	require.NoError(t, err)

	slot, err := svc.Add(AddSlotRequest{Day: 0, Hour: 0, SubjectID: subject.ID, TeacherID: teacher.ID, Room: "B12"})
	require.NoError(t, err)
	assert.Equal(t, "Physique", slot.SubjectName)
	assert.Equal(t, "Ali Berrada", slot.TeacherName)
	assert.Equal(t, 1, svc.Occupied())

	_, err = svc.Add(AddSlotRequest{Day: 0, Hour: 0, SubjectID: subject.ID, TeacherID: teacher.ID})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotOccupied))
}

func TestTimetableModifyAndDeleteRequireOccupiedCell(t *testing.T) {
	svc, subjects, teachers := newTimetableFixture(t)
	subject, err := subjects.Create(models.Subject{Code: "CHM", Name: "Chimie", Coefficient: 2})
	require.NoError(t, err)
	teacher, err := teachers.Create(models.Teacher{FirstName: "Nadia", LastName: "Fassi", Code: "T2"})
	require.NoError(t, err)

	_, err = svc.Modify(ModifySlotRequest{Day: 1, Hour: 1, Room: "C1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotEmpty))

	err = svc.Delete(1, 1)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSlotEmpty))

	_, err = svc.Add(AddSlotRequest{Day: 1, Hour: 1, SubjectID: subject.ID, TeacherID: teacher.ID, Room: "C1"})
	require.NoError(t, err)

	modified, err := svc.Modify(ModifySlotRequest{Day: 1, Hour: 1, Room: "C2"})
	require.NoError(t, err)
	assert.Equal(t, "C2", modified.Room)
	assert.Equal(t, "Chimie", modified.SubjectName)

	require.NoError(t, svc.Delete(1, 1))
	assert.Equal(t, 0, svc.Occupied())
}

func TestAutoGenerateFillsDayMajorRoundRobin(t *testing.T) {
	svc, subjects, teachers := newTimetableFixture(t)
	for _, name := range []string{"Analyse", "Algèbre", "Physique"} {
		_, err := subjects.Create(models.Subject{Code: name[:3], Name: name, Coefficient: 2})
		require.NoError(t, err)
	}
	teacherA, err := teachers.Create(models.Teacher{FirstName: "Ali", LastName: "Berrada", Code: "T1"})
	require.NoError(t, err)
	teacherB, err := teachers.Create(models.Teacher{FirstName: "Nadia", LastName: "Fassi", Code: "T2"})
	require.NoError(t, err)

	grid, err := svc.AutoGenerate()
	require.NoError(t, err)

	assert.Equal(t, "Analyse", grid.At(0, 0).SubjectName)
	assert.Equal(t, "Algèbre", grid.At(0, 1).SubjectName)
	assert.Equal(t, "Physique", grid.At(0, 2).SubjectName)
	assert.True(t, grid.At(0, 3).Empty())

	assert.Equal(t, teacherA.ID, grid.At(0, 0).TeacherID)
	assert.Equal(t, teacherB.ID, grid.At(0, 1).TeacherID)
	assert.Equal(t, teacherA.ID, grid.At(0, 2).TeacherID)
	assert.Equal(t, "Salle 1", grid.At(0, 0).Room)
	assert.Equal(t, 3, svc.Occupied())
}

type savingCounterTimetableRepo struct {
	*repository.TimetableRepository
	saves int
}

func (r *savingCounterTimetableRepo) Save() error {
	r.saves++
	return r.TimetableRepository.Save()
}

func TestAutoGeneratePersistsGridOnce(t *testing.T) {
	dir := t.TempDir()
	subjects := repository.NewSubjectRepository(dir)
	require.NoError(t, subjects.Load())
	teachers := repository.NewTeacherRepository(dir)
	require.NoError(t, teachers.Load())
	timetable := &savingCounterTimetableRepo{TimetableRepository: repository.NewTimetableRepository(dir)}
	require.NoError(t, timetable.Load())
	svc := NewTimetableService(timetable, subjects, teachers, nil)

	for i := 1; i <= 6; i++ {
		_, err := subjects.Create(models.Subject{Code: fmt.Sprintf("S%d", i), Name: fmt.Sprintf("Matière %d", i), Coefficient: 1})
		require.NoError(t, err)
	}
	_, err := teachers.Create(models.Teacher{FirstName: "Ali", LastName: "Berrada", Code: "T1"})
	require.NoError(t, err)

	grid, err := svc.AutoGenerate()
	require.NoError(t, err)
	assert.Equal(t, 6, svc.Occupied())
	assert.False(t, grid.At(1, 1).Empty())
	assert.Equal(t, 1, timetable.saves)
}

func TestAutoGenerateRequiresInputs(t *testing.T) {
	svc, subjects, _ := newTimetableFixture(t)
	_, err := subjects.Create(models.Subject{Code: "M", Name: "Maths", Coefficient: 1})
	require.NoError(t, err)

	_, err = svc.AutoGenerate()
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func newGradeFixture(t *testing.T) *GradeService {
	t.Helper()
	dir := t.TempDir()
	grades := repository.NewGradeRepository(dir)
	require.NoError(t, grades.Load())
	svc := NewGradeService(grades, nil, nil)
	svc.now = fixedClock()
	return svc
}

func TestGradeOwnershipEnforcedForTeachers(t *testing.T) {
	svc := newGradeFixture(t)
	owner := models.Session{SessionID: "s1", UserID: 10, Role: models.RoleTeacher}
	other := models.Session{SessionID: "s2", UserID: 11, Role: models.RoleTeacher}
	admin := models.Session{SessionID: "s3", UserID: 1, Role: models.RoleAdmin}

	grade, err := svc.Create(owner, CreateGradeRequest{StudentID: 5, SubjectID: 2, Value: 14.5, Comment: "bien"})
	require.NoError(t, err)
	assert.Equal(t, 10, grade.TeacherID)
	assert.Equal(t, "15/03/2024", grade.EvalDate)

	_, err = svc.Update(other, grade.ID, UpdateGradeRequest{Value: 12})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	err = svc.Delete(other, grade.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	updated, err := svc.Update(admin, grade.ID, UpdateGradeRequest{Value: 12})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Value)

	require.NoError(t, svc.Delete(owner, grade.ID))
}

func TestGradeValueRange(t *testing.T) {
	svc := newGradeFixture(t)
	admin := models.Session{SessionID: "s", UserID: 1, Role: models.RoleAdmin}

	_, err := svc.Create(admin, CreateGradeRequest{StudentID: 1, SubjectID: 1, Value: 21})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAnnouncementAuthorSnapshot(t *testing.T) {
	dir := t.TempDir()
	announcements := repository.NewAnnouncementRepository(dir)
	require.NoError(t, announcements.Load())
	svc := NewAnnouncementService(announcements, nil, nil)
	svc.now = fixedClock()

	admin := models.Session{SessionID: "s", UserID: 1, Role: models.RoleAdmin, FirstName: "admin", LastName: "admin"}
	teacher := models.Session{SessionID: "s2", UserID: 7, Role: models.RoleTeacher, FirstName: "Ali", LastName: "Berrada"}

	general, err := svc.Create(admin, CreateAnnouncementRequest{Title: "Rentrée", Body: "Le 02/09", SubjectID: models.GeneralAnnouncement})
	require.NoError(t, err)
	assert.Equal(t, models.AdminAuthor, general.TeacherID)
	assert.Equal(t, "admin admin", general.Author)
	assert.Equal(t, "15/03/2024", general.CreationDate)

	owned, err := svc.Create(teacher, CreateAnnouncementRequest{Title: "TP", Body: "Salle B", SubjectID: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, owned.TeacherID)

	_, err = svc.Update(models.Session{SessionID: "s3", UserID: 8, Role: models.RoleTeacher}, owned.ID, UpdateAnnouncementRequest{Title: "X", SubjectID: -1})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func newAnalyticsFixture(t *testing.T) (*AnalyticsService, *repository.GradeRepository, *repository.AnnouncementRepository) {
	t.Helper()
	dir := t.TempDir()
	students := repository.NewStudentRepository(dir)
	require.NoError(t, students.Load())
	teachers := repository.NewTeacherRepository(dir)
	require.NoError(t, teachers.Load())
	subjects := repository.NewSubjectRepository(dir)
	require.NoError(t, subjects.Load())
	grades := repository.NewGradeRepository(dir)
	require.NoError(t, grades.Load())
	announcements := repository.NewAnnouncementRepository(dir)
	require.NoError(t, announcements.Load())
	return NewAnalyticsService(students, teachers, subjects, grades, announcements), grades, announcements
}

func TestAveragesAndHasGrades(t *testing.T) {
	svc, grades, _ := newAnalyticsFixture(t)

	assert.Equal(t, 0.0, svc.AverageForStudent(1))
	assert.False(t, svc.HasStudentGrades(1))

	_, err := grades.Create(models.Grade{StudentID: 1, SubjectID: 2, TeacherID: 3, Value: 12, EvalDate: "01/03/2024"})
	require.NoError(t, err)
	_, err = grades.Create(models.Grade{StudentID: 1, SubjectID: 2, TeacherID: 3, Value: 16, EvalDate: "02/03/2024"})
	require.NoError(t, err)

	assert.InDelta(t, 14.0, svc.AverageForStudent(1), 1e-9)
	assert.InDelta(t, 14.0, svc.AverageForSubject(2), 1e-9)
	assert.True(t, svc.HasStudentGrades(1))
	assert.True(t, svc.HasSubjectGrades(2))
	assert.False(t, svc.HasSubjectGrades(9))
}

func TestZeroGradeDistinctFromNoGrades(t *testing.T) {
	svc, grades, _ := newAnalyticsFixture(t)

	_, err := grades.Create(models.Grade{StudentID: 4, SubjectID: 1, Value: 0, EvalDate: "01/03/2024"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, svc.AverageForStudent(4))
	assert.True(t, svc.HasStudentGrades(4))
}

func TestCountsByCategoryCapsDistinctLabels(t *testing.T) {
	labels := []string{"A", "B", "A"}
	counts := CountsByCategory(labels)
	require.Len(t, counts, 2)
	assert.Equal(t, CategoryCount{Label: "A", Count: 2}, counts[0])
	assert.Equal(t, CategoryCount{Label: "B", Count: 1}, counts[1])

	var many []string
	for i := 0; i < 25; i++ {
		many = append(many, string(rune('a'+i)))
	}
	many = append(many, "a")
	capped := CountsByCategory(many)
	assert.Len(t, capped, MaxCategories)
	assert.Equal(t, 2, capped[0].Count)
}

func TestStatsForTeacher(t *testing.T) {
	svc, grades, announcements := newAnalyticsFixture(t)

	_, err := grades.Create(models.Grade{StudentID: 1, SubjectID: 1, TeacherID: 7, Value: 10, EvalDate: "01/03/2024"})
	require.NoError(t, err)
	_, err = announcements.Create(models.Announcement{Title: "TP", Body: "Salle B", Author: "Ali Berrada", CreationDate: "01/03/2024", SubjectID: 1, TeacherID: 7})
	require.NoError(t, err)

	stats := svc.StatsForTeacher(7)
	assert.Equal(t, 1, stats.Grades)
	assert.Equal(t, 1, stats.Announcements)
	assert.Equal(t, TeacherStats{TeacherID: 9}, svc.StatsForTeacher(9))
}
