package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/service"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type userDirectory interface {
	Load() error
	List() []models.User
}

// App drives the console menus. One instance serves the whole process; every
// menu section reloads its stores on entry so concurrent edits of the data
// files between sessions are picked up.
type App struct {
	out io.Writer
	in  *Prompter

	auth          *service.AuthService
	users         userDirectory
	students      *service.StudentService
	teachers      *service.TeacherService
	subjects      *service.SubjectService
	grades        *service.GradeService
	announcements *service.AnnouncementService
	enrollments   *service.EnrollmentService
	timetable     *service.TimetableService
	analytics     *service.AnalyticsService
	exports       *service.ExportService

	logger *zap.Logger
}

// Deps bundles the services the app needs.
type Deps struct {
	Auth          *service.AuthService
	Users         userDirectory
	Students      *service.StudentService
	Teachers      *service.TeacherService
	Subjects      *service.SubjectService
	Grades        *service.GradeService
	Announcements *service.AnnouncementService
	Enrollments   *service.EnrollmentService
	Timetable     *service.TimetableService
	Analytics     *service.AnalyticsService
	Exports       *service.ExportService
	Logger        *zap.Logger
}

// NewApp builds the console application over the given streams.
func NewApp(in io.Reader, out io.Writer, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		out:           out,
		in:            NewPrompter(in, out),
		auth:          deps.Auth,
		users:         deps.Users,
		students:      deps.Students,
		teachers:      deps.Teachers,
		subjects:      deps.Subjects,
		grades:        deps.Grades,
		announcements: deps.Announcements,
		enrollments:   deps.Enrollments,
		timetable:     deps.Timetable,
		analytics:     deps.Analytics,
		exports:       deps.Exports,
		logger:        logger,
	}
}

// Run loops on the login screen until the user quits. Returns nil on a normal
// exit.
func (a *App) Run() error {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "=== Gestion Scolaire ===")
		fmt.Fprintln(a.out, "1. Se connecter")
		fmt.Fprintln(a.out, "0. Quitter")
		switch a.in.Int("Choix : ") {
		case 0:
			fmt.Fprintln(a.out, "Au revoir.")
			return nil
		case 1:
			a.login()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) login() {
	email := a.in.Line("Email : ")
	password := a.in.Password("Mot de passe : ")

	session, err := a.auth.Authenticate(email, password)
	if err != nil {
		a.fail(err)
		return
	}

	fmt.Fprintf(a.out, "Bienvenue %s %s (%s)\n", session.FirstName, session.LastName, session.Role)
	switch session.Role {
	case models.RoleAdmin:
		a.adminMenu(*session)
	case models.RoleTeacher:
		a.teacherMenu(*session)
	case models.RoleStudent:
		a.studentMenu(*session)
	default:
		fmt.Fprintf(a.out, "Rôle inconnu : %s\n", session.Role)
		a.logger.Warn("unknown_role", zap.String("role", string(session.Role)))
	}
}

// fail prints the domain message of an error on the console.
func (a *App) fail(err error) {
	fmt.Fprintf(a.out, "Erreur : %s\n", appErrors.FromError(err).Message)
}

func (a *App) loadOrFail(loaders ...func() error) bool {
	for _, load := range loaders {
		if err := load(); err != nil {
			a.fail(err)
			return false
		}
	}
	return true
}
