package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/ecole-manager/internal/cli"
	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/repository"
	"github.com/noah-isme/ecole-manager/internal/service"
	"github.com/noah-isme/ecole-manager/pkg/config"
	"github.com/noah-isme/ecole-manager/pkg/logger"
	"github.com/noah-isme/ecole-manager/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	seedAdmin := models.User{
		ID:        1,
		FirstName: "admin",
		LastName:  "admin",
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
		Role:      models.RoleAdmin,
	}

	users := repository.NewUserRepository(cfg.DataDir, seedAdmin)
	students := repository.NewStudentRepository(cfg.DataDir)
	teachers := repository.NewTeacherRepository(cfg.DataDir)
	subjects := repository.NewSubjectRepository(cfg.DataDir)
	grades := repository.NewGradeRepository(cfg.DataDir)
	announcements := repository.NewAnnouncementRepository(cfg.DataDir)
	enrollments := repository.NewEnrollmentRepository(cfg.DataDir)
	timetable := repository.NewTimetableRepository(cfg.DataDir)
	emails := repository.NewEmailIndex(cfg.DataDir)

	if err := users.Load(); err != nil {
		logr.Sugar().Fatalw("failed to initialize user store", "error", err)
	}

	exportsDir, err := storage.NewLocalStorage(cfg.ExportsDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare exports directory", "error", err)
	}

	validate := validator.New()

	authService := service.NewAuthService(users, logr)
	studentService := service.NewStudentService(students, users, emails, cfg.Email.StudentDomain, validate, logr)
	teacherService := service.NewTeacherService(teachers, users, emails, cfg.Email.TeacherDomain, validate, logr)
	subjectService := service.NewSubjectService(subjects, validate, logr)
	gradeService := service.NewGradeService(grades, validate, logr)
	announcementService := service.NewAnnouncementService(announcements, validate, logr)
	enrollmentService := service.NewEnrollmentService(enrollments, students, subjects, logr)
	timetableService := service.NewTimetableService(timetable, subjects, teachers, logr)
	analyticsService := service.NewAnalyticsService(students, teachers, subjects, grades, announcements)
	exportService := service.NewExportService(students, subjects, grades, timetable, analyticsService, exportsDir, logr)

	app := cli.NewApp(os.Stdin, os.Stdout, cli.Deps{
		Auth:          authService,
		Users:         users,
		Students:      studentService,
		Teachers:      teacherService,
		Subjects:      subjectService,
		Grades:        gradeService,
		Announcements: announcementService,
		Enrollments:   enrollmentService,
		Timetable:     timetableService,
		Analytics:     analyticsService,
		Exports:       exportService,
		Logger:        logr,
	})

	logr.Sugar().Infow("application starting", "env", cfg.Env, "data_dir", cfg.DataDir)
	if err := app.Run(); err != nil {
		logr.Sugar().Fatalw("application failed", "error", err)
	}
}
