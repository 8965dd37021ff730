package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/ecole-manager/internal/models"
	appErrors "github.com/noah-isme/ecole-manager/pkg/errors"
)

type timetableRepository interface {
	Load() error
	Save() error
	Grid() models.Timetable
	At(day, hour int) models.TimetableSlot
	Occupied() int
	Reset()
	NextID() int
	Place(slot models.TimetableSlot)
	Put(slot models.TimetableSlot) error
	Clear(day, hour int) error
}

type timetableSubjectRepository interface {
	Load() error
	List() []models.Subject
	FindByID(id int) (*models.Subject, error)
}

type timetableTeacherRepository interface {
	Load() error
	List() []models.Teacher
	FindByID(id int) (*models.Teacher, error)
}

// AddSlotRequest places a session into an empty cell.
type AddSlotRequest struct {
	Day       int
	Hour      int
	SubjectID int
	TeacherID int
	Room      string
}

// ModifySlotRequest overwrites fields of an occupied cell. A zero id keeps
// the current subject or teacher; an empty room keeps the current room.
type ModifySlotRequest struct {
	Day       int
	Hour      int
	SubjectID int
	TeacherID int
	Room      string
}

// TimetableService manages the 5x4 weekly grid. Subject and teacher display
// names are denormalized into the slot at write time and never refreshed.
type TimetableService struct {
	repo     timetableRepository
	subjects timetableSubjectRepository
	teachers timetableTeacherRepository
	logger   *zap.Logger
}

// NewTimetableService creates a timetable service.
func NewTimetableService(repo timetableRepository, subjects timetableSubjectRepository, teachers timetableTeacherRepository, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, subjects: subjects, teachers: teachers, logger: logger}
}

// Load refreshes the grid from disk.
func (s *TimetableService) Load() error {
	if err := s.repo.Load(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger l'emploi du temps")
	}
	return nil
}

// Grid returns a copy of the weekly grid.
func (s *TimetableService) Grid() models.Timetable {
	return s.repo.Grid()
}

// At returns the cell at (day, hour) after a bounds check.
func (s *TimetableService) At(day, hour int) (models.TimetableSlot, error) {
	if err := checkCoordinates(day, hour); err != nil {
		return models.TimetableSlot{}, err
	}
	return s.repo.At(day, hour), nil
}

// Occupied returns the number of non-empty cells.
func (s *TimetableService) Occupied() int {
	return s.repo.Occupied()
}

func checkCoordinates(day, hour int) error {
	if day < 0 || day >= models.DaysPerWeek || hour < 0 || hour >= models.SlotsPerDay {
		return appErrors.Clone(appErrors.ErrValidation, "jour ou créneau hors limites")
	}
	return nil
}

func (s *TimetableService) snapshotNames(subjectID, teacherID int) (string, string, error) {
	subject, err := s.subjects.FindByID(subjectID)
	if err != nil {
		return "", "", appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
	}
	teacher, err := s.teachers.FindByID(teacherID)
	if err != nil {
		return "", "", appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
	}
	return subject.Name, teacher.FullName(), nil
}

// Add places a session into an empty cell, allocating the next global slot id.
func (s *TimetableService) Add(req AddSlotRequest) (*models.TimetableSlot, error) {
	if err := checkCoordinates(req.Day, req.Hour); err != nil {
		return nil, err
	}
	if !s.repo.At(req.Day, req.Hour).Empty() {
		return nil, appErrors.Clone(appErrors.ErrSlotOccupied, "ce créneau est déjà occupé")
	}

	subjectName, teacherName, err := s.snapshotNames(req.SubjectID, req.TeacherID)
	if err != nil {
		return nil, err
	}

	slot := models.TimetableSlot{
		ID:          s.repo.NextID(),
		SubjectID:   req.SubjectID,
		SubjectName: subjectName,
		TeacherID:   req.TeacherID,
		TeacherName: teacherName,
		Room:        req.Room,
		Day:         req.Day,
		Hour:        req.Hour,
	}
	if err := s.repo.Put(slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer le créneau")
	}

	s.logger.Info("timetable_slot_added",
		zap.Int("day", slot.Day),
		zap.Int("hour", slot.Hour),
		zap.Int("slot_id", slot.ID))
	return &slot, nil
}

// Modify overwrites fields of an occupied cell in place. The slot id is kept.
func (s *TimetableService) Modify(req ModifySlotRequest) (*models.TimetableSlot, error) {
	if err := checkCoordinates(req.Day, req.Hour); err != nil {
		return nil, err
	}
	slot := s.repo.At(req.Day, req.Hour)
	if slot.Empty() {
		return nil, appErrors.Clone(appErrors.ErrSlotEmpty, "ce créneau est vide, utilisez l'ajout")
	}

	if req.SubjectID > 0 {
		subject, err := s.subjects.FindByID(req.SubjectID)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "matière non trouvée")
		}
		slot.SubjectID = subject.ID
		slot.SubjectName = subject.Name
	}
	if req.TeacherID > 0 {
		teacher, err := s.teachers.FindByID(req.TeacherID)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enseignant non trouvé")
		}
		slot.TeacherID = teacher.ID
		slot.TeacherName = teacher.FullName()
	}
	if req.Room != "" {
		slot.Room = req.Room
	}

	if err := s.repo.Put(slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de modifier le créneau")
	}

	s.logger.Info("timetable_slot_modified",
		zap.Int("day", slot.Day),
		zap.Int("hour", slot.Hour))
	return &slot, nil
}

// Delete clears an occupied cell.
func (s *TimetableService) Delete(day, hour int) error {
	if err := checkCoordinates(day, hour); err != nil {
		return err
	}
	if s.repo.At(day, hour).Empty() {
		return appErrors.Clone(appErrors.ErrSlotEmpty, "ce créneau est déjà vide")
	}
	if err := s.repo.Clear(day, hour); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de supprimer le créneau")
	}
	s.logger.Info("timetable_slot_deleted", zap.Int("day", day), zap.Int("hour", hour))
	return nil
}

// AutoGenerate fills a fresh grid day-major, hour-minor: subjects are consumed
// in list order until exhausted, teachers rotate round-robin, and each day
// gets a placeholder room. Greedy fill only, no clash detection.
func (s *TimetableService) AutoGenerate() (models.Timetable, error) {
	if err := s.subjects.Load(); err != nil {
		return models.Timetable{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les matières")
	}
	if err := s.teachers.Load(); err != nil {
		return models.Timetable{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible de charger les enseignants")
	}

	subjects := s.subjects.List()
	teachers := s.teachers.List()
	if len(subjects) == 0 || len(teachers) == 0 {
		return models.Timetable{}, appErrors.Clone(appErrors.ErrValidation, "au moins une matière et un enseignant sont requis")
	}

	// Stores list newest first; generation walks oldest first so the fill
	// order follows creation order.
	reverseSubjects(subjects)
	reverseTeachers(teachers)

	s.repo.Reset()
	id := 1
	teacherIdx := 0
	subjectIdx := 0

fill:
	for day := 0; day < models.DaysPerWeek; day++ {
		room := fmt.Sprintf("Salle %d", day+1)
		for hour := 0; hour < models.SlotsPerDay; hour++ {
			if subjectIdx >= len(subjects) {
				break fill
			}
			subject := subjects[subjectIdx]
			teacher := teachers[teacherIdx%len(teachers)]
			slot := models.TimetableSlot{
				ID:          id,
				SubjectID:   subject.ID,
				SubjectName: subject.Name,
				TeacherID:   teacher.ID,
				TeacherName: teacher.FullName(),
				Room:        room,
				Day:         day,
				Hour:        hour,
			}
			// Cells are only placed here; the grid is persisted in one
			// write after the fill.
			s.repo.Place(slot)
			id++
			subjectIdx++
			teacherIdx++
		}
	}

	if err := s.repo.Save(); err != nil {
		return models.Timetable{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, "impossible d'enregistrer l'emploi du temps généré")
	}

	s.logger.Info("timetable_generated",
		zap.Int("slots", s.repo.Occupied()),
		zap.Int("subjects", len(subjects)),
		zap.Int("teachers", len(teachers)))
	return s.repo.Grid(), nil
}

func reverseSubjects(subjects []models.Subject) {
	for i, j := 0, len(subjects)-1; i < j; i, j = i+1, j-1 {
		subjects[i], subjects[j] = subjects[j], subjects[i]
	}
}

func reverseTeachers(teachers []models.Teacher) {
	for i, j := 0, len(teachers)-1; i < j; i, j = i+1, j-1 {
		teachers[i], teachers[j] = teachers[j], teachers[i]
	}
}
