package cli

import (
	"fmt"

	"github.com/noah-isme/ecole-manager/internal/models"
)

func (a *App) studentMenu(session models.Session) {
	if !a.loadOrFail(a.students.Load) {
		return
	}
	// The session's user id belongs to the account sequence, not the student
	// one. The shared email resolves the student record.
	student, err := a.students.GetByEmail(session.Email)
	if err != nil {
		a.fail(err)
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Menu étudiant ---")
		fmt.Fprintln(a.out, "1. Mes notes et ma moyenne")
		fmt.Fprintln(a.out, "2. Mes inscriptions")
		fmt.Fprintln(a.out, "3. Annonces")
		fmt.Fprintln(a.out, "4. Emploi du temps")
		fmt.Fprintln(a.out, "5. Exporter mon relevé")
		fmt.Fprintln(a.out, "0. Déconnexion")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			a.myGradesScreen(student.ID)
		case 2:
			a.enrollmentMenu(student.ID)
		case 3:
			if a.loadOrFail(a.announcements.Load) {
				renderAnnouncements(a.out, a.announcements.List())
			}
		case 4:
			if a.loadOrFail(a.timetable.Load) {
				renderTimetable(a.out, a.timetable.Grid())
			}
		case 5:
			if a.loadOrFail(a.students.Load, a.subjects.Load, a.grades.Load) {
				a.runExport(func(format string) (string, error) {
					return a.exports.ExportTranscript(student.ID, format)
				})
			}
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) myGradesScreen(studentID int) {
	if !a.loadOrFail(a.grades.Load) {
		return
	}
	grades := a.grades.ListByStudent(studentID)
	renderGrades(a.out, grades)
	if a.analytics.HasStudentGrades(studentID) {
		fmt.Fprintf(a.out, "Moyenne générale : %.2f\n", a.analytics.AverageForStudent(studentID))
	}
}

func (a *App) enrollmentMenu(studentID int) {
	if !a.loadOrFail(a.enrollments.Load, a.subjects.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Inscriptions ---")
		fmt.Fprintln(a.out, "1. Matières disponibles")
		fmt.Fprintln(a.out, "2. Mes matières")
		fmt.Fprintln(a.out, "3. S'inscrire")
		fmt.Fprintln(a.out, "4. Se désinscrire")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderSubjects(a.out, a.subjects.List())
		case 2:
			a.mySubjectsScreen(studentID)
		case 3:
			id := a.in.Int("ID de la matière : ")
			if _, err := a.enrollments.Enroll(studentID, id); err != nil {
				a.fail(err)
				continue
			}
			fmt.Fprintln(a.out, "Inscription enregistrée.")
		case 4:
			id := a.in.Int("ID de la matière : ")
			if err := a.enrollments.Unenroll(studentID, id); err != nil {
				a.fail(err)
				continue
			}
			fmt.Fprintln(a.out, "Désinscription enregistrée.")
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) mySubjectsScreen(studentID int) {
	ids := a.enrollments.ActiveSubjects(studentID)
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "Aucune inscription active.")
		return
	}
	var subjects []models.Subject
	for _, id := range ids {
		if subject, err := a.subjects.Get(id); err == nil {
			subjects = append(subjects, *subject)
		}
	}
	renderSubjects(a.out, subjects)
}
