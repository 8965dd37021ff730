package cli

import (
	"fmt"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/service"
)

func (a *App) teacherMenu(session models.Session) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Menu enseignant ---")
		fmt.Fprintln(a.out, "1. Mes annonces")
		fmt.Fprintln(a.out, "2. Notes")
		fmt.Fprintln(a.out, "3. Emploi du temps")
		fmt.Fprintln(a.out, "4. Moyenne d'une matière")
		fmt.Fprintln(a.out, "5. Rechercher des étudiants")
		fmt.Fprintln(a.out, "0. Déconnexion")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			a.announcementMenu(session, true)
		case 2:
			a.gradeMenu(session)
		case 3:
			if a.loadOrFail(a.timetable.Load) {
				renderTimetable(a.out, a.timetable.Grid())
			}
		case 4:
			a.subjectAverageScreen()
		case 5:
			if a.loadOrFail(a.students.Load) {
				a.searchStudentScreen()
			}
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) gradeMenu(session models.Session) {
	if !a.loadOrFail(a.grades.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Notes ---")
		fmt.Fprintln(a.out, "1. Mes notes saisies")
		fmt.Fprintln(a.out, "2. Ajouter")
		fmt.Fprintln(a.out, "3. Modifier")
		fmt.Fprintln(a.out, "4. Supprimer")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderGrades(a.out, a.grades.ListByTeacher(session.UserID))
		case 2:
			a.addGradeScreen(session)
		case 3:
			a.editGradeScreen(session)
		case 4:
			a.deleteGradeScreen(session)
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) addGradeScreen(session models.Session) {
	req := service.CreateGradeRequest{
		StudentID: a.in.Int("ID de l'étudiant : "),
		SubjectID: a.in.Int("ID de la matière : "),
		Value:     a.in.Float("Note (0-20) : "),
		Comment:   a.in.Line("Commentaire : "),
	}
	grade, err := a.grades.Create(session, req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Note enregistrée (id %d).\n", grade.ID)
}

func (a *App) editGradeScreen(session models.Session) {
	id := a.in.Int("ID de la note : ")
	req := service.UpdateGradeRequest{Value: -1}
	if value, ok := a.in.OptionalFloat("Nouvelle note (vide pour conserver) : "); ok {
		req.Value = value
	}
	req.Comment = a.in.Line("Nouveau commentaire (vide pour conserver) : ")
	if _, err := a.grades.Update(session, id, req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Note modifiée.")
}

func (a *App) deleteGradeScreen(session models.Session) {
	id := a.in.Int("ID de la note : ")
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.grades.Delete(session, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Note supprimée.")
}

func (a *App) subjectAverageScreen() {
	if !a.loadOrFail(a.grades.Load, a.subjects.Load) {
		return
	}
	id := a.in.Int("ID de la matière : ")
	subject, err := a.subjects.Get(id)
	if err != nil {
		a.fail(err)
		return
	}
	if !a.analytics.HasSubjectGrades(id) {
		fmt.Fprintf(a.out, "Aucune note pour %s.\n", subject.Name)
		return
	}
	fmt.Fprintf(a.out, "Moyenne de %s : %.2f\n", subject.Name, a.analytics.AverageForSubject(id))
}
