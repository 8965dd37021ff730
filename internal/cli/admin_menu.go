package cli

import (
	"fmt"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/service"
)

func (a *App) adminMenu(session models.Session) {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Menu administrateur ---")
		fmt.Fprintln(a.out, "1. Gestion des étudiants")
		fmt.Fprintln(a.out, "2. Gestion des enseignants")
		fmt.Fprintln(a.out, "3. Gestion des matières")
		fmt.Fprintln(a.out, "4. Utilisateurs")
		fmt.Fprintln(a.out, "5. Emploi du temps")
		fmt.Fprintln(a.out, "6. Annonces")
		fmt.Fprintln(a.out, "7. Statistiques")
		fmt.Fprintln(a.out, "8. Exports")
		fmt.Fprintln(a.out, "0. Déconnexion")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			a.studentAdminMenu()
		case 2:
			a.teacherAdminMenu()
		case 3:
			a.subjectAdminMenu()
		case 4:
			a.userListScreen()
		case 5:
			a.timetableAdminMenu()
		case 6:
			a.announcementMenu(session, false)
		case 7:
			a.statisticsMenu()
		case 8:
			a.exportMenu()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) studentAdminMenu() {
	if !a.loadOrFail(a.students.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Étudiants ---")
		fmt.Fprintln(a.out, "1. Lister")
		fmt.Fprintln(a.out, "2. Ajouter")
		fmt.Fprintln(a.out, "3. Modifier")
		fmt.Fprintln(a.out, "4. Supprimer")
		fmt.Fprintln(a.out, "5. Rechercher")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderStudents(a.out, a.students.List())
		case 2:
			a.addStudentScreen()
		case 3:
			a.editStudentScreen()
		case 4:
			a.deleteStudentScreen()
		case 5:
			a.searchStudentScreen()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) addStudentScreen() {
	req := service.CreateStudentRequest{
		FirstName: a.in.Line("Prénom : "),
		LastName:  a.in.Line("Nom : "),
		CNE:       a.in.Line("CNE : "),
		Section:   a.in.Line("Section : "),
		Filiere:   a.in.Line("Filière : "),
	}
	student, err := a.students.Create(req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Étudiant créé (id %d), email %s, mot de passe initial %s123\n",
		student.ID, student.Email, student.FirstName)
}

func (a *App) editStudentScreen() {
	id := a.in.Int("ID de l'étudiant : ")
	student, err := a.students.Get(id)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Laisser vide pour conserver la valeur actuelle.")
	req := service.UpdateStudentRequest{
		FirstName: a.in.Line(fmt.Sprintf("Prénom [%s] : ", student.FirstName)),
		LastName:  a.in.Line(fmt.Sprintf("Nom [%s] : ", student.LastName)),
		CNE:       a.in.Line(fmt.Sprintf("CNE [%s] : ", student.CNE)),
		Section:   a.in.Line(fmt.Sprintf("Section [%s] : ", student.Section)),
		Filiere:   a.in.Line(fmt.Sprintf("Filière [%s] : ", student.Filiere)),
	}
	req.RegenerateEmail = a.in.Confirm("Régénérer l'email ?")
	if !req.RegenerateEmail {
		req.Email = a.in.Line(fmt.Sprintf("Email [%s] : ", student.Email))
	}
	if _, err := a.students.Update(id, req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Étudiant modifié.")
}

func (a *App) deleteStudentScreen() {
	id := a.in.Int("ID de l'étudiant : ")
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.students.Delete(id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Étudiant supprimé.")
}

func (a *App) searchStudentScreen() {
	fmt.Fprintln(a.out, "Critères (laisser vide pour ignorer) :")
	filter := models.StudentFilter{
		FirstName: a.in.Line("Prénom : "),
		LastName:  a.in.Line("Nom : "),
		CNE:       a.in.Line("CNE : "),
		Section:   a.in.Line("Section : "),
		Filiere:   a.in.Line("Filière : "),
	}
	if id, ok := a.in.OptionalInt("ID : "); ok {
		filter.ID = id
	}
	renderStudents(a.out, a.students.Search(filter))
}

func (a *App) teacherAdminMenu() {
	if !a.loadOrFail(a.teachers.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Enseignants ---")
		fmt.Fprintln(a.out, "1. Lister")
		fmt.Fprintln(a.out, "2. Ajouter")
		fmt.Fprintln(a.out, "3. Modifier")
		fmt.Fprintln(a.out, "4. Supprimer")
		fmt.Fprintln(a.out, "5. Rechercher")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderTeachers(a.out, a.teachers.List())
		case 2:
			a.addTeacherScreen()
		case 3:
			a.editTeacherScreen()
		case 4:
			a.deleteTeacherScreen()
		case 5:
			a.searchTeacherScreen()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) addTeacherScreen() {
	req := service.CreateTeacherRequest{
		FirstName:     a.in.Line("Prénom : "),
		LastName:      a.in.Line("Nom : "),
		Code:          a.in.Line("Code : "),
		SubjectTaught: a.in.Line("Matière enseignée : "),
	}
	teacher, err := a.teachers.Create(req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Enseignant créé (id %d), email %s, mot de passe initial %s123\n",
		teacher.ID, teacher.Email, teacher.FirstName)
}

func (a *App) editTeacherScreen() {
	id := a.in.Int("ID de l'enseignant : ")
	teacher, err := a.teachers.Get(id)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Laisser vide pour conserver la valeur actuelle.")
	req := service.UpdateTeacherRequest{
		FirstName:     a.in.Line(fmt.Sprintf("Prénom [%s] : ", teacher.FirstName)),
		LastName:      a.in.Line(fmt.Sprintf("Nom [%s] : ", teacher.LastName)),
		Code:          a.in.Line(fmt.Sprintf("Code [%s] : ", teacher.Code)),
		SubjectTaught: a.in.Line(fmt.Sprintf("Matière enseignée [%s] : ", teacher.SubjectTaught)),
	}
	req.RegenerateEmail = a.in.Confirm("Régénérer l'email ?")
	if !req.RegenerateEmail {
		req.Email = a.in.Line(fmt.Sprintf("Email [%s] : ", teacher.Email))
	}
	if _, err := a.teachers.Update(id, req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Enseignant modifié.")
}

func (a *App) deleteTeacherScreen() {
	id := a.in.Int("ID de l'enseignant : ")
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.teachers.Delete(id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Enseignant supprimé.")
}

func (a *App) searchTeacherScreen() {
	fmt.Fprintln(a.out, "Critères (laisser vide pour ignorer) :")
	filter := models.TeacherFilter{
		FirstName:     a.in.Line("Prénom : "),
		LastName:      a.in.Line("Nom : "),
		Code:          a.in.Line("Code : "),
		SubjectTaught: a.in.Line("Matière enseignée : "),
	}
	if id, ok := a.in.OptionalInt("ID : "); ok {
		filter.ID = id
	}
	renderTeachers(a.out, a.teachers.Search(filter))
}

func (a *App) subjectAdminMenu() {
	if !a.loadOrFail(a.subjects.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Matières ---")
		fmt.Fprintln(a.out, "1. Lister")
		fmt.Fprintln(a.out, "2. Ajouter")
		fmt.Fprintln(a.out, "3. Modifier")
		fmt.Fprintln(a.out, "4. Supprimer")
		fmt.Fprintln(a.out, "5. Rechercher")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderSubjects(a.out, a.subjects.List())
		case 2:
			a.addSubjectScreen()
		case 3:
			a.editSubjectScreen()
		case 4:
			a.deleteSubjectScreen()
		case 5:
			a.searchSubjectScreen()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) addSubjectScreen() {
	req := service.CreateSubjectRequest{
		Code:        a.in.Line("Code : "),
		Name:        a.in.Line("Nom : "),
		Coefficient: a.in.Float("Coefficient (0.1-10) : "),
	}
	subject, err := a.subjects.Create(req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Matière créée (id %d).\n", subject.ID)
}

func (a *App) editSubjectScreen() {
	id := a.in.Int("ID de la matière : ")
	subject, err := a.subjects.Get(id)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Laisser vide pour conserver la valeur actuelle.")
	req := service.UpdateSubjectRequest{
		Code: a.in.Line(fmt.Sprintf("Code [%s] : ", subject.Code)),
		Name: a.in.Line(fmt.Sprintf("Nom [%s] : ", subject.Name)),
	}
	if coef, ok := a.in.OptionalFloat(fmt.Sprintf("Coefficient [%.2f] : ", subject.Coefficient)); ok {
		req.Coefficient = coef
	}
	if _, err := a.subjects.Update(id, req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Matière modifiée.")
}

func (a *App) deleteSubjectScreen() {
	id := a.in.Int("ID de la matière : ")
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.subjects.Delete(id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Matière supprimée.")
}

func (a *App) searchSubjectScreen() {
	fmt.Fprintln(a.out, "Critères (laisser vide pour ignorer) :")
	filter := models.SubjectFilter{
		Code: a.in.Line("Code : "),
		Name: a.in.Line("Nom : "),
	}
	if min, ok := a.in.OptionalFloat("Coefficient minimum : "); ok {
		filter.CoefMin = min
	}
	if max, ok := a.in.OptionalFloat("Coefficient maximum : "); ok {
		filter.CoefMax = max
	}
	renderSubjects(a.out, a.subjects.Search(filter))
}

func (a *App) userListScreen() {
	if !a.loadOrFail(a.users.Load) {
		return
	}
	renderUsers(a.out, a.users.List())
}

func (a *App) timetableAdminMenu() {
	if !a.loadOrFail(a.timetable.Load, a.subjects.Load, a.teachers.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Emploi du temps ---")
		fmt.Fprintln(a.out, "1. Afficher")
		fmt.Fprintln(a.out, "2. Ajouter un créneau")
		fmt.Fprintln(a.out, "3. Modifier un créneau")
		fmt.Fprintln(a.out, "4. Supprimer un créneau")
		fmt.Fprintln(a.out, "5. Générer automatiquement")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			renderTimetable(a.out, a.timetable.Grid())
		case 2:
			a.addSlotScreen()
		case 3:
			a.modifySlotScreen()
		case 4:
			a.deleteSlotScreen()
		case 5:
			a.autoGenerateScreen()
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) promptCoordinates() (int, int) {
	day := a.in.Int("Jour (0=Lundi ... 4=Vendredi) : ")
	hour := a.in.Int("Créneau (0=8h-10h, 1=10h-12h, 2=14h-16h, 3=16h-18h) : ")
	return day, hour
}

func (a *App) addSlotScreen() {
	day, hour := a.promptCoordinates()
	req := service.AddSlotRequest{
		Day:       day,
		Hour:      hour,
		SubjectID: a.in.Int("ID de la matière : "),
		TeacherID: a.in.Int("ID de l'enseignant : "),
		Room:      a.in.Line("Salle : "),
	}
	slot, err := a.timetable.Add(req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Créneau ajouté : %s le %s %s.\n", slot.SubjectName, models.DayName(day), models.HourName(hour))
}

func (a *App) modifySlotScreen() {
	day, hour := a.promptCoordinates()
	req := service.ModifySlotRequest{Day: day, Hour: hour}
	if a.in.Confirm("Changer la matière ?") {
		req.SubjectID = a.in.Int("ID de la matière : ")
	}
	if a.in.Confirm("Changer l'enseignant ?") {
		req.TeacherID = a.in.Int("ID de l'enseignant : ")
	}
	if a.in.Confirm("Changer la salle ?") {
		req.Room = a.in.Line("Salle : ")
	}
	if _, err := a.timetable.Modify(req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Créneau modifié.")
}

func (a *App) deleteSlotScreen() {
	day, hour := a.promptCoordinates()
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.timetable.Delete(day, hour); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Créneau supprimé.")
}

func (a *App) autoGenerateScreen() {
	if !a.in.Confirm("La grille actuelle sera remplacée. Continuer ?") {
		fmt.Fprintln(a.out, "Génération annulée.")
		return
	}
	grid, err := a.timetable.AutoGenerate()
	if err != nil {
		a.fail(err)
		return
	}
	renderTimetable(a.out, grid)
}

func (a *App) statisticsMenu() {
	if !a.loadOrFail(a.students.Load, a.teachers.Load, a.subjects.Load, a.grades.Load, a.announcements.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Statistiques ---")
		fmt.Fprintln(a.out, "1. Vue d'ensemble")
		fmt.Fprintln(a.out, "2. Étudiants par section")
		fmt.Fprintln(a.out, "3. Enseignants par matière enseignée")
		fmt.Fprintln(a.out, "4. Activité d'un enseignant")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			o := a.analytics.Overview()
			fmt.Fprintf(a.out, "Étudiants : %d\nEnseignants : %d\nMatières : %d\nNotes : %d\nAnnonces : %d\n",
				o.Students, o.Teachers, o.Subjects, o.Grades, o.Announcements)
		case 2:
			renderDistribution(a.out, "Étudiants par section :", a.analytics.StudentsBySection())
		case 3:
			renderDistribution(a.out, "Enseignants par matière :", a.analytics.TeachersBySubjectTaught())
		case 4:
			id := a.in.Int("ID de l'enseignant : ")
			stats := a.analytics.StatsForTeacher(id)
			fmt.Fprintf(a.out, "Notes saisies : %d\nAnnonces publiées : %d\n", stats.Grades, stats.Announcements)
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) exportMenu() {
	if !a.loadOrFail(a.students.Load, a.subjects.Load, a.grades.Load, a.timetable.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Exports ---")
		fmt.Fprintln(a.out, "1. Relevé de notes d'un étudiant")
		fmt.Fprintln(a.out, "2. Emploi du temps")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			id := a.in.Int("ID de l'étudiant : ")
			a.runExport(func(format string) (string, error) { return a.exports.ExportTranscript(id, format) })
		case 2:
			a.runExport(a.exports.ExportTimetable)
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) runExport(export func(format string) (string, error)) {
	format := a.in.Line("Format (csv/pdf) : ")
	path, err := export(format)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Fichier écrit : %s\n", path)
}
