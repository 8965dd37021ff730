package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/service"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func renderStudents(out io.Writer, students []models.Student) {
	if len(students) == 0 {
		fmt.Fprintln(out, "Aucun étudiant.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPrénom\tNom\tEmail\tCNE\tSection\tFilière")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.FirstName, s.LastName, s.Email, s.CNE, s.Section, s.Filiere)
	}
	w.Flush()
}

func renderTeachers(out io.Writer, teachers []models.Teacher) {
	if len(teachers) == 0 {
		fmt.Fprintln(out, "Aucun enseignant.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPrénom\tNom\tEmail\tCode\tMatière enseignée")
	for _, t := range teachers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.FirstName, t.LastName, t.Email, t.Code, t.SubjectTaught)
	}
	w.Flush()
}

func renderSubjects(out io.Writer, subjects []models.Subject) {
	if len(subjects) == 0 {
		fmt.Fprintln(out, "Aucune matière.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tCode\tNom\tCoefficient")
	for _, s := range subjects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", s.ID, s.Code, s.Name, s.Coefficient)
	}
	w.Flush()
}

func renderUsers(out io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(out, "Aucun utilisateur.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPrénom\tNom\tEmail\tRôle")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role)
	}
	w.Flush()
}

func renderGrades(out io.Writer, grades []models.Grade) {
	if len(grades) == 0 {
		fmt.Fprintln(out, "Aucune note.")
		return
	}
	w := newTable(out)
	fmt.Fprintln(w, "ID\tÉtudiant\tMatière\tNote\tCommentaire\tDate")
	for _, g := range grades {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%s\t%s\n", g.ID, g.StudentID, g.SubjectID, g.Value, g.Comment, g.EvalDate)
	}
	w.Flush()
}

func renderAnnouncements(out io.Writer, announcements []models.Announcement) {
	if len(announcements) == 0 {
		fmt.Fprintln(out, "Aucune annonce.")
		return
	}
	for _, a := range announcements {
		scope := "générale"
		if a.SubjectID != models.GeneralAnnouncement {
			scope = fmt.Sprintf("matière %d", a.SubjectID)
		}
		fmt.Fprintf(out, "[%d] %s (%s)\n", a.ID, a.Title, scope)
		fmt.Fprintf(out, "    %s\n", a.Body)
		fmt.Fprintf(out, "    par %s le %s\n", a.Author, a.CreationDate)
	}
}

func renderTimetable(out io.Writer, grid models.Timetable) {
	w := newTable(out)
	fmt.Fprint(w, "Horaire")
	for day := 0; day < models.DaysPerWeek; day++ {
		fmt.Fprintf(w, "\t%s", models.DayName(day))
	}
	fmt.Fprintln(w)
	for hour := 0; hour < models.SlotsPerDay; hour++ {
		fmt.Fprint(w, models.HourName(hour))
		for day := 0; day < models.DaysPerWeek; day++ {
			slot := grid.At(day, hour)
			if slot.Empty() {
				fmt.Fprint(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%s (%s, %s)", slot.SubjectName, slot.TeacherName, slot.Room)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Fprintf(out, "Créneaux occupés : %d/%d\n", grid.Occupied, models.DaysPerWeek*models.SlotsPerDay)
}

func renderDistribution(out io.Writer, title string, counts []service.CategoryCount) {
	fmt.Fprintln(out, title)
	if len(counts) == 0 {
		fmt.Fprintln(out, "  (vide)")
		return
	}
	w := newTable(out)
	for _, c := range counts {
		label := c.Label
		if label == "" {
			label = "(non renseigné)"
		}
		fmt.Fprintf(w, "  %s\t%d\n", label, c.Count)
	}
	w.Flush()
}
