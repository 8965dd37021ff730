package cli

import (
	"fmt"

	"github.com/noah-isme/ecole-manager/internal/models"
	"github.com/noah-isme/ecole-manager/internal/service"
)

// announcementMenu serves both the admin and teacher screens; ownOnly limits
// the listing to the session's own announcements (the service enforces the
// write restrictions either way).
func (a *App) announcementMenu(session models.Session, ownOnly bool) {
	if !a.loadOrFail(a.announcements.Load) {
		return
	}
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "--- Annonces ---")
		fmt.Fprintln(a.out, "1. Lister")
		fmt.Fprintln(a.out, "2. Publier")
		fmt.Fprintln(a.out, "3. Modifier")
		fmt.Fprintln(a.out, "4. Supprimer")
		fmt.Fprintln(a.out, "0. Retour")
		switch a.in.Int("Choix : ") {
		case 0:
			return
		case 1:
			if ownOnly {
				renderAnnouncements(a.out, a.announcements.ListByTeacher(session.UserID))
			} else {
				renderAnnouncements(a.out, a.announcements.List())
			}
		case 2:
			a.addAnnouncementScreen(session)
		case 3:
			a.editAnnouncementScreen(session)
		case 4:
			a.deleteAnnouncementScreen(session)
		default:
			fmt.Fprintln(a.out, "Choix invalide.")
		}
	}
}

func (a *App) addAnnouncementScreen(session models.Session) {
	req := service.CreateAnnouncementRequest{
		Title: a.in.Line("Titre : "),
		Body:  a.in.Line("Contenu : "),
	}
	req.SubjectID = a.in.Int("ID de la matière (0 = annonce générale) : ")
	annonce, err := a.announcements.Create(session, req)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Annonce publiée (id %d).\n", annonce.ID)
}

func (a *App) editAnnouncementScreen(session models.Session) {
	id := a.in.Int("ID de l'annonce : ")
	fmt.Fprintln(a.out, "Laisser vide pour conserver la valeur actuelle.")
	req := service.UpdateAnnouncementRequest{
		Title:     a.in.Line("Titre : "),
		Body:      a.in.Line("Contenu : "),
		SubjectID: -1,
	}
	if subjectID, ok := a.in.OptionalInt("ID de la matière (0 = générale) : "); ok {
		req.SubjectID = subjectID
	}
	if _, err := a.announcements.Update(session, id, req); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Annonce modifiée.")
}

func (a *App) deleteAnnouncementScreen(session models.Session) {
	id := a.in.Int("ID de l'annonce : ")
	if !a.in.Confirm("Confirmer la suppression ?") {
		fmt.Fprintln(a.out, "Suppression annulée.")
		return
	}
	if err := a.announcements.Delete(session, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintln(a.out, "Annonce supprimée.")
}
