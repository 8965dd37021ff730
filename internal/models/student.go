package models

// Student represents a learner stored in etudiants.txt.
type Student struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	CNE       string
	Section   string
	Filiere   string
}

// StudentFilter encapsulates the search criteria of the student search menu.
// String fields match case-insensitively as substrings; ID matches exactly
// when positive.
type StudentFilter struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	CNE       string
	Section   string
	Filiere   string
}
