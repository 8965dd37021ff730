package models

// Subject represents a course stored in matieres.txt.
type Subject struct {
	ID          int
	Code        string
	Name        string
	Coefficient float64
}

// SubjectFilter encapsulates the search criteria of the subject search menu.
// The coefficient range is inclusive and only applied when Max is positive.
type SubjectFilter struct {
	ID       int
	Code     string
	Name     string
	CoefMin  float64
	CoefMax  float64
}
