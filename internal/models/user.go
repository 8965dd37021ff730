package models

// UserRole represents the available roles. The literal strings are stored in
// the users file and select the menu shown after login.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "enseignant"
	RoleStudent UserRole = "etudiant"
)

// User represents an account stored in utilisateurs.txt. Passwords are kept
// in plaintext: the legacy file format compares them byte for byte.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      UserRole
}

// Session identifies an authenticated console session. Email is the login
// address; student screens resolve the student record through it, since user
// and entity ids are not guaranteed to pair up.
type Session struct {
	SessionID string
	UserID    int
	Role      UserRole
	Email     string
	FirstName string
	LastName  string
}

// DateLayout is the day/month/year format used in every persisted date field.
const DateLayout = "02/01/2006"
