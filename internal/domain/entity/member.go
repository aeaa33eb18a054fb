package entity

import "time"

// Role decides which profile a member may own. It is fixed at signup;
// a member never holds both a patient and a caregiver profile.
type Role string

const (
	RolePatient   Role = "PATIENT"
	RoleCaregiver Role = "CAREGIVER"
	RoleAdmin     Role = "ADMIN"
)

// Member is the authentication identity. Passwords are stored as bcrypt
// hashes in Password. Email is optional and only used for notifications.
type Member struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
