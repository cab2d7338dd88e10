package domain

import "time"

// UserRole controls access to administrative operations.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// User represents a scheme member or administrator.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Role         UserRole   `json:"role"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber  string     `json:"phoneNumber,omitempty"`
	Address      string     `json:"address,omitempty"`
	AuditFields
}

// AgeAt returns the user's age in whole years on the given day, or false when unknown.
func (u User) AgeAt(now time.Time) (int, bool) {
	if u.DateOfBirth == nil {
		return 0, false
	}
	dob := *u.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
