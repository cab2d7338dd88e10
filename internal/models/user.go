package models

import (
	"time"
)

// User is the persisted form of a scheme member or administrator.
type User struct {
	UserID       string     `db:"user_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FullName     string     `db:"full_name"`
	Role         string     `db:"role"`
	DateOfBirth  *time.Time `db:"date_of_birth"`
	PhoneNumber  string     `db:"phone_number"`
	Address      string     `db:"address"`
	AuditFields
}
