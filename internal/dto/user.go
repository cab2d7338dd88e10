package dto

import (
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// RegisterRequest defines the data needed to register a member.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,password_strength"`
	FullName    string `json:"fullName" binding:"required,max=200"`
	DateOfBirth string `json:"dateOfBirth,omitempty" example:"1985-04-12"`
	PhoneNumber string `json:"phoneNumber,omitempty" binding:"max=30"`
	Address     string `json:"address,omitempty" binding:"max=500"`
}

// ToDomainUser converts the request into an unsaved user profile.
func (r RegisterRequest) ToDomainUser() (*domain.User, error) {
	dob, err := parseDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Email:       r.Email,
		FullName:    r.FullName,
		DateOfBirth: dob,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}, nil
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID      string  `json:"userID"`
	Email       string  `json:"email"`
	FullName    string  `json:"fullName"`
	Role        string  `json:"role"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Address     string  `json:"address,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	res := UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
	}
	if u.DateOfBirth != nil {
		d := formatDate(*u.DateOfBirth)
		res.DateOfBirth = &d
	}
	return res
}
