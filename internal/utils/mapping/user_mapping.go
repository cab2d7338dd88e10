package mapping

import (
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		Role:         string(d.Role),
		DateOfBirth:  d.DateOfBirth,
		PhoneNumber:  d.PhoneNumber,
		Address:      d.Address,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.UserRole(m.Role),
		DateOfBirth:  m.DateOfBirth,
		PhoneNumber:  m.PhoneNumber,
		Address:      m.Address,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
