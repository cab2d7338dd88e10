package handlers

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/utils"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the domain rules used in binding tags to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("contribution_type", func(fl validator.FieldLevel) bool {
			return domain.ContributionType(normalizeEnum(fl.Field().String())).IsValid()
		})
		_ = v.RegisterValidation("contribution_status", func(fl validator.FieldLevel) bool {
			return domain.ContributionStatus(normalizeEnum(fl.Field().String())).IsValid()
		})
		_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
			return utils.IsStrongPassword(fl.Field().String())
		})
	})
}

// normalizeEnum matches the normalisation applied by the dto converters.
func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
