package utils

import (
	"medicore-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("disposition_kind", validateDispositionKind)
	validate.RegisterValidation("triage_level", validateTriageLevel)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDispositionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.DispositionKindWardAdmit,
		constvars.DispositionKindICUAdmit,
		constvars.DispositionKindOTTransfer,
		constvars.DispositionKindDischarge:
		return true
	}
	return false
}

func validateTriageLevel(fl validator.FieldLevel) bool {
	level := fl.Field().Int()
	return level >= 1 && level <= 5
}
