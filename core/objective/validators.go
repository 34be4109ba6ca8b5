package objective

import (
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/klasbord/klasbord/core"
)

var (
	phaseTag  = "phase"
	phaseText = "phase must be onderbouw, bovenbouw or a label of at most 20 characters"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(phaseTag, phaseValidation)
	core.RegisterCustomTranslation(validate, translator, phaseTag, phaseText)
}

// phaseValidation accepts the two curriculum phases or any free-form label
// that fits the column (normalization happens before validation).
func phaseValidation(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	switch p {
	case PhaseLower, PhaseUpper:
		return true
	}
	return utf8.RuneCountInString(p) <= maxPhaseLen
}
