package rubric

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/klasbord/klasbord/core"
)

var (
	omzaTag  = "omza"
	omzaText = "category must be one of: organiseren, meedoen, zelfvertrouwen, autonomie"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(omzaTag, omzaValidation)
	core.RegisterCustomTranslation(validate, translator, omzaTag, omzaText)
}

func omzaValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, cat := range Categories {
		if val == cat {
			return true
		}
	}
	return false
}
