// Package forms implements draft records for create/edit operations:
// field-level change tracking, synchronous validation with translated
// per-field messages, and submit gating so invalid drafts never reach the
// network.
package forms

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/webdekho/schoolctl/pkg/types"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

// custom validation tags & texts
const (
	dateOnlyTag  = "dateonly"
	dateOnlyText = "must be a date in YYYY-MM-DD form"

	dateAfterTag  = "dateafter"
	dateAfterText = "must be after the start date"
)

// Instantiate the validator for use.
func init() {
	validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(dateOnlyTag, dateOnlyValidation)
	registerCustomTranslation(dateOnlyTag, dateOnlyText)

	_ = validate.RegisterValidation(dateAfterTag, dateAfterValidation)
	registerCustomTranslation(dateAfterTag, dateAfterText)
}

// registerCustomTranslation registers a custom translation for the specified
// validation tag.
func registerCustomTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// dateOnlyValidation accepts values parsing in the wire date layout.
func dateOnlyValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(types.DateLayout, fl.Field().String())
	return err == nil
}

// dateAfterValidation checks that the field is strictly after the sibling
// date field named in the tag parameter. Unparseable values pass; the
// dateonly rule on each field reports those.
func dateAfterValidation(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() {
		return false
	}
	after, err := time.Parse(types.DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	before, err := time.Parse(types.DateLayout, other.String())
	if err != nil {
		return true
	}
	return after.After(before)
}
