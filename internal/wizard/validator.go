package wizard

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"estatedocs/internal/config"
	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

// Canadian postal code, e.g. M5V 2T6 (space optional).
var postalCodeRegexp = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] ?\d[A-Za-z]\d$`)

// ruleFunc validates one step against the current form data. Rules return
// per-field messages as data; an empty map means the step is valid.
type ruleFunc func(form models.FormData) domain.StepErrors

// stepRules is keyed by step id, not document type, so shared steps
// ("personal", "witnesses") reuse one rule set across document types. Steps
// without an entry (assets, guardian, powers, care, review) validate clean.
var stepRules = map[string]ruleFunc{
	"personal":      validatePersonal,
	"executors":     requirePersons(models.FieldExecutors, 1, "at least one executor is required"),
	"attorneys":     requirePersons(models.FieldAttorneys, 1, "at least one attorney is required"),
	"beneficiaries": requirePersons(models.FieldBeneficiaries, 1, "at least one beneficiary is required"),
	"witnesses":     requirePersons(models.FieldWitnesses, 2, "at least two witnesses are required"),
}

// ValidateStep validates the given step against the form data. It is a pure
// function: no session state is read or written. Unknown step ids return an
// empty map; the step registry is the only source of ids, so an unknown id
// can only come from a caller bug.
func ValidateStep(stepID string, form models.FormData) domain.StepErrors {
	rule, ok := stepRules[stepID]
	if !ok {
		return domain.StepErrors{}
	}
	return rule(form)
}

func validatePersonal(form models.FormData) domain.StepErrors {
	errs := domain.StepErrors{}

	checkField(errs, form, "fullName",
		validation.Required.Error("full name is required"),
		validation.Length(1, config.MaxPersonNameLength))
	checkField(errs, form, "address",
		validation.Required.Error("address is required"))
	checkField(errs, form, "dateOfBirth",
		validation.Required.Error("date of birth is required"),
		validation.Date("2006-01-02").Error("date of birth must be YYYY-MM-DD"))
	checkField(errs, form, "city",
		validation.Required.Error("city is required"))
	checkField(errs, form, "postalCode",
		validation.Required.Error("postal code is required"),
		validation.Match(postalCodeRegexp).Error("must be a valid Canadian postal code"))

	return errs
}

// checkField runs ozzo rules against one scalar field and records the first
// failure under the field's name.
func checkField(errs domain.StepErrors, form models.FormData, field string, rules ...validation.Rule) {
	if err := validation.Validate(form.Field(field), rules...); err != nil {
		errs[field] = err.Error()
	}
}

// requirePersons builds the rule for a list-valued field: a minimum entry
// count recorded under the list field's name, plus per-entry record checks
// recorded under "field[i].attr" keys.
func requirePersons(field string, minEntries int, countMessage string) ruleFunc {
	return func(form models.FormData) domain.StepErrors {
		errs := domain.StepErrors{}

		persons := form.Persons(field)
		if len(persons) < minEntries {
			errs[field] = countMessage
			return errs
		}

		for i, p := range persons {
			if err := validatePerson(p); err != nil {
				if fieldErrs, ok := err.(validation.Errors); ok {
					for attr, attrErr := range fieldErrs {
						errs[fmt.Sprintf("%s[%d].%s", field, i, attr)] = attrErr.Error()
					}
				} else {
					errs[fmt.Sprintf("%s[%d]", field, i)] = err.Error()
				}
			}
		}

		return errs
	}
}

// validatePerson checks one person record. Only the name is mandatory;
// contact fields are validated for shape when present.
func validatePerson(p models.PersonRecord) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, config.MaxPersonNameLength),
		),
		validation.Field(&p.Email, is.Email.Error("must be a valid email address")),
	)
}
