package registry

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/billbook/internal/billing"
)

// emailPattern is the address shape accepted on the bill form.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w{2,4}$`)

// CustomerInput is the customer block of the bill form.
type CustomerInput struct {
	Name  string `validate:"required"`
	Phone string `validate:"required"`
	Email string `validate:"omitempty,billemail"`
}

func (in CustomerInput) trimmed() CustomerInput {
	return CustomerInput{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("billemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateCustomer maps validator failures onto billing validation errors.
// Missing name or phone is reported before a malformed email.
func validateCustomer(v *validator.Validate, in CustomerInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &billing.ValidationError{Field: strings.ToLower(fe.Field()), Err: billing.ErrMissingCustomer}
		}
	}
	return &billing.ValidationError{Field: "email", Err: billing.ErrInvalidEmail}
}
