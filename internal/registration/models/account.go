package models

import (
	"strings"

	"signup/pkg/validation"
)

// AccountCreation is the step 1 payload.
//
// Password and ConfirmPassword are never persisted; see Sanitized.
type AccountCreation struct {
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

func (a AccountCreation) Validate() FieldErrors {
	errs := FieldErrors{}
	switch {
	case a.Email == "":
		errs.Set("email", "Email is required")
	case !validation.Email(a.Email):
		errs.Set("email", "Invalid email format")
	}

	if a.Password == "" {
		errs.Set("password", "Password is required")
	} else if res := validation.Password(a.Password); !res.Valid {
		errs.Set("password", strings.Join(res.Violations, ", "))
	}

	if a.Password != a.ConfirmPassword {
		errs.Set("confirmPassword", "Passwords do not match")
	}
	if !a.AcceptTerms {
		errs.Set("acceptTerms", "You must accept the terms")
	}
	return errs
}

// Sanitized drops both password fields.
func (a AccountCreation) Sanitized() AccountCreation {
	a.Password = ""
	a.ConfirmPassword = ""
	return a
}
