package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Login input validation. Obviously malformed input is rejected here, before
// any network call, and reported per field.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

// FieldError describes a validation failure on a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures from one submission.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the failures as a field → message map for JSON responses.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// validateCredentials checks the step-1 inputs. minPassword comes from
// configuration (6 by default, the login form's rule).
func validateCredentials(email, password string, minPassword int) ValidationErrors {
	var errs ValidationErrors
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	switch {
	case password == "":
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	case len(password) < minPassword:
		errs = append(errs, FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", minPassword),
		})
	}
	return errs
}

// validateOTP checks the step-2 code: exactly six numeric digits.
func validateOTP(otp string) ValidationErrors {
	if otpPattern.MatchString(otp) {
		return nil
	}
	if otp == "" {
		return ValidationErrors{{Field: "otp", Message: "Verification code is required"}}
	}
	return ValidationErrors{{Field: "otp", Message: "Verification code must be 6 digits"}}
}
