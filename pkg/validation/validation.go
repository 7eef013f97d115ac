// Package validation implements the client-side form rulesets. Apply is pure
// and deterministic: the returned map contains an entry only for fields that
// fail, and an empty map means the form is submittable.
package validation

import (
	"strconv"
	"strings"
)

// Ruleset names a collection of per-field rules selected by calling context.
type Ruleset string

const (
	// Login requires only non-empty email and password.
	Login Ruleset = "login"
	// Signup enforces the full registration field set including the password
	// strength rule, village and the weight photo.
	Signup Ruleset = "signup"
	// ProfileEdit enforces numeric positivity on weight/height/age and drops
	// the village and weight-photo requirements. The asymmetry with Signup is
	// intentional and must not be unified.
	ProfileEdit Ruleset = "profileEdit"
)

// Fields holds the current form values, all strings.
type Fields map[string]string

const specialChars = `!@#$%^&*(),.?":{}|<>`

var genders = map[string]bool{"Male": true, "Female": true, "Other": true}

// Apply checks fields against the named ruleset and returns a mapping of
// field name to error message for every field that fails.
func Apply(rs Ruleset, fields Fields) map[string]string {
	errs := make(map[string]string)

	switch rs {
	case Login:
		requireTrimmed(errs, fields, "email", "Email is required")
		requireTrimmed(errs, fields, "password", "Password is required")

	case Signup:
		requireTrimmed(errs, fields, "fullName", "Full name is required")
		requireTrimmed(errs, fields, "phoneNumber", "Phone number is required")
		requireTrimmed(errs, fields, "email", "Email is required")
		requireTrimmed(errs, fields, "height", "Height is required")
		requireTrimmed(errs, fields, "weight", "Weight is required")
		requireTrimmed(errs, fields, "age", "Age is required")
		if !genders[fields["gender"]] {
			errs["gender"] = "Gender is required"
		}
		requireTrimmed(errs, fields, "state", "State is required")
		requireTrimmed(errs, fields, "village", "Village is required")
		if fields["weightPhoto"] == "" {
			errs["weightPhoto"] = "Weight photo is mandatory"
		}
		if !passwordOK(fields["password"]) {
			errs["password"] = "Password must be 8+ chars with 1 number & 1 special character"
		}
		if fields["password"] != fields["confirmPassword"] {
			errs["confirmPassword"] = "Passwords do not match"
		}

	case ProfileEdit:
		requirePositive(errs, fields, "weight", "Valid weight is required")
		requirePositive(errs, fields, "height", "Valid height is required")
		requirePositive(errs, fields, "age", "Valid age is required")
		if !genders[fields["gender"]] {
			errs["gender"] = "Gender is required"
		}
		requireTrimmed(errs, fields, "location", "Location is required")
		requireTrimmed(errs, fields, "state", "State is required")
	}

	return errs
}

func requireTrimmed(errs map[string]string, fields Fields, name, message string) {
	if strings.TrimSpace(fields[name]) == "" {
		errs[name] = message
	}
}

func requirePositive(errs map[string]string, fields Fields, name, message string) {
	v := fields[name]
	if v == "" {
		errs[name] = message
		return
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		errs[name] = message
	}
}

func passwordOK(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	return hasDigit && hasSpecial
}
