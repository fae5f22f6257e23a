// Package validation holds pure field validators and display formatters for
// registration data. Nothing here performs I/O or mutates its input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

// DateLayout is the calendar-date layout used on the wire (ISO 8601 date).
const DateLayout = "2006-01-02"

const minPasswordLength = 8

// MinimumAge is the youngest age allowed to open an account.
const MinimumAge = 18

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ssnPattern     = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	phonePattern   = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	zipPattern     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	routingPattern = regexp.MustCompile(`^\d{9}$`)
	accountPattern = regexp.MustCompile(`^\d{5,17}$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*]`)
)

// Password rule messages, in evaluation order.
const (
	RuleMinLength = "Minimum 8 characters"
	RuleUpper     = "At least one uppercase letter"
	RuleLower     = "At least one lowercase letter"
	RuleDigit     = "At least one number"
	RuleSpecial   = "At least one special character (!@#$%^&*)"
)

// Result is the outcome of a validator that can explain its failure.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Valid: false, Message: msg} }

// PasswordResult lists every password rule the input violates.
type PasswordResult struct {
	Valid      bool
	Violations []string
}

// Strength is a coarse password score for display.
type Strength struct {
	Score int
	Label string
}

var strengthLabels = []string{"Very Weak", "Weak", "Fair", "Good", "Strong", "Very Strong"}

// Email reports whether s looks like local@domain.tld with no whitespace.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password evaluates all rules without short-circuiting.
func Password(s string) PasswordResult {
	var violations []string
	if utf8.RuneCountInString(s) < minPasswordLength {
		violations = append(violations, RuleMinLength)
	}
	if !upperPattern.MatchString(s) {
		violations = append(violations, RuleUpper)
	}
	if !lowerPattern.MatchString(s) {
		violations = append(violations, RuleLower)
	}
	if !digitPattern.MatchString(s) {
		violations = append(violations, RuleDigit)
	}
	if !specialPattern.MatchString(s) {
		violations = append(violations, RuleSpecial)
	}
	return PasswordResult{Valid: len(violations) == 0, Violations: violations}
}

// PasswordStrength scores a password as the number of satisfied rules.
// Satisfying an extra rule never lowers the score.
func PasswordStrength(s string) Strength {
	score := 5 - len(Password(s).Violations)
	return Strength{Score: score, Label: strengthLabels[score]}
}

// SSN reports whether s is formatted as ###-##-####.
func SSN(s string) bool { return ssnPattern.MatchString(s) }

// Phone reports whether s is formatted as ###-###-####.
func Phone(s string) bool { return phonePattern.MatchString(s) }

// ZIP accepts ##### or #####-####.
func ZIP(s string) bool { return zipPattern.MatchString(s) }

// RoutingNumber accepts exactly nine digits.
func RoutingNumber(s string) bool { return routingPattern.MatchString(s) }

// AccountNumber accepts 5 to 17 digits.
func AccountNumber(s string) bool { return accountPattern.MatchString(s) }

// Age returns whole calendar years between dob and today.
func Age(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// DateOfBirth checks that dob (YYYY-MM-DD) parses and is at least
// MinimumAge years before today.
func DateOfBirth(dob string, today time.Time) Result {
	t, err := time.Parse(DateLayout, dob)
	if err != nil {
		return fail("Invalid date")
	}
	if Age(t, today) < MinimumAge {
		return fail("Must be at least 18 years old")
	}
	return ok()
}

// Address rejects post office boxes.
func Address(street string) Result {
	upper := strings.ToUpper(street)
	if strings.Contains(upper, "P.O.") || strings.Contains(upper, "PO BOX") {
		return fail("P.O. boxes are not allowed")
	}
	return ok()
}

// BeneficiaryPercentages checks that allocations sum to exactly 100. The
// failure message carries the current total.
func BeneficiaryPercentages[T any](items []T, allocation func(T) int) Result {
	total := lo.SumBy(items, allocation)
	if total != 100 {
		return fail(fmt.Sprintf("Percentages must total 100%% (current: %d%%)", total))
	}
	return ok()
}
