package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain address", "jane@example.com", true},
		{"subdomain", "jane.doe@mail.example.co", true},
		{"missing tld", "jane@example", false},
		{"missing at", "jane.example.com", false},
		{"whitespace", "jane @example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.input))
		})
	}
}

func TestPassword(t *testing.T) {
	t.Run("strong password has no violations", func(t *testing.T) {
		res := Password("Secur3!pass")
		assert.True(t, res.Valid)
		assert.Empty(t, res.Violations)
	})

	t.Run("reports every violated rule", func(t *testing.T) {
		res := Password("abc")
		assert.False(t, res.Valid)
		assert.Equal(t, []string{RuleMinLength, RuleUpper, RuleDigit, RuleSpecial}, res.Violations)
	})

	t.Run("length counts characters, not bytes", func(t *testing.T) {
		short := Password("Aa1!éüö")
		assert.Equal(t, []string{RuleMinLength}, short.Violations)

		assert.True(t, Password("Aa1!éüöß").Valid)
	})

	t.Run("empty password violates all rules", func(t *testing.T) {
		assert.Len(t, Password("").Violations, 5)
	})
}

func TestPasswordStrength(t *testing.T) {
	assert.Equal(t, Strength{Score: 0, Label: "Very Weak"}, PasswordStrength(""))
	assert.Equal(t, Strength{Score: 5, Label: "Very Strong"}, PasswordStrength("Secur3!pass"))

	t.Run("adding a satisfied rule never lowers the score", func(t *testing.T) {
		steps := []string{"a", "aB", "aB3", "aB3!", "aB3!wxyz"}
		prev := -1
		for _, pw := range steps {
			score := PasswordStrength(pw).Score
			assert.GreaterOrEqual(t, score, prev, "password %q", pw)
			prev = score
		}
	})
}

func TestFixedFormats(t *testing.T) {
	assert.True(t, SSN("123-45-6789"))
	assert.False(t, SSN("123456789"))
	assert.True(t, Phone("555-123-4567"))
	assert.False(t, Phone("(555) 123-4567"))
	assert.True(t, ZIP("12345"))
	assert.True(t, ZIP("12345-6789"))
	assert.False(t, ZIP("1234"))
	assert.True(t, RoutingNumber("021000021"))
	assert.False(t, RoutingNumber("02100002"))
	assert.True(t, AccountNumber("12345"))
	assert.True(t, AccountNumber("12345678901234567"))
	assert.False(t, AccountNumber("1234"))
	assert.False(t, AccountNumber("123456789012345678"))
}

func TestDateOfBirth(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("exactly eighteen today passes", func(t *testing.T) {
		assert.True(t, DateOfBirth("2006-06-15", today).Valid)
	})

	t.Run("eighteenth birthday tomorrow fails", func(t *testing.T) {
		res := DateOfBirth("2006-06-16", today)
		assert.False(t, res.Valid)
		assert.Equal(t, "Must be at least 18 years old", res.Message)
	})

	t.Run("unparseable date fails", func(t *testing.T) {
		res := DateOfBirth("06/15/2006", today)
		assert.False(t, res.Valid)
		assert.Equal(t, "Invalid date", res.Message)
	})
}

func TestAge(t *testing.T) {
	dob := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, Age(dob, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, Age(dob, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}

func TestAddress(t *testing.T) {
	assert.True(t, Address("1 Main St").Valid)
	for _, street := range []string{"P.O. Box 12", "po box 9", "Po Box 1"} {
		res := Address(street)
		assert.False(t, res.Valid, street)
		assert.Equal(t, "P.O. boxes are not allowed", res.Message)
	}
}

func TestBeneficiaryPercentages(t *testing.T) {
	type alloc struct{ pct int }
	pct := func(a alloc) int { return a.pct }

	assert.True(t, BeneficiaryPercentages([]alloc{{60}, {40}}, pct).Valid)

	res := BeneficiaryPercentages([]alloc{{60}, {30}}, pct)
	require.False(t, res.Valid)
	assert.Contains(t, res.Message, "90")

	res = BeneficiaryPercentages([]alloc{}, pct)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "current: 0%")
}
