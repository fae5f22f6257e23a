package validation

import "strings"

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatSSN extracts digits and inserts separators as the input grows,
// truncating to nine digits. FormatSSN(FormatSSN(x)) == FormatSSN(x).
func FormatSSN(s string) string {
	d := digitsOnly(s)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 5:
		return d[:3] + "-" + d[3:]
	}
	if len(d) > 9 {
		d = d[:9]
	}
	return d[:3] + "-" + d[3:5] + "-" + d[5:]
}

// FormatPhone extracts digits and formats them as ###-###-####,
// truncating to ten digits.
func FormatPhone(s string) string {
	d := digitsOnly(s)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "-" + d[3:]
	}
	if len(d) > 10 {
		d = d[:10]
	}
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}

// MaskSSN hides every digit except the last four, keeping separators:
// "123-45-6789" becomes "***-**-6789".
func MaskSSN(ssn string) string {
	keep := 4
	out := []rune(ssn)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < '0' || out[i] > '9' {
			continue
		}
		if keep > 0 {
			keep--
			continue
		}
		out[i] = '*'
	}
	return string(out)
}

// MaskAccountNumber hides all but the last four characters.
// Inputs of four characters or fewer are returned unchanged.
func MaskAccountNumber(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}
