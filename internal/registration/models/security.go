package models

type TwoFAMethod string

const (
	TwoFASMS           TwoFAMethod = "sms"
	TwoFAAuthenticator TwoFAMethod = "authenticator"
	TwoFAEmail         TwoFAMethod = "email"
)

// RequiresCode reports whether the method needs a confirmed code before
// the final submission.
func (m TwoFAMethod) RequiresCode() bool {
	return m != TwoFAEmail
}

func (m TwoFAMethod) IsValid() bool {
	switch m {
	case TwoFASMS, TwoFAAuthenticator, TwoFAEmail:
		return true
	}
	return false
}

// SecuritySetup is the step 10 payload. PhoneNumberVerified records whether a
// verification code was confirmed for the chosen method.
type SecuritySetup struct {
	TwoFAMethod         TwoFAMethod       `json:"twoFAMethod"`
	PhoneNumberVerified bool              `json:"phoneNumberVerified,omitempty"`
	AuthenticatorSecret string            `json:"authenticatorSecret,omitempty"`
	SecurityQuestions   map[string]string `json:"securityQuestions,omitempty"`
}

func (s SecuritySetup) Validate() FieldErrors {
	errs := FieldErrors{}
	if !s.TwoFAMethod.IsValid() {
		errs.Set("twoFAMethod", "Select a two-factor method")
		return errs
	}
	if s.TwoFAMethod.RequiresCode() && !s.PhoneNumberVerified {
		errs.Set("twoFA", "2FA verification is required")
	}
	return errs
}

// Submission is the body of the final registration call.
func (s SecuritySetup) Submission() SecuritySubmission {
	return SecuritySubmission{
		TwoFAMethod:         s.TwoFAMethod,
		PhoneNumberVerified: s.PhoneNumberVerified || s.TwoFAMethod == TwoFAEmail,
	}
}

// SecuritySubmission is the wire body of the final submit.
type SecuritySubmission struct {
	TwoFAMethod         TwoFAMethod `json:"twoFAMethod"`
	PhoneNumberVerified bool        `json:"phoneNumberVerified"`
}
