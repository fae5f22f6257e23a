package wizard

import (
	"context"
	"errors"
	"fmt"

	"signup/internal/registration/models"
	"signup/internal/registration/twofactor"
	dErrors "signup/pkg/domain-errors"
	strutil "signup/pkg/platform/strings"
)

// normalize fills defaults and drops blank and repeated checkbox values. It
// also lines agreement records up with the loaded documents, so every served
// document must be accepted. For the security step it replaces the verified
// flag with what this controller has actually confirmed.
func (c *Controller) normalize(payload models.StepPayload) models.StepPayload {
	switch p := payload.(type) {
	case models.AgreementsPayload:
		p.Agreements.Agreements = models.BuildAgreements(c.Documents(), p.Agreements.Agreements)
		return p
	case models.PersonalDetailsPayload:
		p.PersonalDetails = p.WithDefaults()
		return p
	case models.EmploymentFinancialPayload:
		p.SourceOfFunds = strutil.DedupeAndTrim(p.SourceOfFunds)
		return p
	case models.InvestmentPreferencesPayload:
		p.AssetTypes = strutil.DedupeAndTrim(p.AssetTypes)
		return p
	case models.SecuritySetupPayload:
		c.mu.Lock()
		p.PhoneNumberVerified = c.verified[p.TwoFAMethod] || p.TwoFAMethod == models.TwoFAEmail
		c.mu.Unlock()
		return p
	}
	return payload
}

// merge writes the payload's sections into the draft, replacing each
// section wholesale.
func (c *Controller) merge(payload models.StepPayload) {
	for _, section := range payload.Sections() {
		c.draft.UpdateFormData(section)
	}
}

// persist calls the endpoint for the payload's step. Only the security step
// returns a response.
func (c *Controller) persist(ctx context.Context, sessionID string, payload models.StepPayload) (*models.RegistrationResponse, error) {
	switch p := payload.(type) {
	case models.PersonalDetailsPayload:
		return nil, c.client.SavePersonalInfo(ctx, sessionID, p.PersonalDetails)
	case models.KYCIdentityPayload:
		return nil, c.client.SaveKYCIdentity(ctx, sessionID, p.KYCIdentity)
	case models.EmploymentFinancialPayload:
		return nil, c.client.SaveEmploymentFinancial(ctx, sessionID, p.EmploymentFinancial)
	case models.IRATypePayload:
		return nil, c.client.SaveIRAType(ctx, sessionID, p.IRAType)
	case models.BeneficiariesPayload:
		return nil, c.client.SaveBeneficiaries(ctx, sessionID, p.Beneficiaries)
	case models.FundingMethodPayload:
		return nil, c.client.SaveFundingMethod(ctx, sessionID, p.FundingMethodData)
	case models.InvestmentPreferencesPayload:
		return nil, c.client.SaveInvestmentPreferences(ctx, sessionID, p.InvestmentPreferences)
	case models.AgreementsPayload:
		return nil, c.client.SaveAgreements(ctx, sessionID, p.Agreements)
	case models.SecuritySetupPayload:
		return c.client.SubmitFinalRegistration(ctx, sessionID, p.Submission())
	}
	return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("unhandled step payload %T", payload))
}

var errVerifierMissing = dErrors.New(dErrors.CodeUnavailable, "Code verification is not available.")

// SendVerificationCode texts a one-time code to phone for the SMS method.
func (c *Controller) SendVerificationCode(ctx context.Context, phone string) error {
	if c.verifier == nil {
		return errVerifierMissing
	}
	if err := c.verifier.SendCode(ctx, phone); err != nil {
		c.logger.WarnContext(ctx, "failed to send verification code", "error", err)
		return verificationError(err, "Failed to send code. Please try again.")
	}
	return nil
}

// ConfirmSMSCode checks the texted code and marks SMS as verified.
func (c *Controller) ConfirmSMSCode(ctx context.Context, phone, code string) error {
	if c.verifier == nil {
		return errVerifierMissing
	}
	if err := c.verifier.VerifySMS(ctx, phone, code); err != nil {
		return verificationError(err, "Invalid code. Please try again.")
	}
	c.markVerified(models.TwoFASMS)
	return nil
}

// ConfirmAuthenticatorCode checks a code from the user's authenticator app
// and marks that method as verified.
func (c *Controller) ConfirmAuthenticatorCode(ctx context.Context, secret, code string) error {
	if c.verifier == nil {
		return errVerifierMissing
	}
	if err := c.verifier.VerifyAuthenticator(ctx, secret, code); err != nil {
		return verificationError(err, "Invalid code. Please try again.")
	}
	c.markVerified(models.TwoFAAuthenticator)
	return nil
}

// Verified reports whether method has a confirmed code in this run.
func (c *Controller) Verified(method models.TwoFAMethod) bool {
	if method == models.TwoFAEmail {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verified[method]
}

func (c *Controller) markVerified(method models.TwoFAMethod) {
	c.mu.Lock()
	c.verified[method] = true
	c.mu.Unlock()
}

func verificationError(err error, fallback string) error {
	switch {
	case errors.Is(err, twofactor.ErrPhoneRequired):
		return dErrors.Wrap(err, dErrors.CodeValidation, "Phone number is required")
	case errors.Is(err, twofactor.ErrInvalidPhone):
		return dErrors.Wrap(err, dErrors.CodeValidation, "Invalid phone format (###-###-####)")
	case errors.Is(err, twofactor.ErrMalformedCode):
		return dErrors.Wrap(err, dErrors.CodeValidation, "Please enter a valid 6-digit code")
	case errors.Is(err, twofactor.ErrVerificationExpired):
		return dErrors.Wrap(err, dErrors.CodeValidation, "Code expired. Please request a new one.")
	case errors.Is(err, twofactor.ErrInvalidCode):
		return dErrors.Wrap(err, dErrors.CodeValidation, "Invalid code. Please try again.")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fallback)
}
