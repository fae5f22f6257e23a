package models

import "time"

// StepPayload is the data submitted to complete one wizard step. The set of
// implementations is closed: one type per step from 2 through 10. Step 1 goes
// through account creation instead because it produces the session.
type StepPayload interface {
	Step() Step
	Validate(today time.Time) FieldErrors
	// Sections lists the draft sections the payload replaces.
	Sections() []Section
	stepPayload()
}

type (
	PersonalDetailsPayload       struct{ PersonalDetails }
	KYCIdentityPayload           struct{ KYCIdentity }
	EmploymentFinancialPayload   struct{ EmploymentFinancial }
	IRATypePayload               struct{ IRAType }
	BeneficiariesPayload         struct{ Beneficiaries }
	FundingMethodPayload         struct{ FundingMethodData }
	InvestmentPreferencesPayload struct{ InvestmentPreferences }
	AgreementsPayload            struct{ Agreements }
	SecuritySetupPayload         struct{ SecuritySetup }
)

func (PersonalDetailsPayload) Step() Step       { return StepPersonalInfo }
func (KYCIdentityPayload) Step() Step           { return StepKYCIdentity }
func (EmploymentFinancialPayload) Step() Step   { return StepEmploymentFinancial }
func (IRATypePayload) Step() Step               { return StepIRAType }
func (BeneficiariesPayload) Step() Step         { return StepBeneficiaries }
func (FundingMethodPayload) Step() Step         { return StepFundingMethod }
func (InvestmentPreferencesPayload) Step() Step { return StepInvestmentPreferences }
func (AgreementsPayload) Step() Step            { return StepAgreements }
func (SecuritySetupPayload) Step() Step         { return StepSecuritySetup }

func (p PersonalDetailsPayload) Validate(today time.Time) FieldErrors {
	return p.PersonalDetails.Validate(today)
}
func (p KYCIdentityPayload) Validate(time.Time) FieldErrors { return p.KYCIdentity.Validate() }
func (p EmploymentFinancialPayload) Validate(time.Time) FieldErrors {
	return p.EmploymentFinancial.Validate()
}
func (p IRATypePayload) Validate(time.Time) FieldErrors       { return p.IRAType.Validate() }
func (p BeneficiariesPayload) Validate(time.Time) FieldErrors { return p.Beneficiaries.Validate() }
func (p FundingMethodPayload) Validate(time.Time) FieldErrors {
	return p.FundingMethodData.Validate()
}
func (p InvestmentPreferencesPayload) Validate(time.Time) FieldErrors {
	return p.InvestmentPreferences.Validate()
}
func (p AgreementsPayload) Validate(time.Time) FieldErrors    { return p.Agreements.Validate() }
func (p SecuritySetupPayload) Validate(time.Time) FieldErrors { return p.SecuritySetup.Validate() }

func (p PersonalDetailsPayload) Sections() []Section {
	return []Section{p.Personal, p.Address}
}
func (p KYCIdentityPayload) Sections() []Section         { return []Section{p.KYCIdentity} }
func (p EmploymentFinancialPayload) Sections() []Section { return []Section{p.EmploymentFinancial} }
func (p IRATypePayload) Sections() []Section             { return []Section{p.IRAType} }
func (p BeneficiariesPayload) Sections() []Section       { return []Section{p.Beneficiaries} }
func (p FundingMethodPayload) Sections() []Section       { return []Section{p.FundingMethodData} }
func (p InvestmentPreferencesPayload) Sections() []Section {
	return []Section{p.InvestmentPreferences}
}
func (p AgreementsPayload) Sections() []Section    { return []Section{p.Agreements} }
func (p SecuritySetupPayload) Sections() []Section { return []Section{p.SecuritySetup} }

func (PersonalDetailsPayload) stepPayload()       {}
func (KYCIdentityPayload) stepPayload()           {}
func (EmploymentFinancialPayload) stepPayload()   {}
func (IRATypePayload) stepPayload()               {}
func (BeneficiariesPayload) stepPayload()         {}
func (FundingMethodPayload) stepPayload()         {}
func (InvestmentPreferencesPayload) stepPayload() {}
func (AgreementsPayload) stepPayload()            {}
func (SecuritySetupPayload) stepPayload()         {}
